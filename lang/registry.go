package lang

import (
	"iter"
	"slices"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the number of "did you mean" candidates.
const maxSuggestions = 3

// Registry maps function names to signatures.
//
// A Registry is populated once, before any call is bound, and is read-only
// afterwards. Register is not safe for concurrent use; every other method
// is.
type Registry struct {
	sigs map[string]*FunctionSignature
}

// NewRegistry returns a Registry holding the given signatures, registered
// in order.
func NewRegistry(sigs ...FunctionSignature) *Registry {
	r := &Registry{sigs: make(map[string]*FunctionSignature, len(sigs))}

	for _, sig := range sigs {
		r.Register(sig)
	}

	return r
}

// Register adds sig, replacing any signature of the same name.
// Parameter positions are assigned from declaration order.
func (r *Registry) Register(sig FunctionSignature) {
	if r.sigs == nil {
		r.sigs = make(map[string]*FunctionSignature)
	}

	sig.Params = slices.Clone(sig.Params)
	for i := range sig.Params {
		sig.Params[i].Position = i
	}

	r.sigs[sig.Name] = &sig
}

// Resolve returns the signature registered under name.
// The returned signature must not be modified.
func (r *Registry) Resolve(name string) (*FunctionSignature, bool) {
	if r == nil {
		return nil, false
	}

	sig, ok := r.sigs[name]

	return sig, ok
}

// Len returns the number of registered signatures.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.sigs)
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	return sortedKeys(r.sigs)
}

// All returns an iterator over all signatures sorted by name.
func (r *Registry) All() iter.Seq[*FunctionSignature] {
	return func(yield func(*FunctionSignature) bool) {
		for _, name := range r.Names() {
			if !yield(r.sigs[name]) {
				return
			}
		}
	}
}

// Merge registers every signature of other into r (last write wins).
func (r *Registry) Merge(other *Registry) {
	for sig := range other.All() {
		r.Register(*sig)
	}
}

// Suggest returns up to three registered names resembling name, best match
// first. A name resembles another when either is a fuzzy subsequence of the
// other.
func (r *Registry) Suggest(name string) []string {
	if name == "" || r.Len() == 0 {
		return nil
	}

	names := r.Names()
	seen := make(map[string]bool, maxSuggestions)

	var out []string

	add := func(s string) {
		if !seen[s] && len(out) < maxSuggestions {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, m := range fuzzy.Find(name, names) {
		add(m.Str)
	}

	for _, n := range names {
		if len(fuzzy.Find(n, []string{name})) > 0 {
			add(n)
		}
	}

	return out
}
