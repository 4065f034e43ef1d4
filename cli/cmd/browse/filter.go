package browse

import (
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/callcheck/lang"
)

// signatures adapts a signature list to [fuzzy.Source], matching on names.
type signatures []*lang.FunctionSignature

func (s signatures) String(i int) string { return s[i].Name }
func (s signatures) Len() int            { return len(s) }

// Filter returns the signatures whose names fuzzy-match pattern, best match
// first, along with the matched character indexes of each name. An empty
// pattern returns every signature in the given order with no highlights.
func Filter(
	sigs []*lang.FunctionSignature,
	pattern string,
) ([]*lang.FunctionSignature, [][]int) {
	if pattern == "" {
		return slices.Clone(sigs), make([][]int, len(sigs))
	}

	matches := fuzzy.FindFrom(pattern, signatures(sigs))
	out := make([]*lang.FunctionSignature, len(matches))
	idx := make([][]int, len(matches))

	for i, m := range matches {
		out[i] = sigs[m.Index]
		idx[i] = m.MatchedIndexes
	}

	return out, idx
}
