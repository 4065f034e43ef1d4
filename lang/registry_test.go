package lang

import (
	"slices"
	"testing"
)

func TestRegistry_RegisterResolve(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Resolve("f"); ok {
		t.Fatal("empty registry resolved a name")
	}

	r.Register(FunctionSignature{Name: "f", Doc: "first", Params: []ParameterSpec{{Name: "a"}, {Name: "b"}}})
	r.Register(FunctionSignature{Name: "f", Doc: "second", Params: []ParameterSpec{{Name: "x"}}})

	sig, ok := r.Resolve("f")
	if !ok {
		t.Fatal("f not resolved")
	}

	if sig.Doc != "second" || len(sig.Params) != 1 {
		t.Errorf("last registration did not win: %+v", sig)
	}

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_AssignsPositions(t *testing.T) {
	params := []ParameterSpec{{Name: "a", Position: 7}, {Name: "b"}, {Name: "c"}}

	r := NewRegistry(FunctionSignature{Name: "f", Params: params})

	sig, _ := r.Resolve("f")
	for i, p := range sig.Params {
		if p.Position != i {
			t.Errorf("param %s position = %d, want %d", p.Name, p.Position, i)
		}
	}

	if params[0].Position != 7 {
		t.Error("Register modified the caller's parameters")
	}
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry

	if _, ok := r.Resolve("rgb"); ok {
		t.Error("nil registry resolved a name")
	}

	if r.Len() != 0 || r.Names() != nil {
		t.Error("nil registry is not empty")
	}

	for range r.All() {
		t.Error("nil registry yielded a signature")
	}
}

func TestRegistry_NamesAndAll(t *testing.T) {
	want := []string{"font", "lang", "overline", "par", "rgb", "strike", "underline"}

	r := Builtins()

	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %q, want %q", got, want)
	}

	var got []string
	for sig := range r.All() {
		got = append(got, sig.Name)
	}

	if !slices.Equal(got, want) {
		t.Errorf("All() = %q, want %q", got, want)
	}
}

func TestRegistry_Merge(t *testing.T) {
	r := Builtins()
	r.Merge(NewRegistry(
		FunctionSignature{Name: "rgb", Doc: "override"},
		FunctionSignature{Name: "luma"},
	))

	if sig, _ := r.Resolve("rgb"); sig.Doc != "override" {
		t.Errorf("rgb doc = %q, want override", sig.Doc)
	}

	if _, ok := r.Resolve("luma"); !ok {
		t.Error("luma not merged")
	}

	if sig, _ := Builtins().Resolve("rgb"); sig.Doc == "override" {
		t.Error("Builtins shares state between calls")
	}
}

func TestRegistry_Suggest(t *testing.T) {
	r := Builtins()

	tests := []struct {
		name string
		want []string
	}{
		{name: "rgbb", want: []string{"rgb"}},
		{name: "rb", want: []string{"rgb"}},
		{name: "line", want: []string{"overline", "underline"}},
		{name: "zzz", want: nil},
		{name: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Suggest(tt.name)

			if !slices.Equal(got, tt.want) && len(got)+len(tt.want) > 0 {
				t.Errorf("Suggest(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
