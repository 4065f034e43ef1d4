package lang

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
		ok    bool
	}{
		{"#f00", Color{255, 0, 0, 255}, true},
		{"#f008", Color{255, 0, 0, 0x88}, true},
		{"00ff00", Color{0, 255, 0, 255}, true},
		{"#11223344", Color{0x11, 0x22, 0x33, 0x44}, true},
		{"#ABCDEF", Color{0xab, 0xcd, 0xef, 255}, true},
		{"", Color{}, false},
		{"#", Color{}, false},
		{"#12", Color{}, false},
		{"#12345", Color{}, false},
		{"#zzz", Color{}, false},
		{"#1234567890", Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseColor(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseColor(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		value Value
		want  string
		typ   string
	}{
		{Int(-30), "-30", "integer"},
		{Float(1), "1.0", "float"},
		{Float(0.5), "0.5", "float"},
		{Float(15.5), "15.5", "float"},
		{Str("en"), `"en"`, "string"},
		{Bool(true), "true", "boolean"},
		{Color{1, 2, 3, 4}, "#01020304", "color"},
		{NewDict(), "(:)", "dictionary"},
		{NewDict().Set("a", Int(1)).Set("b", Str("x")), `(a: 1, b: "x")`, "dictionary"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}

			if got := tt.value.Type(); got != tt.typ {
				t.Errorf("Type() = %q, want %q", got, tt.typ)
			}
		})
	}
}

func TestDict_SetKeepsPosition(t *testing.T) {
	d := NewDict().Set("a", Int(1)).Set("b", Int(2)).Set("a", Int(3))

	if got := d.String(); got != "(a: 3, b: 2)" {
		t.Errorf("String() = %q", got)
	}

	if d.Len() != 2 {
		t.Errorf("Len() = %d", d.Len())
	}
}

func TestFromNative(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{name: "int", input: 3, want: "3"},
		{name: "int64", input: int64(-3), want: "-3"},
		{name: "uint64", input: uint64(7), want: "7"},
		{name: "float", input: 0.25, want: "0.25"},
		{name: "string", input: "x", want: `"x"`},
		{name: "bool", input: false, want: "false"},
		{name: "map", input: map[string]any{"b": 1, "a": "z"}, want: `(a: "z", b: 1)`},
		{name: "value", input: Float(2), want: "2.0"},
		{name: "overflow", input: uint64(1 << 63), wantErr: true},
		{name: "slice", input: []any{1}, wantErr: true},
		{name: "nil", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromNative(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Errorf("error = %v, want ErrInvalidValue", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.String() != tt.want {
				t.Errorf("FromNative(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind    string
		input   any
		want    Value
		wantErr bool
	}{
		{kind: "", input: uint64(1), want: Int(1)},
		{kind: "", input: 0.5, want: Float(0.5)},
		{kind: "float", input: 1, want: Float(1)},
		{kind: "int", input: 2.0, want: Int(2)},
		{kind: "int", input: 2.5, wantErr: true},
		{kind: "string", input: 12, want: Str("12")},
		{kind: "bool", input: "true", want: Bool(true)},
		{kind: "bool", input: "maybe", wantErr: true},
		{kind: "color", input: "#ff000080", want: Color{255, 0, 0, 128}},
		{kind: "color", input: "red", wantErr: true},
		{kind: "length", input: 1, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseValue(tt.kind, tt.input)

		if tt.wantErr {
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("ParseValue(%q, %v) error = %v, want ErrInvalidValue", tt.kind, tt.input, err)
			}

			continue
		}

		if err != nil || got != tt.want {
			t.Errorf("ParseValue(%q, %v) = %v, %v, want %v", tt.kind, tt.input, got, err, tt.want)
		}
	}
}
