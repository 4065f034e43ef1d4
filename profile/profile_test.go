package profile

import (
	"slices"
	"testing"
)

func TestMake_AppliesOptions(t *testing.T) {
	p := Make(WithMode("cpu"), WithDir("/tmp/pprof"), WithQuiet(true))

	if p.Mode != "cpu" || p.Dir != "/tmp/pprof" || !p.Quiet {
		t.Errorf("options not applied: %+v", p)
	}
}

func TestProfiler_Start_Disabled(t *testing.T) {
	tests := []struct {
		name string
		p    Profiler
	}{
		{"zero", Profiler{}},
		{"unknown mode", Make(WithMode("sonar"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Enabled() {
				t.Fatalf("%+v should not be enabled", tt.p)
			}

			ctrl := tt.p.Start()
			if _, ok := ctrl.(ignore); !ok {
				t.Errorf("expected no-op profiler, got %T", ctrl)
			}

			ctrl.Stop()
		})
	}
}

func TestModes_Sorted(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	for _, m := range modes {
		if !Make(WithMode(m)).Enabled() {
			t.Errorf("mode %q listed but not enabled", m)
		}
	}
}
