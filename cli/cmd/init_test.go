package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	LogLevel   string   `default:"info"  name:"log-level"`
	LogPretty  bool     `default:"true"  name:"log-pretty"`
	Lib        []string `name:"lib"`
	Jobs       int      `default:"4"     name:"jobs"`
	PprofMode  string   `default:"cpu"   name:"pprof-mode"`
	Secret     string   `default:"x"     hidden:""          name:"secret"`
	Unset      string   `name:"unset"`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(t.Context(), ktx)
}

func TestInit_Run(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create new config"},
		{name: "overwrite with force", force: true, exists: true},
		{name: "fail without force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--lib=/usr/share/callcheck", "--log-level=debug")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, data)
			}

			if got["log-level"] != "debug" || got["log-pretty"] != true {
				t.Errorf("unexpected settings: %v", got)
			}

			if libs, ok := got["lib"].([]any); !ok || len(libs) != 1 || libs[0] != "/usr/share/callcheck" {
				t.Errorf("unexpected lib setting: %#v", got["lib"])
			}

			for _, skipped := range []string{"help", "pprof-mode", "secret", "unset"} {
				if _, ok := got[skipped]; ok {
					t.Errorf("setting %q should not be written", skipped)
				}
			}
		})
	}
}

func TestSettingValue(t *testing.T) {
	type level string

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"named string", level("warn"), "warn"},
		{"bool", false, false},
		{"int", 3, 3},
		{"empty slice", []string{}, nil},
		{"struct", struct{}{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := settingValue(tt.in); got != tt.want {
				t.Errorf("settingValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
