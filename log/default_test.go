package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefault_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, `"level":"`+tt.level+`"`) {
				t.Errorf("expected level %q, got: %s", tt.level, output)
			}

			if !strings.Contains(output, `"key":"value"`) {
				t.Errorf("expected output to contain attribute, got: %s", output)
			}
		})
	}
}

func TestDefault_ContextFunctions_ReportCaller(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithCaller(true), WithPretty(false))

	ctx := context.Background()

	for _, fn := range []func(context.Context, string, ...slog.Attr){
		TraceContext, DebugContext, InfoContext, WarnContext, ErrorContext,
	} {
		buf.Reset()
		fn(ctx, "message")

		if !strings.Contains(buf.String(), "default_test.go") {
			t.Errorf("expected caller in default_test.go, got: %s", buf.String())
		}
	}

	buf.Reset()
	With(slog.String("file", "page.typ")).Info("message")

	if !strings.Contains(buf.String(), `"file":"page.typ"`) {
		t.Errorf("expected attribute from With, got: %s", buf.String())
	}

	if Default().Level() != LevelTrace {
		t.Errorf("expected Default to reflect Config, got %v", Default().Level())
	}
}
