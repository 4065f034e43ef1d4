package lang

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func testDocument(t *testing.T) *Document {
	t.Helper()

	return &Document{
		File: "chapter.typ",
		Calls: []CallExpr{
			*callAt(t, 1, 1, "[rgb 0, 1, 0]"),
			*callAt(t, 2, 5, "[rgb -30, 15.5, 0.5]"),
			*callAt(t, 3, 1, "[foo 1]"),
			*callAt(t, 4, 1, `[lang "he"]`),
			*callAt(t, 5, 1, "[rgb]"),
		},
	}
}

func TestCheck_SourceOrder(t *testing.T) {
	want := []string{
		"2:10-2:13 should be between 0.0 and 1.0",
		"2:15-2:19 should be between 0.0 and 1.0",
		"3:2-3:5 unknown function",
		"5:5-5:5 missing argument: red component",
		"5:5-5:5 missing argument: green component",
		"5:5-5:5 missing argument: blue component",
	}

	for _, jobs := range []int{1, 2, 8} {
		report, err := NewBinder(Builtins(), WithJobs(jobs)).Check(t.Context(), testDocument(t))
		if err != nil {
			t.Fatalf("jobs=%d: %v", jobs, err)
		}

		var got []string
		for _, d := range report.Diagnostics() {
			got = append(got, d.String())
		}

		if !slices.Equal(got, want) {
			t.Errorf("jobs=%d: diagnostics =\n%q\nwant\n%q", jobs, got, want)
		}

		if report.OK() {
			t.Error("report with diagnostics is OK")
		}
	}
}

func TestCheck_FailuresDoNotSuppressLaterCalls(t *testing.T) {
	report, err := NewBinder(Builtins()).Check(t.Context(), testDocument(t))
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(report.Results))
	}

	values := report.Values()
	if len(values) != 2 {
		t.Fatalf("got %d values, want 2", len(values))
	}

	if values[0].String() != "#00ff00ff" {
		t.Errorf("first value = %s", values[0])
	}

	if values[1].String() != `(lang: "he", dir: "rtl")` {
		t.Errorf("second value = %s", values[1])
	}

	for i, res := range report.Results {
		if res.Call != &report.Document.Calls[i] {
			t.Errorf("result %d refers to another call", i)
		}
	}
}

func TestCheck_Empty(t *testing.T) {
	report, err := NewBinder(Builtins()).Check(t.Context(), &Document{})
	if err != nil {
		t.Fatal(err)
	}

	if !report.OK() || len(report.Diagnostics()) != 0 {
		t.Error("empty document produced diagnostics")
	}
}

func TestCheck_ZeroBinder(t *testing.T) {
	var b Binder

	doc := &Document{
		Calls: []CallExpr{*callAt(t, 1, 1, "[rgb 1, 0, 0]"), *callAt(t, 2, 1, "[par]")},
	}

	done := make(chan struct{})

	var (
		report *Report
		err    error
	)

	go func() {
		defer close(done)

		report, err = b.Check(t.Context(), doc)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Check on a zero Binder did not return")
	}

	if err != nil {
		t.Fatal(err)
	}

	if got := report.Diagnostics().Count(KindUnknownFunction); got != 2 {
		t.Errorf("unknown function diagnostics = %d, want 2", got)
	}
}

func TestCheck_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	report, err := NewBinder(Builtins()).Check(ctx, testDocument(t))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}

	if report != nil {
		t.Error("canceled check returned a report")
	}
}

func TestDiagnostics_Err(t *testing.T) {
	var ds Diagnostics

	if ds.Err() != nil {
		t.Error("empty diagnostics produced an error")
	}

	ds.add(KindMissingArgument, MakeSpan(1, 5, 1, 5), msgMissingArgument+"red component")
	ds.add(KindConstraintViolation, MakeSpan(1, 6, 1, 9), "should be between 0.0 and 1.0")

	err := ds.Err()
	if !errors.Is(err, ErrDiagnostics) {
		t.Errorf("error = %v, want ErrDiagnostics", err)
	}

	if errors.Is(err, ErrDecode) {
		t.Error("diagnostics error matches an unrelated sentinel")
	}

	if ds.Count(KindMissingArgument) != 1 || ds.Count(KindUnknownFunction) != 0 {
		t.Error("Count mismatch")
	}

	want := "1:5-1:5 missing argument: red component\n1:6-1:9 should be between 0.0 and 1.0"
	if ds.String() != want {
		t.Errorf("String() = %q, want %q", ds.String(), want)
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindUnknownFunction:     "unknown-function",
		KindMissingArgument:     "missing-argument",
		KindUnexpectedArgument:  "unexpected-argument",
		KindDuplicateArgument:   "duplicate-argument",
		KindConstraintViolation: "constraint-violation",
		KindEvaluationFailed:    "evaluation-failed",
		Kind(99):                "Kind(99)",
	}

	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
