package lang_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/callcheck/lang"
)

func ExampleBinder_Bind() {
	// [rgb -30, 0]
	call := &lang.CallExpr{
		Name:     "rgb",
		NameSpan: lang.MakeSpan(1, 2, 1, 5),
		Span:     lang.MakeSpan(1, 1, 1, 13),
		Args: []lang.ArgExpr{
			{Value: lang.Int(-30), Span: lang.MakeSpan(1, 6, 1, 9)},
			{Value: lang.Int(0), Span: lang.MakeSpan(1, 11, 1, 12)},
		},
	}

	_, diags := lang.NewBinder(lang.Builtins()).Bind(context.Background(), call)
	fmt.Println(diags)

	// Output:
	// 1:12-1:12 missing argument: blue component
	// 1:6-1:9 should be between 0.0 and 1.0
}

func ExampleBinder_Evaluate() {
	call := &lang.CallExpr{
		Name: "rgb",
		Span: lang.MakeSpan(1, 1, 1, 25),
		Args: []lang.ArgExpr{
			{Value: lang.Float(1), Span: lang.MakeSpan(1, 6, 1, 9)},
			{Value: lang.Float(0.5), Span: lang.MakeSpan(1, 11, 1, 14)},
			{Value: lang.Int(0), Span: lang.MakeSpan(1, 16, 1, 17)},
			{Name: "alpha", Value: lang.Float(0.5), Span: lang.MakeSpan(1, 19, 1, 29)},
		},
	}

	_, value, _ := lang.NewBinder(lang.Builtins()).Evaluate(context.Background(), call)
	fmt.Println(value)

	// Output:
	// #ff800080
}

func ExampleDecodeDocument() {
	const input = `
calls:
  - name: lang
    span: "1:1-1:19"
    args:
      - value: xx
        span: "1:7-1:9"
      - name: dir
        value: up
        span: "1:11-1:18"
`

	ctx := context.Background()

	doc, err := lang.DecodeDocument(ctx, strings.NewReader(input), "page.typ")
	if err != nil {
		fmt.Println(err)

		return
	}

	report, err := lang.NewBinder(lang.Builtins()).Check(ctx, doc)
	if err != nil {
		fmt.Println(err)

		return
	}

	_ = lang.WriteDiagnostics(ctx, os.Stdout, lang.FormatText, report)

	// Output:
	// page.typ:1:11-1:18 expected one of "ltr", "rtl"
}
