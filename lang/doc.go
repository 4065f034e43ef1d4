// Package lang binds bracketed markup function calls to declared function
// signatures and reports every problem found as a precise, span-carrying
// diagnostic.
//
// A call such as
//
//	[rgb -30, 0]
//
// is given to the binder as a [CallExpr]: the function name and its
// arguments, each with the exact source [Span] it was parsed from. The
// binder resolves the name in a [Registry], pairs arguments with the
// parameters of the [FunctionSignature] and validates every bound value
// against its parameter's [Constraint]. The call above yields two
// diagnostics, one per problem:
//
//	1:12-1:12 missing argument: blue component
//	1:6-1:9 should be between 0.0 and 1.0
//
// # Binding
//
// Positional arguments fill non-named parameters in declaration order.
// Named arguments ("dir: rtl") bind to the parameter of that name. Every
// problem is reported, never just the first:
//
//   - an unknown function name yields a single diagnostic covering the name,
//     with a "did you mean" hint when a registered name resembles it
//   - each required parameter left unbound yields "missing argument: <noun>"
//     at the zero-width span right after the last argument
//   - each surplus positional argument, or named argument without a matching
//     parameter, yields "unexpected argument"; a second argument for the same
//     parameter yields "duplicate argument"
//   - each bound value rejected by its constraint yields the constraint's
//     message at the argument's span
//
// Missing arguments are reported first, in parameter order, followed by
// surplus arguments in source order and constraint violations in parameter
// order.
//
// # Documents
//
// A [Document] holds the calls of one source file. [Binder.Check] checks
// them concurrently and returns a [Report] in source order; a failing call
// never hides the diagnostics of another. Documents are read with
// [DecodeDocument] and reports written with [WriteDiagnostics].
//
// # Libraries
//
// [Builtins] provides rgb, font, par, lang, underline, strike and overline.
// Further functions are declared in YAML, TOML or JSON library files (see
// [Library]), with constraints and results written as expr-lang
// expressions, and found along the search path built by [LibraryPath].
package lang
