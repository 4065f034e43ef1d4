// Package profile provides optional runtime profiling for callcheck.
//
// Profiling is compiled in only with the "pprof" build tag and is backed by
// [github.com/pkg/profile]. Without the tag, [Modes] is empty and every
// [Profiler] is a no-op, so callers never need to check the build
// configuration.
//
//	p := profile.Make(profile.WithMode("cpu"), profile.WithDir("/tmp/pprof"))
//	defer p.Start().Stop()
//
// Profile files are named after the mode (cpu.pprof, mem.pprof, ...) and
// can be inspected with "go tool pprof". Builds with the tag also register
// the [net/http/pprof] handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
