// Package profile provides optional runtime profiling for ntro.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode (cpu.pprof,
// mem.pprof, ...) and analyzed with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The pprof build also registers the [net/http/pprof] handlers.
package profile
