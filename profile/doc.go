// Package profile provides optional runtime profiling for the binconf
// application.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (default), all operations are no-ops with zero
// runtime overhead.
//
// Supported modes when built with the tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace. Use [Modes] to retrieve the
// list programmatically.
//
// Profile files are written to the configured output directory with names
// matching the profiling mode (e.g., cpu.pprof, mem.pprof):
//
//	binconf --pprof-mode=cpu --pprof-dir=/tmp/profiles translate -i conf.bc
//	go tool pprof /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
