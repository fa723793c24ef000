// Package profile starts optional runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof -o enconf .
//
// Without the tag, [Start] always returns a no-op and [Modes] is
// empty. With it, the enconf command accepts --pprof-mode and --pprof-dir:
//
//	enconf --pprof-mode cpu -s env.yaml export
//	go tool pprof enconf ~/.cache/enconf/pprof/cpu.pprof
//
// Profile files are named after the mode (cpu.pprof, mem.pprof, ...) and
// written to the configured directory. Importing this package with the tag
// also registers the [net/http/pprof] handlers on the default mux.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
