// Package cli contains the command line interface for enconf.
//
// # Usage
//
// Source documents are named with the repeatable --source flag and applied in
// the order given. A source of "-" reads stdin. With no sources, stdin is
// read unless it is a terminal.
//
//	enconf -s base.yaml -s tools.yaml -- make build
//	enconf -s env.yaml export --format fish | source
//	enconf -s env.yaml fmt json
//
// The default command, apply, loads the documents into the environment and
// runs the command following "--" with stdio attached. The exit code of the
// command becomes the exit code of enconf.
//
// # Configuration File
//
// Flag defaults are read from config.yaml in the user configuration directory
// (for example ~/.config/enconf/config.yaml), a YAML mapping of long flag
// names to values. A JSON file of the same name with a ".json" suffix is
// read as well. Command-line flags override both. The init command writes
// the current flag values to config.yaml:
//
//	enconf --log-format=text --no-log-pretty init
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// Logs are written to stderr, so the output of export and fmt can be
// redirected cleanly.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o enconf .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/enconf/pprof)
package cli
