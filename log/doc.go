// Package log is the structured logger shared by the enconf packages. It
// wraps [log/slog] with a level below debug, configurable timestamps, and a
// colorized terminal encoding.
//
// A [Logger] is built once from functional options and rebuilt, rather than
// mutated, to change its configuration:
//
//	logger := log.Make(os.Stderr, log.WithFormat(log.FormatJSON), log.WithPretty(false))
//	logger.InfoContext(ctx, "applied", slog.String("name", "PATH"))
//	verbose := logger.Wrap(log.WithLevel(log.LevelTrace))
//
// The package-level functions write through [Default], which the enconf
// command reconfigures from its --log-* flags with [Config].
//
// Records carry upper-case level names (TRACE, DEBUG, INFO, WARN, ERROR) in
// both encodings. The zero Logger discards everything, so components may
// hold one without checking whether logging was requested.
package log
