package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/enconf/log"
)

// logLevel and logFormat reconfigure the default logger as soon as Kong
// decodes them, so that parse errors are already reported in the requested
// form.
type (
	logLevel  string
	logFormat string
)

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(text))))

	return nil
}

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(text))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevels}"  help:"Set log level."`
	Format     logFormat `default:"text"    enum:"${logFormats}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                      help:"Set timestamp layout, or none."`
	Caller     bool      `default:"false"                        help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                         help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevels":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormats": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the fully parsed flags, including those read from the
// configuration file, to the default logger.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies --log-* flags found anywhere in args before Kong parses them.
// Boolean flags never reach a TextUnmarshaler, and a flag placed after the
// command would otherwise take effect too late for early diagnostics.
// Scanning stops at "--" so that arguments of the applied command are left
// alone.
func (f *logConfig) scan(args []string) {
	valued := map[string]func(string){
		"level":  func(v string) { _ = f.Level.UnmarshalText([]byte(v)) },
		"format": func(v string) { _ = f.Format.UnmarshalText([]byte(v)) },
		"time-layout": func(v string) {
			f.TimeLayout = v
			log.Config(log.WithTimeLayout(v))
		},
	}

	toggles := map[string]func(bool){
		"caller": func(b bool) {
			f.Caller = b
			log.Config(log.WithCaller(b))
		},
		"pretty": func(b bool) {
			f.Pretty = b
			log.Config(log.WithPretty(b))
		},
	}

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		negated := false
		if rest, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negated = rest, true
		} else if rest, ok := strings.CutPrefix(name, "--log-"); ok {
			name = rest
		} else {
			continue
		}

		if set, ok := valued[name]; ok && !negated {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				value = args[i]
			}

			set(value)

			continue
		}

		if set, ok := toggles[name]; ok {
			enable := true

			if assigned {
				b, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = b
			}

			set(enable != negated)
		}
	}
}
