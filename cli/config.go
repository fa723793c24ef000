package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/enconf/log"
)

// baseConfig is the file name of the CLI configuration file.
const baseConfig = "config.yaml"

// loadConfig returns a [kong.ConfigurationLoader] that reads a YAML mapping
// of flag names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadConfig(ctx), "/path/to/config.yaml")
//
// Keys are long flag names, with either hyphens or underscores:
//
//	log-level: debug
//	log_format: text
//	log-pretty: false
//	source:
//	  - ~/.config/enconf/env.yaml
//
// Command-line flags override config file values. A config file that cannot
// be parsed is reported and ignored.
func loadConfig(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var raw map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &raw)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring invalid configuration file",
					slog.Any("error", err),
				)
			}

			return config{}, nil
		}

		conf := make(config, len(raw))
		for key, val := range raw {
			conf[key] = flagToken(val)
		}

		return conf, nil
	}
}

// flagToken converts a decoded YAML value into a form kong can decode.
// Kong parses numbers from strings.
func flagToken(v any) any {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = flagToken(elem)
		}

		return out
	default:
		return v
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
