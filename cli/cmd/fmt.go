package cmd

import (
	"context"
	"io"
	"log/slog"
)

// Fmt parses the source documents and writes them back in the chosen format,
// preserving the authored order of sections and entries.
type Fmt struct {
	YAML YAML `cmd:"" default:"withargs" help:"Format as YAML (default)."`
	JSON JSON `cmd:""                    help:"Format as JSON."`
}

// YAML formats source documents as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)." short:"i"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := loadSources(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	for i, src := range sources {
		if i > 0 {
			// Multiple documents share one YAML stream.
			if _, err = io.WriteString(w, "---\n"); err != nil {
				return ErrWrite.Wrap(err)
			}
		}

		err = src.Document.FormatYAML(ctx, w, y.Indent)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err).
				With(slog.String("source", src.Name))
		}
	}

	return nil
}

// JSON formats source documents as JSON, one value per document.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)." short:"i"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := loadSources(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	for _, src := range sources {
		err = src.Document.FormatJSON(ctx, w, j.Indent)
		if err != nil {
			return ErrWrite.Wrap(err).With(
				slog.String("source", src.Name),
				slog.String("format", "json"),
			)
		}
	}

	return nil
}
