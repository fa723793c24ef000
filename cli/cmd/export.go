package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/enconf/document"
	"github.com/ardnew/enconf/log"
	"github.com/ardnew/enconf/resolver"
)

// Export resolves every source document against a copy of the process
// environment and prints the final value of each assigned variable.
type Export struct {
	Resolve resolveFlags `embed:""`

	Format string `default:"sh" enum:"sh,fish,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                           help:"Indent width for json and yaml output."`
}

// Run executes the export command.
func (e *Export) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := loadSources(ctx)
	if err != nil {
		return err
	}

	env := resolver.MapEnv(resolver.TableFrom(os.Environ()))
	opts := e.Resolve.options(log.Default())

	var names []string

	seen := make(map[string]bool)

	for _, src := range sources {
		done, err := resolver.Apply(ctx, src.Document, env, opts...)
		if err != nil {
			return err
		}

		for _, a := range done {
			if !seen[a.Name] {
				seen[a.Name] = true
				names = append(names, a.Name)
			}
		}
	}

	err = e.write(ctx, stdout(ctx), names, env)
	if err != nil {
		return ErrWrite.Wrap(err).
			With(slog.String("format", e.Format))
	}

	return nil
}

// write prints the variables of env listed in names, in order.
func (e *Export) write(
	ctx context.Context,
	w io.Writer,
	names []string,
	env resolver.MapEnv,
) error {
	switch e.Format {
	case "json", "yaml":
		entries := make([]document.Entry, len(names))
		for i, name := range names {
			entries[i] = document.NewEntry(name, env[name])
		}

		doc := document.New(document.NewSection("", entries...))

		if e.Format == "json" {
			return doc.FormatJSON(ctx, w, e.Indent)
		}

		return doc.FormatYAML(ctx, w, e.Indent)

	case "fish":
		for _, name := range names {
			_, err := fmt.Fprintf(w, "set -gx %s %s;\n", name, quoteFish(env[name]))
			if err != nil {
				return err
			}
		}

	default:
		for _, name := range names {
			_, err := fmt.Fprintf(w, "export %s=%s\n", name, quoteSh(env[name]))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// quoteSh quotes s for POSIX shells.
func quoteSh(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// quoteFish quotes s for the fish shell, where a backslash escapes a quote or
// another backslash inside single quotes.
func quoteFish(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}
