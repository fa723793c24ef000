package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/enconf/document"
	"github.com/ardnew/enconf/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command output: the kong application's
// stdout if ctx carries one, or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

type sourcesKey struct{}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSources returns a new context.Context containing the given source
// document paths.
func WithSources(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, sources)
}

func sourcesFrom(ctx context.Context) []string {
	s, _ := ctx.Value(sourcesKey{}).([]string)

	return s
}

// Source is a named configuration document.
type Source struct {
	Name     string
	Document *document.Document
}

// uniqueSources returns sources with duplicate files removed, keeping the
// first occurrence of each in order.
//
// Files are compared by identity with [os.SameFile], so different paths to
// the same file (relative, absolute, or through a symlink) are one source.
// Every occurrence of "-" after the first is dropped. A source that cannot be
// stat'ed is an error.
func uniqueSources(sources []string) ([]string, error) {
	var (
		out   = make([]string, 0, len(sources))
		seen  = make([]os.FileInfo, 0, len(sources))
		stdin bool
	)

next:
	for _, src := range sources {
		if src == stdinSource {
			if !stdin {
				out = append(out, src)
				stdin = true
			}

			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			return nil, ErrSource.Wrap(err).
				With(slog.String("file", src))
		}

		if info.IsDir() {
			return nil, ErrSource.With(
				slog.String("file", src),
				slog.Bool("directory", true),
			)
		}

		for _, prev := range seen {
			if os.SameFile(prev, info) {
				continue next
			}
		}

		seen = append(seen, info)
		out = append(out, src)
	}

	return out, nil
}

// stdinIsTerminal reports whether stdin is attached to a terminal.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

// loadSources parses every source document stored in ctx, in order.
//
// With no sources, stdin is read unless it is a terminal.
func loadSources(ctx context.Context) ([]Source, error) {
	paths, err := uniqueSources(sourcesFrom(ctx))
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		if stdinIsTerminal() {
			return nil, ErrNoSource
		}

		paths = []string{stdinSource}
	}

	logger := log.Default()
	docs := make([]Source, 0, len(paths))

	for _, path := range paths {
		var doc *document.Document

		if path == stdinSource {
			doc, err = document.ParseReader(ctx, os.Stdin,
				document.WithSource("stdin"),
				document.WithLogger(logger),
			)
		} else {
			doc, err = document.ParseFile(ctx, path,
				document.WithLogger(logger),
			)
		}

		if err != nil {
			return nil, err
		}

		logger.DebugContext(ctx, "loaded source",
			slog.String("source", path),
			slog.Int("sections", len(doc.Sections)),
			slog.Int("entries", doc.Len()),
		)

		docs = append(docs, Source{Name: path, Document: doc})
	}

	return docs, nil
}
