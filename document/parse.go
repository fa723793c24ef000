package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/enconf/log"
	"github.com/ardnew/enconf/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrOpenFile  = pkg.NewError("failed to open document")
	ErrReadInput = pkg.NewError("failed to read input")
	ErrParse     = pkg.NewError("parse error")
	ErrMalformed = pkg.NewError("malformed document")
)

// SyntaxError reports a YAML syntax error. Its message includes the offending
// source lines.
type SyntaxError struct {
	err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return strings.TrimSpace(yaml.FormatError(e.err, false, true))
}

// Unwrap returns the underlying YAML error.
func (e *SyntaxError) Unwrap() error { return e.err }

// Option configures document parsing.
type Option func(*options)

type options struct {
	logger log.Logger
	source string
}

// WithLogger sets the structured logger for trace-level diagnostics.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource sets the name reported for the input in errors and logs.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

func makeOptions(opts ...Option) options {
	o := options{source: "reader"}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ParseFile parses the document stored in the file at path.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenFile.Wrap(err).
			With(slog.String("file", path))
	}
	defer f.Close()

	return ParseReader(ctx, f, append([]Option{WithSource(path)}, opts...)...)
}

// ParseString parses a document from a string.
func ParseString(ctx context.Context, s string, opts ...Option) (*Document, error) {
	return parse(ctx, []byte(s), makeOptions(opts...))
}

// ParseReader parses a document read from r until EOF.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", o.source))
	}

	return parse(ctx, data, o)
}

func parse(ctx context.Context, data []byte, o options) (*Document, error) {
	o.logger.TraceContext(
		ctx,
		"parse start",
		slog.String("source", o.source),
		slog.Int("source_bytes", len(data)),
	)

	var root any

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.UseOrderedMap())

	err := dec.DecodeContext(ctx, &root)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrParse.Wrap(&SyntaxError{err: err}).
			With(slog.String("source", o.source))
	}

	doc, err := build(root)
	if err != nil {
		return nil, ErrMalformed.Wrap(err).
			With(slog.String("source", o.source))
	}

	o.logger.TraceContext(
		ctx,
		"parse complete",
		slog.String("source", o.source),
		slog.Int("sections", len(doc.Sections)),
		slog.Int("entries", doc.Len()),
	)

	return doc, nil
}

// build converts the decoded YAML root into a Document.
//
// Each top-level key whose value is a mapping, a sequence of single-key
// mappings (the !!omap form), or null is a section. Any other top-level pair
// is an entry of an unnamed section placed at that position.
func build(root any) (*Document, error) {
	doc := new(Document)

	if root == nil {
		return doc, nil
	}

	top, ok := topLevel(root)
	if !ok {
		return nil, fmt.Errorf("top level must be a mapping, found %s", kind(root))
	}

	implicit := false // last section holds top-level entries

	for _, item := range top {
		name := stringify(item.Key)

		entries, isSection := sectionEntries(item.Value)
		if isSection {
			doc.Sections = append(doc.Sections, NewSection(name, entries...))
			implicit = false

			continue
		}

		if !implicit {
			doc.Sections = append(doc.Sections, NewSection(""))
			implicit = true
		}

		last := &doc.Sections[len(doc.Sections)-1]
		last.Entries = append(last.Entries, NewEntry(name, item.Value))
	}

	return doc, nil
}

// topLevel returns the pairs of the document root. The root is either a
// mapping or a sequence of single-key mappings (the !!omap form).
func topLevel(root any) (yaml.MapSlice, bool) {
	switch v := root.(type) {
	case yaml.MapSlice:
		return v, true

	case []any:
		top := make(yaml.MapSlice, 0, len(v))

		for _, elem := range v {
			pair, ok := elem.(yaml.MapSlice)
			if !ok || len(pair) != 1 {
				return nil, false
			}

			top = append(top, pair[0])
		}

		return top, true

	default:
		return nil, false
	}
}

// sectionEntries returns the entries of v if v has the shape of a section.
func sectionEntries(v any) ([]Entry, bool) {
	switch v := v.(type) {
	case nil:
		return nil, true

	case yaml.MapSlice:
		entries := make([]Entry, len(v))
		for i, item := range v {
			entries[i] = NewEntry(stringify(item.Key), item.Value)
		}

		return entries, true

	case []any:
		if len(v) == 0 {
			return nil, false
		}

		entries := make([]Entry, 0, len(v))

		for _, elem := range v {
			pair, ok := elem.(yaml.MapSlice)
			if !ok || len(pair) != 1 {
				return nil, false
			}

			entries = append(entries, NewEntry(stringify(pair[0].Key), pair[0].Value))
		}

		return entries, true

	default:
		return nil, false
	}
}

func kind(v any) string {
	switch v.(type) {
	case []any:
		return "sequence"
	case yaml.MapSlice:
		return "mapping"
	default:
		return "scalar"
	}
}
