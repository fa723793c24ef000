package resolver

import (
	"context"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ardnew/mung"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/enconf/document"
	"github.com/ardnew/enconf/log"
)

// ReportWidth is the width of the separator line logged around a run.
const ReportWidth = 79

// placeholder matches <NAME> with the shortest span between '<' and the next
// '>'.
var placeholder = regexp.MustCompile(`<(.*?)>`)

// Assignment is the resolved value of a single entry.
type Assignment struct {
	// Name is the variable name.
	Name string
	// Value is the final value stored in the table.
	Value string
	// Fragments is Value split on the list separator.
	Fragments []string
	// Section names the document section holding the entry.
	Section string
	// Unresolved lists placeholder names that were not defined when the entry
	// was resolved, in order of appearance.
	Unresolved []string
}

// Option configures a [Resolver].
type Option func(*options)

type options struct {
	logger    log.Logger
	separator string
	warn      bool
	dedupe    bool
}

// WithLogger sets the logger receiving the resolution report.
// If not provided, the logger is zero-valued and nothing is reported.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeparator sets the string joining the fragments of a list value.
// The default is [os.PathListSeparator].
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithWarnUnresolved enables a warning for each placeholder naming an
// undefined variable. The warning suggests the closest defined name, if any.
// Resolved values are the same either way.
func WithWarnUnresolved(enable bool) Option {
	return func(o *options) {
		o.warn = enable
	}
}

// WithDedupe enables removal of repeated items from list values, keeping the
// first occurrence of each. Empty items, such as those left by an unset
// placeholder, are removed as well. Single-fragment values are never changed.
func WithDedupe(enable bool) Option {
	return func(o *options) {
		o.dedupe = enable
	}
}

func makeOptions(opts ...Option) options {
	o := options{separator: string(os.PathListSeparator)}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Resolver resolves the entries of a document against a [Table].
//
// A Resolver holds configuration only. It is safe to use from multiple
// goroutines as long as each run is given its own Table.
type Resolver struct {
	options
}

// New returns a Resolver configured with the given options.
func New(opts ...Option) *Resolver {
	return &Resolver{options: makeOptions(opts...)}
}

// Resolve resolves every entry of doc in document order, updating table with
// each result, and returns the assignments in the order they were made.
func Resolve(
	ctx context.Context,
	doc *document.Document,
	table Table,
	opts ...Option,
) []Assignment {
	return New(opts...).Resolve(ctx, doc, table)
}

// Assignments returns an iterator over the assignments made by resolving doc
// against table. See [Resolver.Assignments].
func Assignments(
	ctx context.Context,
	doc *document.Document,
	table Table,
	opts ...Option,
) iter.Seq[Assignment] {
	return New(opts...).Assignments(ctx, doc, table)
}

// Resolve resolves every entry of doc in document order, updating table with
// each result, and returns the assignments in the order they were made.
func (r *Resolver) Resolve(
	ctx context.Context,
	doc *document.Document,
	table Table,
) []Assignment {
	out := make([]Assignment, 0, doc.Len())
	for a := range r.Assignments(ctx, doc, table) {
		out = append(out, a)
	}

	return out
}

// Assignments returns an iterator over the assignments made by resolving doc
// against table.
//
// Each assignment is committed to table before it is yielded, so a consumer
// observes the table exactly as the next entry will. Stopping the iteration
// early leaves the remaining entries unresolved.
func (r *Resolver) Assignments(
	ctx context.Context,
	doc *document.Document,
	table Table,
) iter.Seq[Assignment] {
	return func(yield func(Assignment) bool) {
		line := strings.Repeat("-", ReportWidth)

		r.logger.InfoContext(ctx, line)
		defer r.logger.InfoContext(ctx, line)

		for section, entry := range doc.Entries() {
			a := r.assign(ctx, section, entry, table)

			r.report(ctx, a)

			if !yield(a) {
				return
			}
		}
	}
}

// assign resolves a single entry and commits the result to table.
func (r *Resolver) assign(
	ctx context.Context,
	section string,
	entry document.Entry,
	table Table,
) Assignment {
	a := Assignment{Name: entry.Name, Section: section}

	raw := entry.Fragments()
	frags := make([]string, 0, len(raw))

	for _, frag := range raw {
		frags = append(frags, r.substitute(ctx, &a, filepath.Clean(frag), table))
	}

	a.Value = strings.Join(frags, r.separator)

	if r.dedupe && len(frags) > 1 {
		a.Value = mung.Make(
			mung.WithSubjectItems(a.Value),
			mung.WithDelim(r.separator),
		).String()
	}

	if a.Value != "" {
		a.Fragments = strings.Split(a.Value, r.separator)
	}

	table.Set(a.Name, a.Value)

	return a
}

// substitute replaces every placeholder of frag in one pass. Replacement text
// is never scanned again.
func (r *Resolver) substitute(
	ctx context.Context,
	a *Assignment,
	frag string,
	table Table,
) string {
	return placeholder.ReplaceAllStringFunc(frag, func(match string) string {
		name := match[1 : len(match)-1]

		if v, ok := table.Lookup(name); ok {
			return v
		}

		a.Unresolved = append(a.Unresolved, name)

		if r.warn {
			r.warnUnresolved(ctx, a.Name, name, table)
		}

		return ""
	})
}

func (r *Resolver) warnUnresolved(
	ctx context.Context,
	entry, name string,
	table Table,
) {
	attrs := []slog.Attr{
		slog.String("name", entry),
		slog.String("placeholder", name),
	}

	if s, ok := Suggest(name, table); ok {
		attrs = append(attrs, slog.String("suggestion", s))
	}

	r.logger.WarnContext(ctx, "unresolved placeholder", attrs...)
}

// report logs the name of an assignment followed by each fragment of its
// final value.
func (r *Resolver) report(ctx context.Context, a Assignment) {
	r.logger.InfoContext(ctx, a.Name)

	// An empty value still reports one empty fragment line.
	for _, frag := range strings.Split(a.Value, r.separator) {
		r.logger.InfoContext(ctx, "  "+frag)
	}
}

// Suggest returns the defined name of table that best matches name.
func Suggest(name string, table Table) (string, bool) {
	if name == "" {
		return "", false
	}

	matches := fuzzy.Find(name, table.Names())
	if len(matches) == 0 {
		return "", false
	}

	return matches[0].Str, true
}
