package resolver

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/ardnew/enconf/document"
	"github.com/ardnew/enconf/log"
	"github.com/ardnew/enconf/pkg"
)

// ErrExport is returned when an assignment cannot be written to the
// environment.
var ErrExport = pkg.NewError("failed to export variable")

// Environment is a key/value store of variables, such as the process
// environment.
type Environment interface {
	// Environ returns the variables as "KEY=VALUE" strings.
	Environ() []string
	// Setenv defines key with the given value.
	Setenv(key, value string) error
}

// ProcessEnv is the environment of the current process.
type ProcessEnv struct{}

// Environ returns [os.Environ].
func (ProcessEnv) Environ() []string { return os.Environ() }

// Setenv calls [os.Setenv].
func (ProcessEnv) Setenv(key, value string) error { return os.Setenv(key, value) }

// MapEnv is an in-memory environment. The zero value is not usable; create
// one with make or a composite literal.
type MapEnv map[string]string

// Environ returns the variables ordered by key.
func (m MapEnv) Environ() []string { return Table(m).Environ() }

// Setenv defines key with the given value.
func (m MapEnv) Setenv(key, value string) error {
	m[key] = value

	return nil
}

// applyMu serializes runs of [Apply]. The process environment is shared by
// every goroutine.
var applyMu sync.Mutex

// Apply resolves doc against a table seeded from env and writes each
// assignment to env in the order it was made.
//
// Apply stops at the first write that fails and returns the assignments
// written before it along with an error wrapping [ErrExport].
func Apply(
	ctx context.Context,
	doc *document.Document,
	env Environment,
	opts ...Option,
) ([]Assignment, error) {
	applyMu.Lock()
	defer applyMu.Unlock()

	table := TableFrom(env.Environ())
	done := make([]Assignment, 0, doc.Len())

	for a := range Assignments(ctx, doc, table, opts...) {
		if err := env.Setenv(a.Name, a.Value); err != nil {
			return done, ErrExport.Wrap(err).
				With(slog.String("name", a.Name))
		}

		done = append(done, a)
	}

	return done, nil
}

// LoadFile parses the document at path and applies it to the process
// environment, reporting to the default logger unless a logger is given.
//
// Nothing is written to the environment if the file cannot be read or parsed.
func LoadFile(ctx context.Context, path string, opts ...Option) ([]Assignment, error) {
	opts = append([]Option{WithLogger(log.Default())}, opts...)
	o := makeOptions(opts...)

	doc, err := document.ParseFile(ctx, path, document.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	return Apply(ctx, doc, ProcessEnv{}, opts...)
}
