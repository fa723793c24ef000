package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ardnew/enconf/log"
	"github.com/ardnew/enconf/resolver"
)

// resolveFlags are the flags shared by commands that resolve documents.
type resolveFlags struct {
	WarnUnresolved bool `help:"Warn about placeholders naming undefined variables." negatable:""`
	Dedupe         bool `help:"Remove repeated items from list values."             negatable:""`
}

func (f resolveFlags) options(logger log.Logger) []resolver.Option {
	return []resolver.Option{
		resolver.WithLogger(logger),
		resolver.WithWarnUnresolved(f.WarnUnresolved),
		resolver.WithDedupe(f.Dedupe),
	}
}

// Apply loads every source document into the process environment and
// optionally runs a command in it.
type Apply struct {
	Resolve resolveFlags `embed:""`

	Command []string `arg:"" help:"Command to run with the resulting environment." name:"command" optional:"" passthrough:""`
}

// Run executes the apply command.
func (a *Apply) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := loadSources(ctx)
	if err != nil {
		return err
	}

	opts := a.Resolve.options(log.Default())

	for _, src := range sources {
		_, err = resolver.Apply(ctx, src.Document, resolver.ProcessEnv{}, opts...)
		if err != nil {
			return err
		}
	}

	if len(a.Command) == 0 {
		return nil
	}

	return a.exec(ctx)
}

// exec runs the command with stdio attached. The child inherits the process
// environment as modified by Run.
func (a *Apply) exec(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.Command[0], a.Command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout(ctx)
	cmd.Stderr = os.Stderr

	log.DebugContext(ctx, "exec",
		slog.String("path", cmd.Path),
		slog.Any("args", a.Command[1:]),
	)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	attrs := []slog.Attr{slog.String("command", a.Command[0])}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		attrs = append(attrs, slog.Int("code", exit.ExitCode()))
	}

	return ErrCommand.Wrap(err).With(attrs...)
}
