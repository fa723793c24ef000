package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/enconf/cli"
	"github.com/ardnew/enconf/log"
	"github.com/ardnew/enconf/pkg"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// A command run by apply already reported its own failure.
		var exit interface{ ExitCode() int }
		if errors.As(err, &exit) && exit.ExitCode() > 0 {
			log.Debug("command exited", slog.Int("code", exit.ExitCode()))
			os.Exit(exit.ExitCode())
		}

		log.Error("run failed", slog.Any("error", pkg.WrapError(err)))
		os.Exit(1)
	}
}
