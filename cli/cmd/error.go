package cmd

import "github.com/ardnew/enconf/pkg"

var (
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrSource      = pkg.NewError("invalid source")
	ErrNoSource    = pkg.NewError("no source documents (use --source or pipe to stdin)")
	ErrCommand     = pkg.NewError("command failed")
	ErrWrite       = pkg.NewError("write output")
)
