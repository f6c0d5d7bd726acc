package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/lint"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Format    string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet     bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	NoContent bool   `name:"no-content" help:"Skip the content scan; document references are not checked"`
}

// Run executes the validate command.
func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}

	res, err := build.NewService().Run(context.Background(), build.Request{
		Project: p,
		Options: build.Options{
			SkipContent: v.NoContent,
			SkipRender:  true,
			Lint:        lint.Config{Quiet: v.Quiet, Format: v.Format},
		},
	})
	if err != nil && !errors.Is(err, build.ErrLint) {
		return err
	}
	return report(g.Stdout, res.Lint, v.Format, root.Config, v.Quiet)
}

// report prints a lint result and maps it to the exit convention:
// 2 for errors, 1 for warnings unless quiet.
func report(w io.Writer, result *lint.Result, format, source string, quiet bool) error {
	if err := lint.NewFormatter(format).Format(w, result, source); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if result.HasErrors() {
		return &ExitError{Code: 2} // Errors found (blocks generation)
	}
	if result.HasWarnings() && !quiet {
		return &ExitError{Code: 1} // Warnings present
	}
	return nil
}
