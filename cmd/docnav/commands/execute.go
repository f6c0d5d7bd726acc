package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/version"
)

type kongExit int

// Execute parses args, runs the selected command and returns the process
// exit code.
func Execute(args []string, stdout, stderr io.Writer) (code int) {
	cli := &CLI{Stderr: stderr}

	defer func() {
		if r := recover(); r != nil {
			exit, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			code = int(exit)
		}
	}()

	parser, err := kong.New(cli,
		kong.Name("docnav"),
		kong.Description("Manage the sidebar navigation of a documentation site."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(kongExit(c)) }),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "docnav: %v\n", err)
		return 10
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
		return 1
	}

	err = ctx.Run(&Global{Logger: slog.Default(), Stdout: stdout}, cli)
	return exitCode(err, cli.Verbose, stderr)
}

func exitCode(err error, verbose bool, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	adapter := derrors.NewCLIErrorAdapter(verbose, slog.Default())
	if verbose {
		adapter.Log(err)
	}
	_, _ = fmt.Fprintf(stderr, "docnav: %s\n", adapter.FormatError(err))
	return adapter.ExitCodeFor(err)
}
