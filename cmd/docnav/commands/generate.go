package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/lint"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// GenerateCmd implements the 'generate' command for CI/CD pipelines.
type GenerateCmd struct {
	Output      string `short:"o" help:"Output directory (defaults to output.directory of the project)" type:"path"`
	DryRun      bool   `name:"dry-run" help:"Run all checks but do not write files"`
	Format      string `short:"f" default:"text" help:"Lint report format (text or json)" enum:"text,json"`
	Quiet       bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics for the run to this textfile"`
}

// Run executes the generate command.
func (cmd *GenerateCmd) Run(g *Global, root *CLI) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cmd.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	res, err := build.NewService().WithRecorder(recorder).Run(ctx, build.Request{
		Project:   p,
		OutputDir: cmd.Output,
		Options: build.Options{
			DryRun: cmd.DryRun,
			Lint:   lint.Config{Quiet: cmd.Quiet, Format: cmd.Format},
		},
	})

	if prom != nil {
		if werr := prom.WriteTextfile(cmd.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cmd.MetricsFile), logfields.Error(werr))
		}
	}

	if errors.Is(err, build.ErrLint) {
		return report(g.Stdout, res.Lint, cmd.Format, root.Config, cmd.Quiet)
	}
	if err != nil {
		return err
	}
	if len(res.Lint.Issues) > 0 {
		if ferr := lint.NewFormatter(cmd.Format).Format(g.Stdout, res.Lint, root.Config); ferr != nil {
			return fmt.Errorf("formatting output: %w", ferr)
		}
	}

	for _, f := range res.Written {
		_, _ = fmt.Fprintf(g.Stdout, "Wrote %s\n", f)
	}
	slog.Info("Generation completed",
		slog.String("status", string(res.Status)),
		logfields.Count(len(res.Written)),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return nil
}
