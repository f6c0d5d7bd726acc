package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/lint"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory (defaults to output.directory of the project)" type:"path"`
	Debounce time.Duration `default:"300ms" help:"Quiet period after the last change before regenerating"`
}

// Run executes the watch command. Failed regenerations are logged and the
// watcher keeps running; only an unloadable project at startup is fatal.
func (cmd *WatchCmd) Run(g *Global, root *CLI) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := build.NewService()
	regenerate := func(ctx context.Context) error {
		// Reload so edits to the project file take effect.
		current, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		res, err := svc.Run(ctx, build.Request{Project: current, OutputDir: cmd.Output})
		if res.Lint != nil && len(res.Lint.Issues) > 0 {
			if ferr := lint.NewTextFormatter().Format(g.Stdout, res.Lint, root.Config); ferr != nil {
				return fmt.Errorf("formatting output: %w", ferr)
			}
		}
		if err != nil {
			return err
		}
		g.Logger.Info("Regenerated", slog.String("status", string(res.Status)), logfields.Count(len(res.Written)))
		return nil
	}

	if err := regenerate(ctx); err != nil {
		g.Logger.Error("Initial generation failed", logfields.Error(err))
	}

	w, err := watch.New(root.Config, p.ContentDir(), cmd.Debounce, regenerate)
	if err != nil {
		return err
	}
	err = w.Run(ctx)
	g.Logger.Info("Watcher stopped")
	return err
}
