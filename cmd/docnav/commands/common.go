package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Global carries shared state handed to every command's Run method.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Project file path" default:"docnav.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write the playbook project file"`
	Validate ValidateCmd `cmd:"" help:"Check sidebars, navbar and document references"`
	Generate GenerateCmd `cmd:"" help:"Validate and write sidebars.js, sidebars.json and site.json"`
	Show     ShowCmd     `cmd:"" help:"Print the sidebars of the project"`
	Autogen  AutogenCmd  `cmd:"" help:"Print a sidebar generated from a content directory"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate output whenever the project or content changes"`

	// Stderr receives log output; nil means os.Stderr.
	Stderr io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if c.Stderr != nil {
		w = c.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ExitError ends the process with Code after the command already reported
// its outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

func loadProject(root *CLI) (*config.Project, error) {
	p, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	slog.Debug("Project loaded", logfields.Path(root.Config), logfields.Count(p.Sidebars.Len()))
	return p, nil
}
