package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/playbook"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing project file"`
	Output string `short:"o" name:"output" help:"Directory to write docnav.yaml into"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	// If the user specified an output directory, place the project file there as "docnav.yaml".
	if i.Output != "" {
		return RunInit(g.Stdout, filepath.Join(i.Output, playbook.FileName), i.Force)
	}
	return RunInit(g.Stdout, root.Config, i.Force)
}

// RunInit writes the playbook project file to configPath.
func RunInit(w io.Writer, configPath string, force bool) error {
	_, _ = fmt.Fprintln(w, "Initializing docnav project")
	_, _ = fmt.Fprintf(w, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force, playbook.Raw()); err != nil {
		_, _ = fmt.Fprintln(w, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(w, "docnav project initialized successfully")
	return nil
}
