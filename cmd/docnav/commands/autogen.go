package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/docnav/internal/autogen"
	"git.home.luguber.info/inful/docnav/internal/content"
	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// AutogenCmd implements the 'autogen' command: it previews the sidebar that
// an `autogenerate` entry would produce.
type AutogenCmd struct {
	Dir     string `arg:"" optional:"" help:"Content subdirectory to generate from (default: the whole tree)"`
	Name    string `short:"n" default:"generatedSidebar" help:"Name of the generated sidebar"`
	Content string `name:"content" help:"Content directory (defaults to site.docs.path of the project)" type:"path"`
	Format  string `short:"f" default:"yaml" help:"Output format: tree, yaml, json, js" enum:"tree,yaml,json,js"`
}

// Run executes the autogen command.
func (a *AutogenCmd) Run(g *Global, root *CLI) error {
	dir := a.Content
	if dir == "" {
		p, err := loadProject(root)
		if err != nil {
			return err
		}
		dir = p.ContentDir()
	}

	idx, err := content.ScanDir(dir)
	if err != nil {
		return derrors.ContentScanFailed(dir, err)
	}
	for _, d := range idx.Duplicates() {
		g.Logger.Warn("Duplicate document id; first file wins", logfields.Document(d.ID), slog.Any("paths", d.Paths))
	}

	sb, err := autogen.Generate(idx, autogen.Options{Name: a.Name, Dir: a.Dir})
	if err != nil {
		return err
	}
	set, err := nav.NewSidebarSet(sb)
	if err != nil {
		return err
	}
	return writeSidebars(g.Stdout, set, a.Format)
}
