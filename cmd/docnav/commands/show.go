package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/autogen"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/playbook"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Format   string `short:"f" default:"tree" help:"Output format: tree, yaml, json, js" enum:"tree,yaml,json,js"`
	Playbook bool   `help:"Show the built-in playbook navigation instead of the project file"`
	Sidebar  string `arg:"" optional:"" help:"Only show this sidebar"`
}

// Run executes the show command.
func (s *ShowCmd) Run(g *Global, root *CLI) error {
	var (
		p   *config.Project
		err error
	)
	if s.Playbook {
		p, err = playbook.Project()
	} else {
		p, err = loadProject(root)
	}
	if err != nil {
		return err
	}

	set, err := withGenerated(p)
	if err != nil {
		return err
	}
	if s.Sidebar != "" {
		sb, ok := set.Get(s.Sidebar)
		if !ok {
			return derrors.ValidationFailed("sidebar", fmt.Sprintf("no sidebar named %q (have %s)", s.Sidebar, strings.Join(set.Names(), ", ")))
		}
		if set, err = nav.NewSidebarSet(sb); err != nil {
			return err
		}
	}
	return writeSidebars(g.Stdout, set, s.Format)
}

// withGenerated returns the declared sidebars followed by the autogenerated
// ones. Without a content directory only the declared sidebars are returned.
func withGenerated(p *config.Project) (*nav.SidebarSet, error) {
	if len(p.Autogen) == 0 || p.Path() == "" {
		return p.Sidebars, nil
	}
	if _, err := os.Stat(p.ContentDir()); os.IsNotExist(err) {
		return p.Sidebars, nil
	}
	idx, err := content.ScanDir(p.ContentDir())
	if err != nil {
		return nil, derrors.ContentScanFailed(p.ContentDir(), err)
	}
	decls := make([]autogen.Options, len(p.Autogen))
	for i, a := range p.Autogen {
		decls[i] = autogen.Options{Name: a.Name, Dir: a.Dir}
	}
	return autogen.Expand(p.Sidebars, decls, idx)
}

func writeSidebars(w io.Writer, set *nav.SidebarSet, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(set); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		raw, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", raw)
		return err
	case "js":
		return nav.WriteSidebarsJS(w, set)
	default:
		return writeTree(w, set)
	}
}

// writeTree prints one sidebar per block, categories suffixed with "/" and
// children indented two spaces per level.
func writeTree(w io.Writer, set *nav.SidebarSet) error {
	for i, sb := range set.Sidebars() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s (%d documents)\n", sb.Name(), len(sb.DocumentIDs())); err != nil {
			return err
		}
		err := nav.Walk(sb.Items(), func(path []string, n nav.Node) error {
			indent := strings.Repeat("  ", len(path)+1)
			switch n := n.(type) {
			case nav.Category:
				_, err := fmt.Fprintf(w, "%s%s/\n", indent, n.Label())
				return err
			case nav.DocumentReference:
				_, err := fmt.Fprintf(w, "%s%s\n", indent, n.ID())
				return err
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
