// Package autogen builds sidebars from the layout of the content directory,
// for sidebars declared under `autogenerate` in the project file.
//
// Directories become categories and documents become leaves. Within a level,
// entries with a sidebar_position come first in ascending order; the rest
// follow in file name order, so "01-" style prefixes order them.
package autogen

import (
	"log/slog"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docnav/internal/content"
	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Options selects what a generated sidebar covers.
type Options struct {
	// Name is the sidebar identifier.
	Name string
	// Dir is the content subdirectory to generate from, relative to the docs
	// root. Empty or "." means the whole tree.
	Dir string
}

type dirNode struct {
	docs    []content.Document
	subdirs map[string]*dirNode
}

func newDirNode() *dirNode {
	return &dirNode{subdirs: make(map[string]*dirNode)}
}

// Generate builds one sidebar from the documents of idx under opts.Dir.
func Generate(idx *content.Index, opts Options) (nav.Sidebar, error) {
	dir := strings.Trim(path.Clean("/"+opts.Dir), "/")

	root := newDirNode()
	count := 0
	for _, d := range idx.Documents() {
		rel := d.Path
		if dir != "" {
			if !strings.HasPrefix(d.Path, dir+"/") {
				continue
			}
			rel = strings.TrimPrefix(d.Path, dir+"/")
		}
		segs := strings.Split(rel, "/")
		n := root
		for _, s := range segs[:len(segs)-1] {
			child, ok := n.subdirs[s]
			if !ok {
				child = newDirNode()
				n.subdirs[s] = child
			}
			n = child
		}
		n.docs = append(n.docs, d)
		count++
	}

	if count == 0 {
		return nav.Sidebar{}, derrors.New(derrors.CategoryContent, derrors.SeverityError, "no documents to generate sidebar from").
			WithContext("sidebar", opts.Name).
			WithContext("dir", opts.Dir)
	}
	return nav.NewSidebar(opts.Name, root.items()...), nil
}

type entry struct {
	key    string
	pos    float64
	hasPos bool
	node   nav.Node
}

func (n *dirNode) items() []nav.Node {
	entries := make([]entry, 0, len(n.docs)+len(n.subdirs))
	for _, d := range n.docs {
		entries = append(entries, entry{
			key:    path.Base(d.Path),
			pos:    d.Position,
			hasPos: d.HasPosition,
			node:   nav.NewDocumentReference(d.ID),
		})
	}
	for name, sub := range n.subdirs {
		pos, hasPos := sub.position()
		label := CategoryLabel(name)
		slog.Debug("Category generated", logfields.Category(label), logfields.Path(name))
		entries = append(entries, entry{
			key:    name,
			pos:    pos,
			hasPos: hasPos,
			node:   nav.NewCategory(label, sub.items()...),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasPos != b.hasPos {
			return a.hasPos
		}
		if a.hasPos && a.pos != b.pos {
			return a.pos < b.pos
		}
		return a.key < b.key
	})

	out := make([]nav.Node, len(entries))
	for i, e := range entries {
		out[i] = e.node
	}
	return out
}

// position is the smallest sidebar_position among the directory's own documents.
func (n *dirNode) position() (float64, bool) {
	var (
		lowest float64
		found  bool
	)
	for _, d := range n.docs {
		if d.HasPosition && (!found || d.Position < lowest) {
			lowest, found = d.Position, true
		}
	}
	return lowest, found
}

var (
	separators = strings.NewReplacer("-", " ", "_", " ")
	titleCaser = cases.Title(language.English)
)

// CategoryLabel turns a directory name such as "01-getting-started" into
// "Getting Started".
func CategoryLabel(dirName string) string {
	name := strings.TrimLeft(dirName, "0123456789")
	if name != dirName && name != "" && strings.ContainsRune("-_.", rune(name[0])) {
		dirName = name[1:]
	}
	words := strings.Fields(separators.Replace(dirName))
	return titleCaser.String(strings.Join(words, " "))
}

// Expand returns a set with the sidebars of base followed by one generated
// sidebar per entry of decls. base is not modified.
func Expand(base *nav.SidebarSet, decls []Options, idx *content.Index) (*nav.SidebarSet, error) {
	if len(decls) == 0 {
		return base, nil
	}
	sidebars := base.Sidebars()
	for _, opts := range decls {
		sb, err := Generate(idx, opts)
		if err != nil {
			return nil, err
		}
		sidebars = append(sidebars, sb)
	}
	set, err := nav.NewSidebarSet(sidebars...)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "generated sidebar conflicts with a declared one")
	}
	return set, nil
}
