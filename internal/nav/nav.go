// Package nav models the navigation configuration of a documentation site:
// named sidebars, each an ordered tree of categories and document references.
//
// Values are immutable once constructed: constructors copy their inputs and
// accessors hand out copies.
package nav

import (
	"errors"
	"fmt"
	"slices"
)

// NodeKind identifies the variant of a Node.
type NodeKind string

const (
	KindDoc      NodeKind = "doc"
	KindCategory NodeKind = "category"
)

// Node is one element of a sidebar: either a DocumentReference or a Category.
// The interface is sealed; switch on the concrete type to handle both variants.
type Node interface {
	Kind() NodeKind
	node()
}

// DocumentReference is a leaf pointing at a content document by id
// (e.g. "developer-guide/daily-usage/code-completion").
type DocumentReference struct {
	id string
}

// NewDocumentReference creates a leaf node for the given document id.
func NewDocumentReference(id string) DocumentReference {
	return DocumentReference{id: id}
}

// ID returns the referenced document id.
func (d DocumentReference) ID() string { return d.id }

// Kind implements Node.
func (DocumentReference) Kind() NodeKind { return KindDoc }

func (DocumentReference) node() {}

func (d DocumentReference) String() string { return d.id }

// Category is a labeled, ordered group of child nodes.
type Category struct {
	label string
	items []Node
}

// NewCategory creates a category holding a copy of items in the given order.
func NewCategory(label string, items ...Node) Category {
	return Category{label: label, items: cloneItems(items)}
}

// Label returns the human-readable category label.
func (c Category) Label() string { return c.label }

// Items returns a copy of the child nodes in declaration order.
func (c Category) Items() []Node { return slices.Clone(c.items) }

// Len returns the number of direct children.
func (c Category) Len() int { return len(c.items) }

// Kind implements Node.
func (Category) Kind() NodeKind { return KindCategory }

func (Category) node() {}

func (c Category) String() string {
	return fmt.Sprintf("%s (%d items)", c.label, len(c.items))
}

func cloneItems(items []Node) []Node {
	if len(items) == 0 {
		return nil
	}
	return slices.Clone(items)
}

// Sidebar is a named navigation tree shown to one audience.
type Sidebar struct {
	name  string
	items []Node
}

// NewSidebar creates a sidebar holding a copy of items in the given order.
func NewSidebar(name string, items ...Node) Sidebar {
	return Sidebar{name: name, items: cloneItems(items)}
}

// Name returns the sidebar identifier (e.g. "developerSidebar").
func (s Sidebar) Name() string { return s.name }

// Items returns a copy of the top-level nodes in declaration order.
func (s Sidebar) Items() []Node { return slices.Clone(s.items) }

// Len returns the number of top-level nodes.
func (s Sidebar) Len() int { return len(s.items) }

// DocumentIDs returns every leaf id of the sidebar in depth-first order.
func (s Sidebar) DocumentIDs() []string {
	var ids []string
	_ = Walk(s.items, func(_ []string, n Node) error {
		if d, ok := n.(DocumentReference); ok {
			ids = append(ids, d.ID())
		}
		return nil
	})
	return ids
}

// Depth returns the deepest category nesting in the sidebar. A sidebar of
// plain document references has depth 0.
func (s Sidebar) Depth() int {
	depth := 0
	_ = Walk(s.items, func(path []string, n Node) error {
		if _, ok := n.(Category); ok && len(path)+1 > depth {
			depth = len(path) + 1
		}
		return nil
	})
	return depth
}

// SidebarSet is an ordered collection of uniquely named sidebars.
type SidebarSet struct {
	order []string
	byKey map[string]Sidebar
}

// NewSidebarSet builds a set from sidebars, preserving their order. Sidebar
// names must be non-empty and unique.
func NewSidebarSet(sidebars ...Sidebar) (*SidebarSet, error) {
	set := &SidebarSet{
		order: make([]string, 0, len(sidebars)),
		byKey: make(map[string]Sidebar, len(sidebars)),
	}
	for i, sb := range sidebars {
		if sb.name == "" {
			return nil, fmt.Errorf("sidebar at position %d has an empty name", i)
		}
		if _, dup := set.byKey[sb.name]; dup {
			return nil, fmt.Errorf("duplicate sidebar %q", sb.name)
		}
		set.order = append(set.order, sb.name)
		set.byKey[sb.name] = sb
	}
	return set, nil
}

// Names returns the sidebar identifiers in declaration order.
func (s *SidebarSet) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// Get returns the sidebar with the given name.
func (s *SidebarSet) Get(name string) (Sidebar, bool) {
	if s == nil {
		return Sidebar{}, false
	}
	sb, ok := s.byKey[name]
	return sb, ok
}

// Has reports whether a sidebar with the given name is declared.
func (s *SidebarSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Sidebars returns all sidebars in declaration order.
func (s *SidebarSet) Sidebars() []Sidebar {
	if s == nil {
		return nil
	}
	out := make([]Sidebar, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byKey[name])
	}
	return out
}

// Len returns the number of sidebars.
func (s *SidebarSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// DocumentIDs returns every leaf id across all sidebars, in sidebar order and
// then depth-first item order. Ids referenced from several places repeat.
func (s *SidebarSet) DocumentIDs() []string {
	var ids []string
	for _, sb := range s.Sidebars() {
		ids = append(ids, sb.DocumentIDs()...)
	}
	return ids
}

// WalkFunc is called for every node visited by Walk. path holds the labels of
// the enclosing categories, outermost first; it must not be retained.
type WalkFunc func(path []string, n Node) error

// ErrSkipCategory may be returned by a WalkFunc for a Category to skip its children.
var ErrSkipCategory = errors.New("skip category")

// Walk visits items depth-first in declaration order. A category is visited
// before its children.
func Walk(items []Node, fn WalkFunc) error {
	return walk(nil, items, fn)
}

func walk(path []string, items []Node, fn WalkFunc) error {
	for _, n := range items {
		err := fn(path, n)
		c, isCat := n.(Category)
		if isCat && errors.Is(err, ErrSkipCategory) {
			continue
		}
		if err != nil {
			return err
		}
		if isCat {
			if err := walk(append(path, c.label), c.items, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
