package lint

import (
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// DefaultRules returns every built-in rule in reporting order.
func DefaultRules() []Rule {
	return []Rule{
		&ReferenceFormatRule{},
		&CategoryLabelRule{},
		&EmptyCategoryRule{},
		&EmptySidebarRule{},
		&NavbarSidebarRefRule{},
		&NavbarDocRefRule{},
		&BrokenDocumentRefRule{},
		&DuplicateDocumentRule{},
	}
}

// eachNode visits every node of sb depth-first with its location string.
// Top-level items are "<sidebar>[i]"; nested items are prefixed by the
// enclosing category labels ("qaSidebar > Getting Started[0]").
func eachNode(sb nav.Sidebar, fn func(loc string, n nav.Node)) {
	var rec func(prefix string, items []nav.Node)
	rec = func(prefix string, items []nav.Node) {
		for i, n := range items {
			fn(fmt.Sprintf("%s[%d]", prefix, i), n)
			if c, ok := n.(nav.Category); ok {
				rec(prefix+" > "+c.Label(), c.Items())
			}
		}
	}
	rec(sb.Name(), sb.Items())
}

// ReferenceFormatRule checks that document ids are path-like: slash
// separated, no empty segments, no leading or trailing slash.
type ReferenceFormatRule struct{}

func (r *ReferenceFormatRule) Name() string { return "reference-format" }

func (r *ReferenceFormatRule) Check(in Input) []Issue {
	var issues []Issue
	for _, sb := range in.Sidebars.Sidebars() {
		eachNode(sb, func(loc string, n nav.Node) {
			d, ok := n.(nav.DocumentReference)
			if !ok {
				return
			}
			problem := referenceProblem(d.ID())
			if problem == "" {
				return
			}
			issue := Issue{
				Location: loc,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Malformed document id %q: %s", d.ID(), problem),
				Explanation: `Document ids are paths relative to the docs directory without extension,
e.g. developer-guide/daily-usage/code-completion.`,
			}
			if fixed := normalizeReference(d.ID()); fixed != "" && fixed != d.ID() {
				issue.Fix = fmt.Sprintf("use %q", fixed)
			}
			issues = append(issues, issue)
		})
	}
	return issues
}

func referenceProblem(id string) string {
	switch {
	case id == "":
		return "id is empty"
	case strings.TrimSpace(id) != id:
		return "id has surrounding whitespace"
	case strings.Contains(id, `\`):
		return "id contains a backslash"
	case strings.HasPrefix(id, "/"):
		return "id has a leading slash"
	case strings.HasSuffix(id, "/"):
		return "id has a trailing slash"
	case strings.Contains(id, "//"):
		return "id has an empty segment"
	}
	return ""
}

func normalizeReference(id string) string {
	id = strings.ReplaceAll(strings.TrimSpace(id), `\`, "/")
	var segs []string
	for _, s := range strings.Split(id, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return strings.Join(segs, "/")
}

// CategoryLabelRule checks that every category has a visible label.
type CategoryLabelRule struct{}

func (r *CategoryLabelRule) Name() string { return "category-label" }

func (r *CategoryLabelRule) Check(in Input) []Issue {
	var issues []Issue
	for _, sb := range in.Sidebars.Sidebars() {
		eachNode(sb, func(loc string, n nav.Node) {
			if c, ok := n.(nav.Category); ok && strings.TrimSpace(c.Label()) == "" {
				issues = append(issues, Issue{
					Location: loc,
					Severity: SeverityError,
					Rule:     r.Name(),
					Message:  "Category has no label",
					Fix:      "add a label to the category",
				})
			}
		})
	}
	return issues
}

// EmptyCategoryRule reports categories without items.
type EmptyCategoryRule struct{}

func (r *EmptyCategoryRule) Name() string { return "empty-category" }

func (r *EmptyCategoryRule) Check(in Input) []Issue {
	var issues []Issue
	for _, sb := range in.Sidebars.Sidebars() {
		eachNode(sb, func(loc string, n nav.Node) {
			if c, ok := n.(nav.Category); ok && c.Len() == 0 {
				issues = append(issues, Issue{
					Location:    loc,
					Severity:    SeverityError,
					Rule:        r.Name(),
					Message:     fmt.Sprintf("Category %q is empty", c.Label()),
					Explanation: "The site generator rejects categories without items.",
					Fix:         "add documents to the category or remove it",
				})
			}
		})
	}
	return issues
}

// EmptySidebarRule reports sidebars without items.
type EmptySidebarRule struct{}

func (r *EmptySidebarRule) Name() string { return "empty-sidebar" }

func (r *EmptySidebarRule) Check(in Input) []Issue {
	var issues []Issue
	for _, sb := range in.Sidebars.Sidebars() {
		if sb.Len() == 0 {
			issues = append(issues, Issue{
				Location: sb.Name(),
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Sidebar %q has no items", sb.Name()),
			})
		}
	}
	return issues
}

// NavbarSidebarRefRule checks that docSidebar navbar items name a declared sidebar.
type NavbarSidebarRefRule struct{}

func (r *NavbarSidebarRefRule) Name() string { return "navbar-sidebar-ref" }

func (r *NavbarSidebarRefRule) Check(in Input) []Issue {
	if in.Site == nil {
		return nil
	}
	var issues []Issue
	for i, item := range in.Site.Navbar.Items {
		if item.Type != site.NavbarDocSidebar || in.Sidebars.Has(item.SidebarID) {
			continue
		}
		issues = append(issues, Issue{
			Location:    fmt.Sprintf("navbar.items[%d]", i),
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("Navbar item %q references undeclared sidebar %q", item.Label, item.SidebarID),
			Explanation: "Declared sidebars: " + strings.Join(in.Sidebars.Names(), ", "),
		})
	}
	return issues
}

// NavbarDocRefRule checks that doc navbar items point at existing documents.
// Severity follows the site's onBrokenLinks policy.
type NavbarDocRefRule struct{}

func (r *NavbarDocRefRule) Name() string { return "navbar-doc-ref" }

func (r *NavbarDocRefRule) Check(in Input) []Issue {
	if in.Site == nil || in.Index == nil {
		return nil
	}
	sev, report := policySeverity(in.Site.OnBrokenLinks)
	if !report {
		return nil
	}
	var issues []Issue
	for i, item := range in.Site.Navbar.Items {
		if item.Type != site.NavbarDoc || in.Index.Has(item.DocID) {
			continue
		}
		issue := Issue{
			Location: fmt.Sprintf("navbar.items[%d]", i),
			Severity: sev,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Navbar item %q references missing document %q", item.Label, item.DocID),
		}
		if s := in.Index.Suggest(item.DocID); s != "" {
			issue.Fix = fmt.Sprintf("did you mean %q?", s)
		}
		issues = append(issues, issue)
	}
	return issues
}

// BrokenDocumentRefRule checks that every sidebar leaf resolves to a document
// in the content index. Severity follows the site's onBrokenLinks policy.
type BrokenDocumentRefRule struct{}

func (r *BrokenDocumentRefRule) Name() string { return "broken-document-ref" }

func (r *BrokenDocumentRefRule) Check(in Input) []Issue {
	if in.Index == nil {
		return nil
	}
	policy := site.PolicyWarn
	if in.Site != nil {
		policy = in.Site.OnBrokenLinks
	}
	sev, report := policySeverity(policy)
	if !report {
		return nil
	}

	var issues []Issue
	for _, sb := range in.Sidebars.Sidebars() {
		eachNode(sb, func(loc string, n nav.Node) {
			d, ok := n.(nav.DocumentReference)
			if !ok || d.ID() == "" || in.Index.Has(d.ID()) {
				return
			}
			issue := Issue{
				Location: loc,
				Severity: sev,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Document %q not found", d.ID()),
			}
			if s := in.Index.Suggest(d.ID()); s != "" {
				issue.Fix = fmt.Sprintf("did you mean %q?", s)
			}
			issues = append(issues, issue)
		})
	}
	return issues
}

// DuplicateDocumentRule reports documents placed more than once across the
// sidebars, and content files that resolve to the same id.
type DuplicateDocumentRule struct{}

func (r *DuplicateDocumentRule) Name() string { return "duplicate-document" }

func (r *DuplicateDocumentRule) Check(in Input) []Issue {
	var issues []Issue

	type placement struct{ locs []string }
	seen := make(map[string]*placement)
	var order []string
	for _, sb := range in.Sidebars.Sidebars() {
		eachNode(sb, func(loc string, n nav.Node) {
			d, ok := n.(nav.DocumentReference)
			if !ok || d.ID() == "" {
				return
			}
			p, exists := seen[d.ID()]
			if !exists {
				p = &placement{}
				seen[d.ID()] = p
				order = append(order, d.ID())
			}
			p.locs = append(p.locs, loc)
		})
	}
	for _, id := range order {
		p := seen[id]
		if len(p.locs) < 2 {
			continue
		}
		issues = append(issues, Issue{
			Location: p.locs[1],
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Document %q appears %d times", id, len(p.locs)),
			Explanation: "The generator associates a document with a single sidebar; pages reached\n" +
				"through the other placements show the first sidebar.\nPlacements: " + strings.Join(p.locs, ", "),
		})
	}

	for _, dup := range in.Index.Duplicates() {
		paths := append([]string(nil), dup.Paths...)
		sort.Strings(paths)
		issues = append(issues, Issue{
			Location:    paths[0],
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("Document id %q is claimed by %d files", dup.ID, len(paths)),
			Explanation: "Files: " + strings.Join(paths, ", "),
			Fix:         "rename one of the files or change its frontmatter id",
		})
	}
	return issues
}
