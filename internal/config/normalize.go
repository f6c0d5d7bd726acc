package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/site"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerated fields before defaults are applied.
// It mutates p in place and reports every coercion it made.
func Normalize(p *Project) *NormalizationResult {
	res := &NormalizationResult{}
	if p == nil {
		return res
	}
	s := &p.Site
	s.OnBrokenLinks = normalizePolicy("site.on_broken_links", s.OnBrokenLinks, res)
	s.OnBrokenMarkdownLinks = normalizePolicy("site.on_broken_markdown_links", s.OnBrokenMarkdownLinks, res)

	for i := range s.Navbar.Items {
		item := &s.Navbar.Items[i]
		field := fmt.Sprintf("site.navbar.items[%d]", i)
		if t := normalizeNavbarType(string(item.Type)); t != "" && t != item.Type {
			res.Warnings = append(res.Warnings, warnChanged(field+".type", item.Type, t))
			item.Type = t
		}
		if pos := strings.ToLower(strings.TrimSpace(item.Position)); pos != item.Position {
			res.Warnings = append(res.Warnings, warnChanged(field+".position", item.Position, pos))
			item.Position = pos
		}
	}

	for i, f := range p.Output.Formats {
		if canon := OutputFormat(strings.ToLower(strings.TrimSpace(string(f)))); canon != f {
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("output.formats[%d]", i), f, canon))
			p.Output.Formats[i] = canon
		}
	}
	return res
}

func normalizePolicy(field string, v site.BrokenLinkPolicy, res *NormalizationResult) site.BrokenLinkPolicy {
	raw := strings.TrimSpace(string(v))
	if raw == "" {
		return ""
	}
	canon := site.BrokenLinkPolicy(strings.ToLower(raw))
	if !canon.Valid() {
		res.Warnings = append(res.Warnings, warnUnknown(field, raw, string(site.PolicyWarn)))
		return site.PolicyWarn
	}
	if canon != v {
		res.Warnings = append(res.Warnings, warnChanged(field, v, canon))
	}
	return canon
}

// normalizeNavbarType folds case and common aliases; it returns "" for unknown types.
func normalizeNavbarType(raw string) site.NavbarItemType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "doc":
		return site.NavbarDoc
	case "docsidebar", "doc_sidebar", "sidebar":
		return site.NavbarDocSidebar
	case "href", "link":
		return site.NavbarLink
	}
	return ""
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s' replaced with '%s'", field, value, def)
}
