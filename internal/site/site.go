// Package site holds the documentation site metadata that is handed to the
// static-site generator alongside the sidebars: title, URLs, broken-link
// policy, locales, docs preset options, navbar, footer and code highlighting.
package site

import (
	"strconv"
	"strings"
)

// BrokenLinkPolicy is the generator's reaction to a dangling reference.
type BrokenLinkPolicy string

const (
	PolicyIgnore BrokenLinkPolicy = "ignore"
	PolicyLog    BrokenLinkPolicy = "log"
	PolicyWarn   BrokenLinkPolicy = "warn"
	PolicyThrow  BrokenLinkPolicy = "throw"
)

// Valid reports whether p is one of the known policies.
func (p BrokenLinkPolicy) Valid() bool {
	switch p {
	case PolicyIgnore, PolicyLog, PolicyWarn, PolicyThrow:
		return true
	}
	return false
}

// NavbarItemType enumerates supported navbar entries.
type NavbarItemType string

const (
	NavbarDoc        NavbarItemType = "doc"
	NavbarDocSidebar NavbarItemType = "docSidebar"
	NavbarLink       NavbarItemType = "href"
)

// Site is the metadata of one documentation site.
type Site struct {
	Title                 string           `yaml:"title" json:"title"`
	Tagline               string           `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	Favicon               string           `yaml:"favicon,omitempty" json:"favicon,omitempty"`
	URL                   string           `yaml:"url" json:"url"`
	BaseURL               string           `yaml:"base_url" json:"baseUrl"`
	OrganizationName      string           `yaml:"organization_name,omitempty" json:"organizationName,omitempty"`
	ProjectName           string           `yaml:"project_name,omitempty" json:"projectName,omitempty"`
	OnBrokenLinks         BrokenLinkPolicy `yaml:"on_broken_links" json:"onBrokenLinks"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `yaml:"on_broken_markdown_links" json:"onBrokenMarkdownLinks"`
	I18n                  I18n             `yaml:"i18n" json:"i18n"`
	Docs                  DocsOptions      `yaml:"docs" json:"docs"`
	Theme                 Theme            `yaml:"theme,omitempty" json:"theme"`
	Navbar                Navbar           `yaml:"navbar" json:"navbar"`
	Footer                Footer           `yaml:"footer,omitempty" json:"footer"`
	Prism                 Prism            `yaml:"prism,omitempty" json:"prism"`
}

// I18n lists the site locales.
type I18n struct {
	DefaultLocale string   `yaml:"default_locale" json:"defaultLocale"`
	Locales       []string `yaml:"locales" json:"locales"`
}

// DocsOptions configures the docs plugin: where content lives and how it is routed.
type DocsOptions struct {
	ID            string `yaml:"id,omitempty" json:"id,omitempty"`
	Path          string `yaml:"path" json:"path"`
	RouteBasePath string `yaml:"route_base_path" json:"routeBasePath"`
	EditURL       string `yaml:"edit_url,omitempty" json:"editUrl,omitempty"`
}

// Theme references stylesheet and palette inputs passed straight through.
type Theme struct {
	CustomCSS   string `yaml:"custom_css,omitempty" json:"customCss,omitempty"`
	SocialImage string `yaml:"social_image,omitempty" json:"image,omitempty"`
}

// Navbar is the top navigation bar.
type Navbar struct {
	Title string       `yaml:"title" json:"title"`
	Logo  *Logo        `yaml:"logo,omitempty" json:"logo,omitempty"`
	Items []NavbarItem `yaml:"items" json:"items"`
}

// Logo is the navbar logo image.
type Logo struct {
	Alt string `yaml:"alt" json:"alt"`
	Src string `yaml:"src" json:"src"`
}

// NavbarItem is one navbar entry. Exactly one of DocID, SidebarID or Href is
// meaningful, selected by Type.
type NavbarItem struct {
	Type      NavbarItemType `yaml:"type" json:"type"`
	DocID     string         `yaml:"doc_id,omitempty" json:"docId,omitempty"`
	SidebarID string         `yaml:"sidebar_id,omitempty" json:"sidebarId,omitempty"`
	Href      string         `yaml:"href,omitempty" json:"href,omitempty"`
	Position  string         `yaml:"position,omitempty" json:"position,omitempty"`
	Label     string         `yaml:"label" json:"label"`
}

// Target returns the item's reference: a doc id, sidebar id or URL.
func (n NavbarItem) Target() string {
	switch n.Type {
	case NavbarDoc:
		return n.DocID
	case NavbarDocSidebar:
		return n.SidebarID
	default:
		return n.Href
	}
}

// Footer is the page footer. Copyright may contain {year}.
type Footer struct {
	Style     string       `yaml:"style,omitempty" json:"style,omitempty"`
	Links     []FooterLink `yaml:"links,omitempty" json:"links"`
	Copyright string       `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// FooterLink is a single footer link.
type FooterLink struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// RenderCopyright substitutes {year} in the copyright template.
func (f Footer) RenderCopyright(year int) string {
	return strings.ReplaceAll(f.Copyright, "{year}", strconv.Itoa(year))
}

// Prism configures code highlighting themes and extra languages.
type Prism struct {
	Theme               string   `yaml:"theme,omitempty" json:"theme,omitempty"`
	DarkTheme           string   `yaml:"dark_theme,omitempty" json:"darkTheme,omitempty"`
	AdditionalLanguages []string `yaml:"additional_languages,omitempty" json:"additionalLanguages,omitempty"`
}

// SidebarRefs returns the sidebar ids referenced by docSidebar navbar items, in order.
func (s *Site) SidebarRefs() []string {
	var refs []string
	for _, item := range s.Navbar.Items {
		if item.Type == NavbarDocSidebar {
			refs = append(refs, item.SidebarID)
		}
	}
	return refs
}
