package config

import "git.home.luguber.info/inful/docnav/internal/site"

// Default values applied to omitted fields.
const (
	DefaultContentPath   = "content"
	DefaultRouteBasePath = "/"
	DefaultBaseURL       = "/"
	DefaultLocale        = "en"
	DefaultOutputDir     = "build/docnav"
)

// DefaultFormats lists the files generated when output.formats is omitted.
var DefaultFormats = []OutputFormat{FormatSidebarsJS, FormatSidebarsJSON, FormatSiteJSON}

// ApplyDefaults fills omitted fields. It never overrides explicit values.
func ApplyDefaults(p *Project) {
	s := &p.Site
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.OnBrokenLinks == "" {
		s.OnBrokenLinks = site.PolicyWarn
	}
	if s.OnBrokenMarkdownLinks == "" {
		s.OnBrokenMarkdownLinks = site.PolicyWarn
	}
	if s.I18n.DefaultLocale == "" {
		s.I18n.DefaultLocale = DefaultLocale
	}
	if len(s.I18n.Locales) == 0 {
		s.I18n.Locales = []string{s.I18n.DefaultLocale}
	}
	if s.Docs.Path == "" {
		s.Docs.Path = DefaultContentPath
	}
	if s.Docs.RouteBasePath == "" {
		s.Docs.RouteBasePath = DefaultRouteBasePath
	}
	if s.Navbar.Title == "" {
		s.Navbar.Title = s.Title
	}
	for i := range s.Navbar.Items {
		if s.Navbar.Items[i].Position == "" {
			s.Navbar.Items[i].Position = "left"
		}
	}

	if p.Output.Directory == "" {
		p.Output.Directory = DefaultOutputDir
	}
	if len(p.Output.Formats) == 0 {
		p.Output.Formats = append([]OutputFormat(nil), DefaultFormats...)
	}
}
