package config

import (
	"fmt"
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Validate checks the structural rules a project must satisfy before anything
// else can use it. Referential integrity (dangling documents, unknown
// sidebars) is the linter's job, not this function's.
func Validate(p *Project) error {
	v := &projectValidator{p: p}
	for _, step := range []func() error{
		v.validateSite,
		v.validateNavbar,
		v.validateSidebars,
		v.validateAutogen,
		v.validateOutput,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type projectValidator struct {
	p *Project
}

func (v *projectValidator) validateSite() error {
	s := v.p.Site
	if strings.TrimSpace(s.Title) == "" {
		return derrors.ValidationFailed("site.title", "title is required")
	}
	if !strings.HasPrefix(s.BaseURL, "/") || !strings.HasSuffix(s.BaseURL, "/") {
		return derrors.ValidationFailed("site.base_url", fmt.Sprintf("%q must start and end with '/'", s.BaseURL))
	}
	if !slices.Contains(s.I18n.Locales, s.I18n.DefaultLocale) {
		return derrors.ValidationFailed("site.i18n.locales", fmt.Sprintf("default locale %q is not listed", s.I18n.DefaultLocale))
	}
	return nil
}

func (v *projectValidator) validateNavbar() error {
	for i, item := range v.p.Site.Navbar.Items {
		field := fmt.Sprintf("site.navbar.items[%d]", i)
		switch item.Type {
		case site.NavbarDoc, site.NavbarDocSidebar, site.NavbarLink:
		default:
			return derrors.ValidationFailed(field+".type", fmt.Sprintf("unsupported navbar item type %q", item.Type))
		}
		if item.Target() == "" {
			return derrors.ValidationFailed(field, fmt.Sprintf("%s item has no target", item.Type))
		}
		if item.Position != "left" && item.Position != "right" {
			return derrors.ValidationFailed(field+".position", fmt.Sprintf("position must be left or right, got %q", item.Position))
		}
	}
	return nil
}

func (v *projectValidator) validateSidebars() error {
	if v.p.Sidebars.Len() == 0 && len(v.p.Autogen) == 0 {
		return derrors.ValidationFailed("sidebars", "at least one sidebar must be declared")
	}
	return nil
}

func (v *projectValidator) validateAutogen() error {
	seen := make(map[string]bool)
	for i, a := range v.p.Autogen {
		field := fmt.Sprintf("autogenerate[%d]", i)
		if a.Name == "" {
			return derrors.ValidationFailed(field+".name", "name is required")
		}
		if v.p.Sidebars.Has(a.Name) || seen[a.Name] {
			return derrors.ValidationFailed(field+".name", fmt.Sprintf("sidebar %q is declared more than once", a.Name))
		}
		seen[a.Name] = true
		if strings.TrimSpace(a.Dir) == "" {
			return derrors.ValidationFailed(field+".dir", "dir is required")
		}
	}
	return nil
}

func (v *projectValidator) validateOutput() error {
	for i, f := range v.p.Output.Formats {
		switch f {
		case FormatSidebarsJS, FormatSidebarsJSON, FormatSiteJSON:
		default:
			return derrors.ValidationFailed(fmt.Sprintf("output.formats[%d]", i), fmt.Sprintf("unknown format %q", f))
		}
	}
	return nil
}
