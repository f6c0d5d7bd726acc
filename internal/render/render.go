// Package render writes the files the site generator consumes: the sidebars
// module (sidebars.js), the same data as JSON (sidebars.json) and the site
// metadata (site.json).
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Output file names.
const (
	SidebarsJSFile   = "sidebars.js"
	SidebarsJSONFile = "sidebars.json"
	SiteJSONFile     = "site.json"
)

// FileName returns the output file written for format.
func FileName(f config.OutputFormat) string {
	switch f {
	case config.FormatSidebarsJS:
		return SidebarsJSFile
	case config.FormatSidebarsJSON:
		return SidebarsJSONFile
	case config.FormatSiteJSON:
		return SiteJSONFile
	}
	return ""
}

// Renderer encodes a project's navigation into output files.
type Renderer struct {
	now func() time.Time
}

// New returns a Renderer using the wall clock for {year} substitution.
func New() *Renderer {
	return &Renderer{now: time.Now}
}

// WithClock overrides the clock used for {year} substitution.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Encode returns the content of one output format.
func (r *Renderer) Encode(f config.OutputFormat, s *site.Site, sidebars *nav.SidebarSet) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case config.FormatSidebarsJS:
		if err := nav.WriteSidebarsJS(&buf, sidebars); err != nil {
			return nil, err
		}
	case config.FormatSidebarsJSON:
		raw, err := sidebars.MarshalJSON()
		if err != nil {
			return nil, err
		}
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
	case config.FormatSiteJSON:
		out := *s
		out.Footer.Copyright = s.Footer.RenderCopyright(r.now().Year())
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
	return buf.Bytes(), nil
}

// Write renders every configured output format of p into outDir using the
// given sidebars, which may include autogenerated ones. It returns the paths
// written, in format order.
func (r *Renderer) Write(ctx context.Context, p *config.Project, sidebars *nav.SidebarSet, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, derrors.RenderFailed(outDir, err)
	}

	written := make([]string, 0, len(p.Output.Formats))
	for _, f := range p.Output.Formats {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		data, err := r.Encode(f, &p.Site, sidebars)
		if err != nil {
			return written, derrors.RenderFailed(FileName(f), err)
		}
		target := filepath.Join(outDir, FileName(f))
		if err := writeAtomic(target, data); err != nil {
			return written, derrors.RenderFailed(target, err)
		}
		slog.Debug("Wrote output file", logfields.Path(target), logfields.Format(string(f)))
		written = append(written, target)
	}
	return written, nil
}

// writeAtomic writes data next to path and renames it into place so readers
// never see a partial file.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
