package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySidebar    = "sidebar"
	KeyDocument   = "document"
	KeyCategory   = "category"
	KeyRule       = "rule"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyFormat     = "format"
	KeyEvent      = "event"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Sidebar(name string) slog.Attr   { return slog.String(KeySidebar, name) }
func Document(id string) slog.Attr    { return slog.String(KeyDocument, id) }
func Category(label string) slog.Attr { return slog.String(KeyCategory, label) }
func Rule(name string) slog.Attr      { return slog.String(KeyRule, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
