package lint

import (
	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages (e.g., onBrokenLinks: log).
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues that should be fixed but don't block builds.
	SeverityWarning
	// SeverityError indicates issues that will break the generated site.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single problem found in the navigation configuration.
type Issue struct {
	Location    string   // Where in the configuration, e.g. "qaSidebar > Getting Started [0]"
	Severity    Severity // Issue severity level
	Rule        string   // Rule identifier (e.g., "empty-category")
	Message     string   // Brief description of the issue
	Explanation string   // Detailed explanation with context
	Fix         string   // Suggested fix
}

// Result contains all issues found during linting.
type Result struct {
	Issues         []Issue
	SidebarsTotal  int // Sidebars checked
	DocumentsTotal int // Documents in the content index, 0 when no content was scanned
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

// InfoCount returns the number of info-level issues.
func (r *Result) InfoCount() int { return r.count(SeverityInfo) }

func (r *Result) count(s Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			count++
		}
	}
	return count
}

// Input is what a rule inspects. Index is nil when no content directory was
// scanned; rules that resolve document ids skip themselves in that case.
type Input struct {
	Site     *site.Site
	Sidebars *nav.SidebarSet
	Index    *content.Index
}

// Rule defines a check over the navigation configuration.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check inspects the input and returns any issues found.
	Check(in Input) []Issue
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings and info, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string

	// Disable lists rule names to skip.
	Disable []string
}

// policySeverity maps a broken-link policy to the severity of a dangling
// reference. ok is false for PolicyIgnore.
func policySeverity(p site.BrokenLinkPolicy) (sev Severity, ok bool) {
	switch p {
	case site.PolicyIgnore:
		return 0, false
	case site.PolicyLog:
		return SeverityInfo, true
	case site.PolicyThrow:
		return SeverityError, true
	default:
		return SeverityWarning, true
	}
}
