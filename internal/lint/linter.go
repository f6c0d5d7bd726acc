package lint

import (
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Linter runs the navigation rules over a sidebar set and its site metadata.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a new linter with the given configuration and the default rules.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}

	l := &Linter{cfg: cfg}
	known := make(map[string]bool)
	for _, rule := range DefaultRules() {
		known[rule.Name()] = true
		if slices.Contains(cfg.Disable, rule.Name()) {
			continue
		}
		l.rules = append(l.rules, rule)
	}
	for _, name := range cfg.Disable {
		if !known[name] {
			slog.Warn("Unknown lint rule in disable list", logfields.Rule(name))
		}
	}
	return l
}

// Rules returns the names of the enabled rules in reporting order.
func (l *Linter) Rules() []string {
	names := make([]string, len(l.rules))
	for i, r := range l.rules {
		names[i] = r.Name()
	}
	return names
}

// Lint applies every enabled rule to in.
func (l *Linter) Lint(in Input) *Result {
	result := &Result{
		Issues:         []Issue{},
		SidebarsTotal:  in.Sidebars.Len(),
		DocumentsTotal: in.Index.Len(),
	}

	for _, rule := range l.rules {
		issues := rule.Check(in)
		slog.Debug("Lint rule checked", logfields.Rule(rule.Name()), logfields.Count(len(issues)))

		for _, issue := range issues {
			// Skip info and warnings in quiet mode
			if l.cfg.Quiet && issue.Severity != SeverityError {
				continue
			}
			result.Issues = append(result.Issues, issue)
		}
	}

	return result
}
