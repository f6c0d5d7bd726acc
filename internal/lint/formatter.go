package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats linting results for output. source names the checked
// project file.
type Formatter interface {
	Format(w io.Writer, result *Result, source string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, source string) error {
	// Header
	if _, err := fmt.Fprintf(w, "Checking navigation in: %s\n", source); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	// Issues keep rule order, then declaration order within a rule.
	for _, issue := range result.Issues {
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	// Summary
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %d sidebar%s checked\n", result.SidebarsTotal, pluralize(result.SidebarsTotal)); err != nil {
		return err
	}
	if result.DocumentsTotal > 0 {
		if _, err := fmt.Fprintf(w, "  %d document%s indexed\n", result.DocumentsTotal, pluralize(result.DocumentsTotal)); err != nil {
			return err
		}
	}

	errorCount := result.ErrorCount()
	warningCount := result.WarningCount()
	infoCount := result.InfoCount()

	if errorCount > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s (breaks site build)\n", errorCount, pluralize(errorCount)); err != nil {
			return err
		}
	}
	if warningCount > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s (should fix)\n", warningCount, pluralize(warningCount)); err != nil {
			return err
		}
	}
	if infoCount > 0 {
		if _, err := fmt.Fprintf(w, "  %d info\n", infoCount); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	// Final message
	return f.printFinalMessage(w, result)
}

// printFinalMessage prints the appropriate final message based on the result.
func (f *TextFormatter) printFinalMessage(w io.Writer, result *Result) error {
	if result.HasErrors() {
		return f.printMessages(w, "❌ Navigation has errors that will break the site build.")
	}
	if result.HasWarnings() {
		return f.printMessages(w, "⚠️  Navigation has warnings. Consider fixing before commit.")
	}
	if len(result.Issues) > 0 {
		return f.printMessages(w, "ℹ️  All issues are informational.")
	}
	return f.printMessages(w, "✨ Navigation passes all checks!")
}

// printMessages prints multiple lines to the writer.
func (f *TextFormatter) printMessages(w io.Writer, messages ...string) error {
	for _, msg := range messages {
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}

// formatIssue formats a single issue.
func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	// Icon based on severity
	var icon string
	switch issue.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	case SeverityInfo:
		icon = "ℹ"
	}

	// Header
	if _, err := fmt.Fprintf(w, "%s %s\n", icon, issue.Location); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %s [%s]: %s\n", issue.Severity, issue.Rule, issue.Message); err != nil {
		return err
	}

	// Explanation (indented)
	if issue.Explanation != "" {
		for line := range strings.SplitSeq(strings.TrimSpace(issue.Explanation), "\n") {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}

	// Fix suggestion
	if issue.Fix != "" {
		if _, err := fmt.Fprintf(w, "  Fix: %s\n", issue.Fix); err != nil {
			return err
		}
	}

	return nil
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Source         string      `json:"source"`
	SidebarsTotal  int         `json:"sidebars_total"`
	DocumentsTotal int         `json:"documents_total"`
	ErrorCount     int         `json:"error_count"`
	WarningCount   int         `json:"warning_count"`
	InfoCount      int         `json:"info_count"`
	Issues         []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Location    string `json:"location"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, source string) error {
	output := JSONOutput{
		Source:         source,
		SidebarsTotal:  result.SidebarsTotal,
		DocumentsTotal: result.DocumentsTotal,
		ErrorCount:     result.ErrorCount(),
		WarningCount:   result.WarningCount(),
		InfoCount:      result.InfoCount(),
		Issues:         []JSONIssue{},
	}

	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			Location:    issue.Location,
			Severity:    issue.Severity.String(),
			Rule:        issue.Rule,
			Message:     issue.Message,
			Explanation: issue.Explanation,
			Fix:         issue.Fix,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
