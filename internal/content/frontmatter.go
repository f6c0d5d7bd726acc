package content

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// SplitFrontmatter separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input. CRLF documents are handled.
func SplitFrontmatter(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline.
		if trimmed := bytes.TrimSuffix(content[start:], []byte(nl+"---")); len(trimmed) != len(content[start:]) {
			return trimmed, nil, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// Frontmatter holds the fields docnav reads from a content document.
type Frontmatter struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	SidebarLabel    string   `yaml:"sidebar_label"`
	SidebarPosition *float64 `yaml:"sidebar_position"`
}

// ParseFrontmatter decodes raw YAML frontmatter (without --- delimiters).
// Unknown keys are ignored.
func ParseFrontmatter(raw []byte) (Frontmatter, error) {
	var fm Frontmatter
	if len(bytes.TrimSpace(raw)) == 0 {
		return fm, nil
	}
	if err := yaml.Unmarshal(raw, &fm); err != nil {
		return Frontmatter{}, err
	}
	return fm, nil
}
