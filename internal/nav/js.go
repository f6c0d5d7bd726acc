package nav

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

const sidebarsJSHeader = `// @ts-check

/** @type {import('@docusaurus/plugin-content-docs').SidebarsConfig} */
const sidebars = `

// WriteSidebarsJS writes set as a CommonJS sidebars module for the site
// generator. The object literal is the JSON encoding of the set.
func WriteSidebarsJS(w io.Writer, set *SidebarSet) error {
	raw, err := set.MarshalJSON()
	if err != nil {
		return err
	}
	var body bytes.Buffer
	if err := json.Indent(&body, raw, "", "  "); err != nil {
		return fmt.Errorf("indent sidebars: %w", err)
	}
	if _, err := io.WriteString(w, sidebarsJSHeader); err != nil {
		return err
	}
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	_, err = io.WriteString(w, ";\n\nmodule.exports = sidebars;\n")
	return err
}
