// Package playbook ships the project file of the AI-native SDLC playbook site:
// one sidebar per audience plus the shared content sidebar.
package playbook

import (
	_ "embed"

	"git.home.luguber.info/inful/docnav/internal/config"
)

// FileName is the conventional project file name written by `docnav init`.
const FileName = "docnav.yaml"

//go:embed docnav.yaml
var raw []byte

// Raw returns a copy of the embedded project file.
func Raw() []byte {
	return append([]byte(nil), raw...)
}

// Project parses the embedded project file.
func Project() (*config.Project, error) {
	return config.Parse(raw)
}
