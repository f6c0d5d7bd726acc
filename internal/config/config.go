// Package config loads the docnav project file: site metadata, sidebars,
// autogenerated sidebar declarations and output settings.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// CurrentVersion is the only project file version this build understands.
const CurrentVersion = "1.0"

// Project is the parsed project file. It is built once by Load or Parse and
// handed to the linter and renderer by reference.
type Project struct {
	Version  string           `yaml:"version"`
	Site     site.Site        `yaml:"site"`
	Sidebars *nav.SidebarSet  `yaml:"sidebars"`
	Autogen  []AutogenSidebar `yaml:"autogenerate,omitempty"`
	Output   OutputConfig     `yaml:"output"`
	Lint     LintConfig       `yaml:"lint,omitempty"`

	path string
}

// AutogenSidebar declares a sidebar generated from a content subdirectory.
type AutogenSidebar struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// OutputFormat selects a generated file.
type OutputFormat string

const (
	FormatSidebarsJS   OutputFormat = "js"
	FormatSidebarsJSON OutputFormat = "json"
	FormatSiteJSON     OutputFormat = "site"
)

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string         `yaml:"directory"`
	Formats   []OutputFormat `yaml:"formats,omitempty"`
}

// LintConfig tunes the integrity checks.
type LintConfig struct {
	// Disable lists rule names to skip.
	Disable []string `yaml:"disable,omitempty"`
}

// Path returns the file the project was loaded from, or "" for parsed input.
func (p *Project) Path() string { return p.path }

// Dir returns the directory relative paths in the project resolve against.
func (p *Project) Dir() string {
	if p.path == "" {
		return "."
	}
	return filepath.Dir(p.path)
}

// ContentDir returns the resolved docs content directory.
func (p *Project) ContentDir() string {
	return p.resolve(p.Site.Docs.Path)
}

// OutputDir returns the resolved output directory.
func (p *Project) OutputDir() string {
	return p.resolve(p.Output.Directory)
}

func (p *Project) resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Dir(), rel)
}

// Load loads and validates the project file at configPath. A .env or
// .env.local file next to it is applied to the environment first, and ${VAR}
// references in the file are expanded before parsing.
func Load(configPath string) (*Project, error) {
	if err := loadEnvFile(filepath.Dir(configPath)); err != nil {
		// Don't fail if .env doesn't exist
		slog.Debug("No .env file loaded", logfields.Path(filepath.Dir(configPath)), logfields.Error(err))
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, derrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	p, err := Parse(expandEnv(data))
	if err != nil {
		return nil, err
	}
	p.path = configPath
	return p, nil
}

// Parse decodes, normalizes, defaults and validates project YAML.
func Parse(data []byte) (*Project, error) {
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if ne, ok := derrors.As(err); ok {
			return nil, ne
		}
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to unmarshal config")
	}

	if p.Version != CurrentVersion {
		return nil, derrors.ValidationFailed("version", fmt.Sprintf("unsupported configuration version %q (expected %s)", p.Version, CurrentVersion))
	}

	res := Normalize(&p)
	for _, w := range res.Warnings {
		slog.Warn("Config normalized", "change", w)
	}
	ApplyDefaults(&p)

	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal encodes the project back to YAML.
func Marshal(p *Project) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init writes example to configPath. example must itself be a valid project file.
func Init(configPath string, force bool, example []byte) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.New(derrors.CategoryConfig, derrors.SeverityFatal, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath)
	}
	if _, err := Parse(example); err != nil {
		return derrors.InternalError("example configuration is invalid", err)
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to create config directory")
		}
	}
	if err := os.WriteFile(configPath, example, 0o644); err != nil {
		return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to write config file").
			WithContext("path", configPath)
	}
	return nil
}
