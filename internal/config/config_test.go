package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/site"
)

const minimalProject = `version: "1.0"
site:
  title: Playbook
  navbar:
    items:
      - type: docSidebar
        sidebar_id: qaSidebar
        label: QA Guide
sidebars:
  qaSidebar:
    - type: category
      label: Getting Started
      items:
        - qa-guide/getting-started/qa-guide-introduction
`

func writeProject(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "docnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_AppliesDefaults(t *testing.T) {
	p, err := Parse([]byte(minimalProject))
	require.NoError(t, err)

	assert.Equal(t, "/", p.Site.BaseURL)
	assert.Equal(t, site.PolicyWarn, p.Site.OnBrokenLinks)
	assert.Equal(t, site.PolicyWarn, p.Site.OnBrokenMarkdownLinks)
	assert.Equal(t, "en", p.Site.I18n.DefaultLocale)
	assert.Equal(t, []string{"en"}, p.Site.I18n.Locales)
	assert.Equal(t, DefaultContentPath, p.Site.Docs.Path)
	assert.Equal(t, "/", p.Site.Docs.RouteBasePath)
	assert.Equal(t, "Playbook", p.Site.Navbar.Title)
	assert.Equal(t, "left", p.Site.Navbar.Items[0].Position)
	assert.Equal(t, DefaultOutputDir, p.Output.Directory)
	assert.Equal(t, DefaultFormats, p.Output.Formats)
	assert.Equal(t, []string{"qaSidebar"}, p.Sidebars.Names())
}

func TestParse_NormalizesEnums(t *testing.T) {
	input := `version: "1.0"
site:
  title: Playbook
  on_broken_links: THROW
  on_broken_markdown_links: explode
  navbar:
    items:
      - type: DocSidebar
        sidebar_id: qaSidebar
        position: " Right "
        label: QA
output:
  formats: [JS, " site"]
sidebars:
  qaSidebar: [index]
`
	p, err := Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, site.PolicyThrow, p.Site.OnBrokenLinks)
	assert.Equal(t, site.PolicyWarn, p.Site.OnBrokenMarkdownLinks)
	assert.Equal(t, site.NavbarDocSidebar, p.Site.Navbar.Items[0].Type)
	assert.Equal(t, "right", p.Site.Navbar.Items[0].Position)
	assert.Equal(t, []OutputFormat{FormatSidebarsJS, FormatSiteJSON}, p.Output.Formats)
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "wrong version",
			input: "version: \"2.0\"\nsite: {title: x}\nsidebars: {s: [a]}\n",
			field: "version",
		},
		{
			name:  "missing title",
			input: "version: \"1.0\"\nsite: {}\nsidebars: {s: [a]}\n",
			field: "site.title",
		},
		{
			name:  "base url without trailing slash",
			input: "version: \"1.0\"\nsite: {title: x, base_url: /docs}\nsidebars: {s: [a]}\n",
			field: "site.base_url",
		},
		{
			name:  "no sidebars",
			input: "version: \"1.0\"\nsite: {title: x}\n",
			field: "sidebars",
		},
		{
			name:  "navbar item without target",
			input: "version: \"1.0\"\nsite: {title: x, navbar: {items: [{type: doc, label: Home}]}}\nsidebars: {s: [a]}\n",
			field: "site.navbar.items[0]",
		},
		{
			name:  "unknown navbar type",
			input: "version: \"1.0\"\nsite: {title: x, navbar: {items: [{type: dropdown, label: More}]}}\nsidebars: {s: [a]}\n",
			field: "site.navbar.items[0].type",
		},
		{
			name:  "autogen collides with declared sidebar",
			input: "version: \"1.0\"\nsite: {title: x}\nsidebars: {s: [a]}\nautogenerate: [{name: s, dir: shared}]\n",
			field: "autogenerate[0].name",
		},
		{
			name:  "unknown output format",
			input: "version: \"1.0\"\nsite: {title: x}\nsidebars: {s: [a]}\noutput: {formats: [toml]}\n",
			field: "output.formats[0]",
		},
		{
			name:  "default locale not listed",
			input: "version: \"1.0\"\nsite: {title: x, i18n: {default_locale: en, locales: [de]}}\nsidebars: {s: [a]}\n",
			field: "site.i18n.locales",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			ne, ok := derrors.As(err)
			require.True(t, ok, "expected NavError, got %T", err)
			assert.Equal(t, derrors.CategoryValidation, ne.Category)
			assert.Equal(t, tt.field, ne.Context["field"])
		})
	}
}

func TestParse_RejectsUnknownFieldsAndMalformedNodes(t *testing.T) {
	_, err := Parse([]byte("version: \"1.0\"\nsite: {title: x, titel: y}\nsidebars: {s: [a]}\n"))
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))

	_, err = Parse([]byte("version: \"1.0\"\nsite: {title: x}\nsidebars: {s: [[a]]}\n"))
	require.Error(t, err)
	ne, ok := derrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "malformed sidebar node", ne.Message)
}

func TestLoad_ExpandsEnvironmentFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCNAV_TEST_EXISTING", "from-process")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DOCNAV_TEST_ORG=from-dotenv\nDOCNAV_TEST_EXISTING=from-dotenv\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("DOCNAV_TEST_ORG") })

	content := "version: \"1.0\"\nsite:\n  title: Playbook\n  organization_name: ${DOCNAV_TEST_ORG}\n  project_name: ${DOCNAV_TEST_EXISTING}\nsidebars:\n  s: [index]\n"
	path := writeProject(t, dir, content)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", p.Site.OrganizationName)
	assert.Equal(t, "from-process", p.Site.ProjectName)
	assert.Equal(t, path, p.Path())
	assert.Equal(t, filepath.Join(dir, "content"), p.ContentDir())
	assert.Equal(t, filepath.Join(dir, DefaultOutputDir), p.OutputDir())
}

func TestLoad_ExpandsOnlyBracedReferences(t *testing.T) {
	t.Setenv("DOCNAV_TEST_TAGLINE", "expanded")
	t.Setenv("HOME", "/home/docs")

	content := "version: \"1.0\"\nsite:\n  title: Costs $5 per seat\n  tagline: ${DOCNAV_TEST_TAGLINE} for $HOME\nsidebars:\n  s: [pricing/$plan]\n"
	path := writeProject(t, t.TempDir(), content)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Costs $5 per seat", p.Site.Title)
	assert.Equal(t, "expanded for $HOME", p.Site.Tagline)
	assert.Equal(t, []string{"pricing/$plan"}, p.Sidebars.DocumentIDs())
}

func TestLoad_WritesNothingToStderr(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = orig })

	_, loadErr := Load(writeProject(t, t.TempDir(), minimalProject))
	os.Stderr = orig
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, loadErr)
	assert.Empty(t, string(out))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "docnav.yaml")

	require.NoError(t, Init(path, false, []byte(minimalProject)))
	_, err := Load(path)
	require.NoError(t, err)

	err = Init(path, false, []byte(minimalProject))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true, []byte(minimalProject)))

	err = Init(filepath.Join(dir, "bad.yaml"), false, []byte("version: nope\n"))
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryInternal))
}

func TestMarshal_RoundTrip(t *testing.T) {
	p, err := Parse([]byte(minimalProject))
	require.NoError(t, err)

	out, err := Marshal(p)
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, p.Site, again.Site)
	assert.Equal(t, p.Sidebars.Sidebars(), again.Sidebars.Sidebars())
}
