package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/playbook"
	"git.home.luguber.info/inful/docnav/internal/render"
)

const projectYAML = `version: "1.0"
site:
  title: Playbook
  navbar:
    items:
      - type: docSidebar
        sidebar_id: qaSidebar
        label: QA Guide
sidebars:
  mainSidebar:
    - index
  qaSidebar:
    - type: category
      label: Getting Started
      items:
        - qa-guide/getting-started/qa-guide-introduction
`

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// setupProject writes docnav.yaml plus one markdown file per document id and
// returns the project file path.
func setupProject(t *testing.T, yaml string, docs ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "docnav.yaml")
	writeFile(t, path, yaml)
	for _, id := range docs {
		writeFile(t, filepath.Join(dir, "content", id+".md"), "# "+filepath.Base(id)+"\n")
	}
	return path
}

func TestVersionFlag(t *testing.T) {
	res := run(t, "--version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "docnav ")
}

func TestUnknownCommand(t *testing.T) {
	res := run(t, "publish")
	assert.NotEqual(t, 0, res.code)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "docnav.yaml")

	res := run(t, "init", "-c", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "docnav project initialized successfully")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, playbook.Raw(), data)

	// An existing file is a configuration error unless forced.
	res = run(t, "init", "-c", path)
	assert.Equal(t, 7, res.code)
	assert.Contains(t, res.stdout, "Initialization failed")
	assert.Contains(t, res.stderr, "already exists")

	res = run(t, "init", "-c", path, "--force")
	assert.Equal(t, 0, res.code)
}

func TestInit_OutputDirectory(t *testing.T) {
	dir := t.TempDir()
	res := run(t, "init", "--output", dir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(dir, playbook.FileName))
}

func TestInit_ThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docnav.yaml")
	require.Equal(t, 0, run(t, "init", "-c", path).code)

	res := run(t, "validate", "-c", path, "--no-content")
	assert.Equal(t, 0, res.code, res.stdout)
	assert.Contains(t, res.stdout, "10 sidebars checked")
}

func TestValidate_Clean(t *testing.T) {
	path := setupProject(t, projectYAML, "index", "qa-guide/getting-started/qa-guide-introduction")

	res := run(t, "validate", "-c", path)
	assert.Equal(t, 0, res.code, res.stdout)
	assert.Contains(t, res.stdout, "Checking navigation in: "+path)
	assert.Contains(t, res.stdout, "2 sidebars checked")
}

func TestValidate_WarningsExitOne(t *testing.T) {
	path := setupProject(t, projectYAML, "index")

	res := run(t, "validate", "-c", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "broken-document-ref")

	res = run(t, "validate", "-c", path, "--quiet")
	assert.Equal(t, 0, res.code)
	assert.NotContains(t, res.stdout, "broken-document-ref")
}

func TestValidate_ErrorsExitTwo(t *testing.T) {
	yaml := projectYAML + `  emptySidebar:
    - type: category
      label: Nothing
      items: []
`
	path := setupProject(t, yaml, "index", "qa-guide/getting-started/qa-guide-introduction")

	res := run(t, "validate", "-c", path, "-f", "json")
	assert.Equal(t, 2, res.code)

	var out struct {
		ErrorCount int `json:"error_count"`
		Issues     []struct {
			Rule     string `json:"rule"`
			Location string `json:"location"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, 1, out.ErrorCount)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, "empty-category", out.Issues[0].Rule)
	assert.Equal(t, "emptySidebar[0]", out.Issues[0].Location)
}

func TestValidate_MissingProject(t *testing.T) {
	res := run(t, "validate", "-c", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, 7, res.code)
}

func TestValidate_VerboseLogsClassifiedError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	res := run(t, "validate", "-c", missing)
	assert.Equal(t, 7, res.code)
	assert.NotContains(t, res.stderr, "level=ERROR")

	res = run(t, "validate", "-c", missing, "-v")
	assert.Equal(t, 7, res.code)
	assert.Contains(t, res.stderr, `level=ERROR msg="configuration file not found" category=config`)
}

func TestValidate_AutogenWithoutContentIsContentError(t *testing.T) {
	yaml := projectYAML + `autogenerate:
  - name: sharedSidebar
    dir: shared
`
	path := setupProject(t, yaml, "index", "shared/faq")

	res := run(t, "validate", "-c", path, "--no-content")
	assert.Equal(t, 11, res.code)
	assert.Contains(t, res.stderr, "autogenerated sidebars need the content directory")
}

func TestGenerate(t *testing.T) {
	path := setupProject(t, projectYAML, "index", "qa-guide/getting-started/qa-guide-introduction")
	out := filepath.Join(t.TempDir(), "out")
	metricsFile := filepath.Join(t.TempDir(), "docnav.prom")

	res := run(t, "generate", "-c", path, "-o", out, "--metrics-file", metricsFile)
	require.Equal(t, 0, res.code, res.stderr)
	for _, name := range []string{render.SidebarsJSFile, render.SidebarsJSONFile, render.SiteJSONFile} {
		assert.FileExists(t, filepath.Join(out, name))
		assert.Contains(t, res.stdout, "Wrote "+filepath.Join(out, name))
	}

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `docnav_run_outcomes_total{outcome="success"} 1`)
}

func TestGenerate_DryRun(t *testing.T) {
	path := setupProject(t, projectYAML, "index", "qa-guide/getting-started/qa-guide-introduction")
	out := filepath.Join(t.TempDir(), "out")

	res := run(t, "generate", "-c", path, "-o", out, "--dry-run")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.NoDirExists(t, out)
}

func TestGenerate_LintErrorsWriteNothing(t *testing.T) {
	yaml := `version: "1.0"
site:
  title: Playbook
  navbar:
    items:
      - type: docSidebar
        sidebar_id: missingSidebar
sidebars:
  mainSidebar:
    - index
`
	path := setupProject(t, yaml, "index")
	out := filepath.Join(t.TempDir(), "out")

	res := run(t, "generate", "-c", path, "-o", out)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stdout, "navbar-sidebar-ref")
	assert.NoDirExists(t, out)
}

func TestShow_Tree(t *testing.T) {
	path := setupProject(t, projectYAML)

	res := run(t, "show", "-c", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, `mainSidebar (1 documents)
  index

qaSidebar (1 documents)
  Getting Started/
    qa-guide/getting-started/qa-guide-introduction
`, res.stdout)
}

func TestShow_SingleSidebarJSON(t *testing.T) {
	path := setupProject(t, projectYAML)

	res := run(t, "show", "-c", path, "-f", "json", "qaSidebar")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"qaSidebar":[{"type":"category","label":"Getting Started","items":["qa-guide/getting-started/qa-guide-introduction"]}]}`, res.stdout)

	res = run(t, "show", "-c", path, "nope")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "mainSidebar, qaSidebar")
}

func TestShow_PlaybookYAML(t *testing.T) {
	res := run(t, "show", "--playbook", "-f", "yaml", "sharedSidebar")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "sharedSidebar:\n")
	assert.Contains(t, res.stdout, "type: category")
}

func TestShow_IncludesGeneratedSidebars(t *testing.T) {
	yaml := projectYAML + `autogenerate:
  - name: sharedSidebar
    dir: shared
`
	path := setupProject(t, yaml, "index", "shared/faq")

	res := run(t, "show", "-c", path, "-f", "js")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"sharedSidebar": [`)
	assert.Contains(t, res.stdout, "module.exports = sidebars;")
}

func TestAutogen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shared", "glossary.md"), "# Glossary\n")
	writeFile(t, filepath.Join(dir, "shared", "templates", "prompt.md"), "# Prompt\n")

	res := run(t, "autogen", "--content", dir, "-n", "sharedSidebar", "-f", "json", "shared")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"sharedSidebar":[
		"shared/glossary",
		{"type":"category","label":"Templates","items":["shared/templates/prompt"]}
	]}`, res.stdout)
}

func TestAutogen_EmptyDirectory(t *testing.T) {
	res := run(t, "autogen", "--content", t.TempDir())
	assert.Equal(t, 11, res.code)
}
