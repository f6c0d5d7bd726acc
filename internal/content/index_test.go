package content

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func TestScan_IDsAndTitles(t *testing.T) {
	fsys := fstest.MapFS{
		"index.md": file("# Welcome\n\nHello."),
		"qa-guide/getting-started/qa-guide-introduction.md": file("---\ntitle: QA Guide\nsidebar_position: 1\n---\n# Ignored\n"),
		"qa-guide/getting-started/01-setup.mdx":              file("Setup body without heading"),
		"developer-guide/daily-usage/code-completion.md":     file("---\nid: completion\nsidebar_label: Completion\n---\n# Code Completion\n"),
		"_partials/snippet.md":                               file("# Partial"),
		"qa-guide/_draft.md":                                 file("# Draft"),
		".hidden/secret.md":                                  file("# Hidden"),
		"assets/logo.png":                                    file("png"),
	}

	idx, err := Scan(fsys)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"index",
		"qa-guide/getting-started/qa-guide-introduction",
		"qa-guide/getting-started/setup",
		"developer-guide/daily-usage/completion",
	}, idx.IDs())
	assert.Equal(t, 4, idx.Len())

	d, ok := idx.Get("index")
	require.True(t, ok)
	assert.Equal(t, "Welcome", d.Title)
	assert.Equal(t, "Welcome", d.Label)
	assert.Equal(t, "", d.Dir())

	d, ok = idx.Get("qa-guide/getting-started/qa-guide-introduction")
	require.True(t, ok)
	assert.Equal(t, "QA Guide", d.Title)
	assert.True(t, d.HasPosition)
	assert.InDelta(t, 1.0, d.Position, 0)
	assert.Equal(t, "qa-guide/getting-started", d.Dir())

	d, ok = idx.Get("qa-guide/getting-started/setup")
	require.True(t, ok)
	assert.Equal(t, "setup", d.Title)
	assert.Equal(t, "qa-guide/getting-started/01-setup.mdx", d.Path)
	assert.False(t, d.HasPosition)

	d, ok = idx.Get("developer-guide/daily-usage/completion")
	require.True(t, ok)
	assert.Equal(t, "Code Completion", d.Title)
	assert.Equal(t, "Completion", d.Label)

	assert.False(t, idx.Has("developer-guide/daily-usage/code-completion"))
	assert.Empty(t, idx.Duplicates())
}

func TestScan_Duplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/intro.md":     file("# A"),
		"guide/01-intro.md":  file("# B"),
		"guide/other.md":     file("---\nid: intro\n---\n"),
		"guide/unrelated.md": file("# C"),
	}
	idx, err := Scan(fsys)
	require.NoError(t, err)

	dups := idx.Duplicates()
	require.Len(t, dups, 1)
	assert.Equal(t, "guide/intro", dups[0].ID)
	assert.Len(t, dups[0].Paths, 3)
	assert.Equal(t, 2, idx.Len())
}

func TestScan_BadFrontmatter(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.md": file("---\ntitle: [unterminated\n---\n"),
	}
	_, err := Scan(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.md")

	fsys = fstest.MapFS{
		"open.md": file("---\ntitle: x\n"),
	}
	_, err = Scan(fsys)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shared"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared", "glossary.md"), []byte("# Glossary\n"), 0o644))

	idx, err := ScanDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, idx.Root())
	assert.True(t, idx.Has("shared/glossary"))

	_, err = ScanDir(filepath.Join(dir, "missing"))
	require.Error(t, err)

	_, err = ScanDir(filepath.Join(dir, "shared", "glossary.md"))
	require.Error(t, err)
}

func TestIndex_NilSafe(t *testing.T) {
	var idx *Index
	assert.Equal(t, 0, idx.Len())
	assert.False(t, idx.Has("x"))
	assert.Empty(t, idx.IDs())
	assert.Nil(t, idx.Duplicates())
	assert.Equal(t, "", idx.Suggest("x"))
}

func TestIndex_Suggest(t *testing.T) {
	idx, err := Scan(fstest.MapFS{
		"qa-guide/getting-started/qa-guide-introduction.md": file("# Intro"),
	})
	require.NoError(t, err)
	assert.Equal(t, "qa-guide/getting-started/qa-guide-introduction", idx.Suggest("qa-guide/qa-guide-introduction"))
	assert.Equal(t, "", idx.Suggest("qa-guide/unknown"))
}

func TestDocumentID(t *testing.T) {
	cases := map[string]struct {
		path, override, want string
	}{
		"plain":          {"a/b/c.md", "", "a/b/c"},
		"prefixes":       {"01-a/2_b/10.c.md", "", "a/b/c"},
		"numeric only":   {"2024/notes.md", "", "2024/notes"},
		"override":       {"a/01-b.md", "custom", "a/custom"},
		"blank override": {"a/b.mdx", "  ", "a/b"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, documentID(tc.path, tc.override))
		})
	}
}

func TestIsDocFile(t *testing.T) {
	assert.True(t, IsDocFile("a.md"))
	assert.True(t, IsDocFile("a.MDX"))
	assert.True(t, IsDocFile("a.markdown"))
	assert.False(t, IsDocFile("a.png"))
	assert.False(t, IsDocFile("md"))
}
