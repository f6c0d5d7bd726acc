// Package content discovers the documents of a docs directory and computes the
// ids sidebars refer to them by.
//
// A document's id is its path relative to the docs root, without extension and
// with ordering prefixes ("01-", "2_") stripped from every segment. A
// frontmatter `id` replaces the last segment. Files and directories whose
// name starts with "_" or "." are not documents.
package content

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
)

// Document is one content page.
type Document struct {
	ID          string  // Sidebar-facing id, e.g. "qa-guide/getting-started/qa-guide-introduction"
	Path        string  // Slash-separated path relative to the docs root
	Title       string  // Frontmatter title, first H1, or last id segment
	Label       string  // sidebar_label, falling back to Title
	Position    float64 // sidebar_position; meaningful only when HasPosition
	HasPosition bool
}

// Dir returns the id's directory part ("" for top-level documents).
func (d Document) Dir() string {
	if dir := path.Dir(d.ID); dir != "." {
		return dir
	}
	return ""
}

// Duplicate records two files that resolve to the same id.
type Duplicate struct {
	ID    string
	Paths []string
}

// Index is an immutable view of the documents under a docs root.
type Index struct {
	root       string
	docs       []Document
	byID       map[string]int
	duplicates []Duplicate
}

var orderPrefix = regexp.MustCompile(`^\d+[-_.]`)

// IsDocFile returns true if the file is a documentation file.
func IsDocFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".md" || ext == ".mdx" || ext == ".markdown"
}

// ScanDir scans the docs directory at dir.
func ScanDir(dir string) (*Index, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	idx, err := Scan(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	idx.root = dir
	return idx, nil
}

// Scan walks fsys and indexes every document in it.
func Scan(fsys fs.FS) (*Index, error) {
	idx := &Index{byID: make(map[string]int)}
	paths := make(map[string][]string)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsDocFile(name) {
			return nil
		}

		doc, err := readDocument(fsys, p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		paths[doc.ID] = append(paths[doc.ID], p)
		if _, seen := idx.byID[doc.ID]; seen {
			return nil
		}
		idx.byID[doc.ID] = len(idx.docs)
		idx.docs = append(idx.docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for id, ps := range paths {
		if len(ps) > 1 {
			idx.duplicates = append(idx.duplicates, Duplicate{ID: id, Paths: ps})
		}
	}
	sort.Slice(idx.duplicates, func(i, j int) bool { return idx.duplicates[i].ID < idx.duplicates[j].ID })
	return idx, nil
}

func readDocument(fsys fs.FS, p string) (Document, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Document{}, err
	}
	raw, body, _, err := SplitFrontmatter(data)
	if err != nil {
		return Document{}, err
	}
	fm, err := ParseFrontmatter(raw)
	if err != nil {
		return Document{}, fmt.Errorf("frontmatter: %w", err)
	}

	id := documentID(p, fm.ID)
	doc := Document{ID: id, Path: p, Title: fm.Title, Label: fm.SidebarLabel}
	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	if doc.Title == "" {
		doc.Title = path.Base(id)
	}
	if doc.Label == "" {
		doc.Label = doc.Title
	}
	if fm.SidebarPosition != nil {
		doc.Position = *fm.SidebarPosition
		doc.HasPosition = true
	}
	return doc, nil
}

func documentID(p, override string) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	segments := strings.Split(p, "/")
	for i, s := range segments {
		if stripped := orderPrefix.ReplaceAllString(s, ""); stripped != "" {
			segments[i] = stripped
		}
	}
	if override = strings.TrimSpace(override); override != "" {
		segments[len(segments)-1] = override
	}
	return strings.Join(segments, "/")
}

// Root returns the scanned directory, or "" for an index built from an fs.FS.
func (x *Index) Root() string { return x.root }

// Len returns the number of documents.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.docs)
}

// Has reports whether a document with id exists.
func (x *Index) Has(id string) bool {
	_, ok := x.Get(id)
	return ok
}

// Get returns the document with id.
func (x *Index) Get(id string) (Document, bool) {
	if x == nil {
		return Document{}, false
	}
	i, ok := x.byID[id]
	if !ok {
		return Document{}, false
	}
	return x.docs[i], true
}

// Documents returns all documents in walk (lexical path) order.
func (x *Index) Documents() []Document {
	if x == nil {
		return nil
	}
	return append([]Document(nil), x.docs...)
}

// IDs returns all document ids in walk order.
func (x *Index) IDs() []string {
	docs := x.Documents()
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

// Duplicates lists ids claimed by more than one file, sorted by id.
func (x *Index) Duplicates() []Duplicate {
	if x == nil {
		return nil
	}
	return append([]Duplicate(nil), x.duplicates...)
}

// Suggest returns the known id closest to id by shared trailing segment,
// or "" when nothing plausible exists.
func (x *Index) Suggest(id string) string {
	base := path.Base(id)
	for _, d := range x.Documents() {
		if path.Base(d.ID) == base {
			return d.ID
		}
	}
	return ""
}
