// Package templates holds the PR description templates and picks one for a
// classified change.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed files/*.md
var embedded embed.FS

var (
	// ErrTemplateMissing means a declared template file is absent from the store
	ErrTemplateMissing = errors.New("template file missing")

	// ErrTemplateNotFound means the requested kind is not in the catalog
	ErrTemplateNotFound = errors.New("template not found")
)

// Entry is one template in the catalog
type Entry struct {
	Kind     Kind   `json:"-"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Content  string `json:"content"`
}

// Catalog is the fixed, ordered set of templates. It is read once and never
// modified, so it is safe to share between concurrent calls.
type Catalog struct {
	entries []Entry
	byKind  map[Kind]int
}

// Load reads every known template from fsys, failing on the first missing file
func Load(fsys fs.FS) (*Catalog, error) {
	kinds := Kinds()
	c := &Catalog{
		entries: make([]Entry, 0, len(kinds)),
		byKind:  make(map[Kind]int, len(kinds)),
	}

	for _, kind := range kinds {
		content, err := fs.ReadFile(fsys, kind.Filename())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, kind.Filename())
			}
			return nil, fmt.Errorf("failed to read template %s: %w", kind.Filename(), err)
		}

		c.byKind[kind] = len(c.entries)
		c.entries = append(c.entries, Entry{
			Kind:     kind,
			Filename: kind.Filename(),
			Type:     kind.DisplayName(),
			Content:  string(content),
		})
	}

	return c, nil
}

// LoadDefault loads the templates bundled with the binary
func LoadDefault() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		return nil, fmt.Errorf("failed to open bundled templates: %w", err)
	}
	return Load(sub)
}

// LoadDir loads templates from dir, or the bundled set when dir is empty
func LoadDir(dir string) (*Catalog, error) {
	if dir == "" {
		return LoadDefault()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path is not a directory: %s", dir)
	}
	return Load(os.DirFS(dir))
}

// List returns all templates in catalog order
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the template for kind
func (c *Catalog) Get(kind Kind) (Entry, error) {
	i, ok := c.byKind[kind]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, kind)
	}
	return c.entries[i], nil
}
