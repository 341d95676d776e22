// Package theme resolves page templates through an override chain.
//
// Lookup precedence (first hit wins):
//
//  1. <theme.dir>/<group>/<name>.html   – operator overrides on disk
//  2. embedded templates/<group>/<name>.html
//  3. embedded templates/records/<name>.html (shared record pages)
//
// A group is an entity key (blog, book) or a fixed section such as
// "layout" or "docs".  Overrides are per file; a theme directory only
// needs the pages it changes.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// SharedGroup holds the pages both apps render unless overridden.
const SharedGroup = "records"

// ErrNotFound is returned when no layer has the template.
var ErrNotFound = errors.New("theme: template not found")

// Theme pairs an optional disk directory with the embedded defaults.
type Theme struct {
	Dir  string
	Base fs.FS

	disk fs.FS
}

// New validates dir (when set) and returns the Theme.
func New(dir string, base fs.FS) (*Theme, error) {
	t := &Theme{Dir: dir, Base: base}
	if dir == "" {
		return t, nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("theme: directory %s not found", dir)
	}
	t.disk = os.DirFS(dir)
	return t, nil
}

// Resolve returns the filesystem and slash path holding group/name.html.
func (t *Theme) Resolve(group, name string) (fs.FS, string, error) {
	file := name + ".html"
	candidates := []struct {
		fsys fs.FS
		p    string
	}{
		{t.disk, path.Join(group, file)},
		{t.Base, path.Join(group, file)},
		{t.Base, path.Join(SharedGroup, file)},
	}
	for _, c := range candidates {
		if c.fsys == nil {
			continue
		}
		if _, err := fs.Stat(c.fsys, c.p); err == nil {
			return c.fsys, c.p, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s/%s", ErrNotFound, group, name)
}

// Overrides lists the templates the disk directory provides.
func (t *Theme) Overrides() ([]string, error) {
	if t.Dir == "" {
		return nil, nil
	}
	return CollectHTML(t.Dir)
}
