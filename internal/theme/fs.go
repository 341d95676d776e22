// fs.go holds a small helper for walking the theme directory when template
// glob patterns such as “**/*.html” are not available in the Go standard
// library.  CollectHTML returns every .html file under the supplied
// directory; the renderer logs the list at startup so operators can see
// which pages they override.
package theme

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// CollectHTML walks rootDir recursively and returns a list of *.html paths
// relative to rootDir, in slash form (even on Windows).
func CollectHTML(rootDir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil { // propagate filesystem errors immediately
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			rel, err := filepath.Rel(rootDir, p)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
