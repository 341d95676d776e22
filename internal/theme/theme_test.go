package theme

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = fstest.MapFS{
	"records/index.html": {Data: []byte("shared index")},
	"records/show.html":  {Data: []byte("shared show")},
	"book/list.html":     {Data: []byte("book list")},
	"book/show.html":     {Data: []byte("book show")},
}

func read(t *testing.T, fsys fs.FS, p string) string {
	t.Helper()
	b, err := fs.ReadFile(fsys, p)
	require.NoError(t, err)
	return string(b)
}

func TestResolveChain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "book"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book", "index.html"), []byte("disk index"), 0o644))

	th, err := New(dir, base)
	require.NoError(t, err)

	fsys, p, err := th.Resolve("book", "index")
	require.NoError(t, err)
	assert.Equal(t, "disk index", read(t, fsys, p))

	fsys, p, err = th.Resolve("book", "show")
	require.NoError(t, err)
	assert.Equal(t, "book show", read(t, fsys, p))

	fsys, p, err = th.Resolve("blog", "show")
	require.NoError(t, err)
	assert.Equal(t, "shared show", read(t, fsys, p))

	_, _, err = th.Resolve("blog", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	files, err := th.Overrides()
	require.NoError(t, err)
	assert.Equal(t, []string{"book/index.html"}, files)
}

func TestNewRejectsMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), base)
	assert.Error(t, err)
}

func TestAssetHelper(t *testing.T) {
	asset := FuncMap()["asset"].(func(string) string)
	assert.Equal(t, "/static/app.css", asset("app.css"))
}
