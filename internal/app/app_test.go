package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/record"
)

const confYAML = `
app:
  name: blog
  entity: blog
http:
  listen_addr: "%s"
session:
  secret: "0123456789abcdef0123"
database:
  driver: sqlite3
  uri: ":memory:"
theme:
  dir: theme
`

func writeFile(t *testing.T, p, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
}

func TestReloadPurgesTemplatesAndFlagsRestartSettings(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	confPath := filepath.Join(root, "blog.yaml")
	bannerPath := filepath.Join(root, "theme", "blog", "banner.html")

	writeFile(t, confPath, fmt.Sprintf(confYAML, ":7000"))
	writeFile(t, bannerPath, "<p>first</p>")
	t.Setenv("FOLIO_ROOT", root)
	t.Setenv("FOLIO_CONFIG", confPath)

	cfg, err := config.Load(ctx, "blog")
	require.NoError(t, err)
	st, err := OpenStore(ctx, cfg.Database, record.Blog, root)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	a, err := Assemble(cfg, zap.New(core).Sugar(), record.Blog, st)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	render := func() string {
		var buf bytes.Buffer
		require.NoError(t, a.Views.Execute(&buf, "blog", "banner", nil))
		return buf.String()
	}
	assert.Equal(t, "<p>first</p>", render())

	writeFile(t, bannerPath, "<p>second</p>")
	assert.Equal(t, "<p>first</p>", render(), "parsed set is cached")

	writeFile(t, confPath, fmt.Sprintf(confYAML, ":7001"))
	require.NoError(t, a.Reload(ctx))
	assert.Equal(t, "<p>second</p>", render())

	warned := logs.FilterMessage("config changed; restart to apply").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "http.listen_addr", warned[0].ContextMap()["key"])
	assert.Equal(t, ":7000", a.Config.HTTP.ListenAddr)
}

func TestReloadKeepsRunningConfigOnError(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	confPath := filepath.Join(root, "blog.yaml")
	writeFile(t, confPath, fmt.Sprintf(confYAML, ":7000"))
	writeFile(t, filepath.Join(root, "theme", "blog", "banner.html"), "x")
	t.Setenv("FOLIO_ROOT", root)
	t.Setenv("FOLIO_CONFIG", confPath)

	cfg, err := config.Load(ctx, "blog")
	require.NoError(t, err)
	st, err := OpenStore(ctx, cfg.Database, record.Blog, root)
	require.NoError(t, err)
	a, err := Assemble(cfg, zap.NewNop().Sugar(), record.Blog, st)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	writeFile(t, confPath, "app: [unterminated")
	assert.Error(t, a.Reload(ctx))
	assert.Same(t, cfg, a.Config)
}

func TestRestartOnly(t *testing.T) {
	cur := &config.Config{HTTP: config.HTTP{TrustedProxies: []string{"10.0.0.0/8"}}}
	next := *cur
	next.HTTP.TrustedProxies = []string{"10.0.0.0/8"}
	assert.Empty(t, restartOnly(cur, &next))

	next.HTTP.TrustedProxies = nil
	next.Security.Captcha = true
	assert.Equal(t, []string{"http.trusted_proxies", "security"}, restartOnly(cur, &next))
	assert.Nil(t, restartOnly(cur, nil))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "", resolve("/srv", ""))
	assert.Equal(t, "/abs/theme", resolve("/srv", "/abs/theme"))
	assert.Equal(t, filepath.Join("/srv", "theme"), resolve("/srv", "theme"))
}
