// internal/config/loader_test.go
//
// Unit-tests for the layered loader: YAML, env overlay, defaults, Vault
// references, and validation failures.
//
// Run: go test ./internal/config -v

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: blog
  entity: blog
session:
  secret: "0123456789abcdef0123"
database:
  driver: mongo
  uri: mongodb://localhost:27017
  name: folio
`

// writeConf points the loader at a temp file holding body.
func writeConf(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "blog.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	t.Setenv("FOLIO_ROOT", dir)
	t.Setenv("FOLIO_CONFIG", p)
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	p := writeConf(t, baseYAML)

	cfg, err := Load(context.Background(), "blog")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.ListenAddr)
	assert.Equal(t, DefaultMaxAge, cfg.Session.MaxAge)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, p, cfg.Paths.File)
	assert.Same(t, cfg, Get())
}

func TestLoadEnvOverrides(t *testing.T) {
	writeConf(t, baseYAML)
	t.Setenv("FOLIO_HTTP__LISTEN_ADDR", ":9090")
	t.Setenv("FOLIO_DATABASE__TIMEOUT", "2s")
	t.Setenv("FOLIO_SECURITY__CSRF", "true")

	cfg, err := Load(context.Background(), "blog")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.Database.Timeout)
	assert.True(t, cfg.Security.CSRF)
}

func TestLoadRejectsInvalid(t *testing.T) {
	writeConf(t, `
app:
  name: blog
  entity: movie
session:
  secret: short
database:
  driver: mongo
  uri: mongodb://localhost
`)

	_, err := Load(context.Background(), "blog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "App.Entity")
	assert.Contains(t, err.Error(), "Session.Secret")
	assert.Contains(t, err.Error(), "Database.Name")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("FOLIO_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load(context.Background(), "blog")
	assert.Error(t, err)
}

type fakeResolver map[string]string

func (f fakeResolver) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := f[ref]
	if !ok {
		return "", errors.New("missing")
	}
	return v, nil
}

func TestLoadResolvesVaultReferences(t *testing.T) {
	writeConf(t, baseYAML)
	t.Setenv("FOLIO_SESSION__SECRET", "vault:kv/folio#session")

	calls := 0
	orig := newResolver
	newResolver = func(context.Context) (secretResolver, error) {
		calls++
		return fakeResolver{"kv/folio#session": "resolved-secret-value-123"}, nil
	}
	t.Cleanup(func() { newResolver = orig })

	cfg, err := Load(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, "resolved-secret-value-123", cfg.Session.Secret)
	assert.Equal(t, 1, calls)
}

func TestLoadSkipsVaultWithoutReferences(t *testing.T) {
	writeConf(t, baseYAML)

	orig := newResolver
	newResolver = func(context.Context) (secretResolver, error) {
		t.Fatal("vault client constructed without vault: values")
		return nil, nil
	}
	t.Cleanup(func() { newResolver = orig })

	_, err := Load(context.Background(), "blog")
	require.NoError(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "session.max_age", envKey("FOLIO_SESSION__MAX_AGE"))
	assert.Equal(t, "http.listen_addr", envKey("FOLIO_HTTP__LISTEN_ADDR"))
}

func TestShippedConfigs(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	t.Setenv("FOLIO_ROOT", root)
	t.Setenv("FOLIO_CONFIG", "")

	blog, err := Load(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, "RESTfulBlogApp", blog.Database.Name)
	assert.Equal(t, "blog", blog.App.Entity)
	assert.True(t, blog.Security.CSRF)
	assert.Empty(t, blog.HTTP.TrustedProxies)

	lib, err := Load(context.Background(), "library")
	require.NoError(t, err)
	assert.Equal(t, "book", lib.App.Entity)
	assert.Equal(t, ":7001", lib.HTTP.ListenAddr)
	assert.Empty(t, lib.HTTP.TrustedProxies)
}

func TestTrustedProxiesValidated(t *testing.T) {
	writeConf(t, baseYAML+`
http:
  trusted_proxies: ["10.0.0.0/8", "127.0.0.1"]
`)
	cfg, err := Load(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.HTTP.TrustedProxies)

	writeConf(t, baseYAML+`
http:
  trusted_proxies: ["proxy.local"]
`)
	_, err = Load(context.Background(), "blog")
	assert.Error(t, err)
}
