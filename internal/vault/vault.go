// internal/vault/vault.go
//
// Secret lookups for config values of the form `vault:<mount>/<path>#<key>`.
//
// Context
// -------
// The config loader is the only caller.  It builds one Client per load,
// resolves every reference, and drops the Client.  A Client therefore
// reads each KV-v2 secret at most once and keeps the data for its own
// lifetime, so `session.secret` and `security.csrf_key` stored in the same
// secret cost one round trip.  There is no token renewal: nothing holds a
// Client past start-up or a reload.
//
// Environment
// -----------
//   - VAULT_ADDR, VAULT_TOKEN, and the other variables the SDK's
//     ReadEnvironment understands.
package vault

import (
	"context"
	"fmt"
	"strings"
	"sync"

	vault "github.com/hashicorp/vault/api"
)

// Ref addresses one key inside a KV-v2 secret.
type Ref struct {
	Mount string // "kv", "secret"
	Path  string // path below the mount
	Key   string
}

func (r Ref) String() string { return r.Mount + "/" + r.Path + "#" + r.Key }

// ParseRef splits "<mount>/<path>#<key>".
func ParseRef(s string) (Ref, error) {
	i := strings.LastIndexByte(s, '#')
	if i <= 0 || i == len(s)-1 {
		return Ref{}, fmt.Errorf("vault: malformed reference %q", s)
	}
	mount, path, ok := strings.Cut(s[:i], "/")
	if !ok || mount == "" || path == "" {
		return Ref{}, fmt.Errorf("vault: reference %q has no mount", s)
	}
	return Ref{Mount: mount, Path: path, Key: s[i+1:]}, nil
}

// reader fetches the data map of one KV-v2 secret.
type reader func(ctx context.Context, mount, path string) (map[string]any, error)

// Client resolves references.  Safe for concurrent use.
type Client struct {
	read reader

	mu      sync.Mutex
	secrets map[string]map[string]any // mount/path → data
}

// New builds a Client from the VAULT_* environment.
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault: read environment: %w", err)
	}
	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault: client: %w", err)
	}
	return newClient(func(ctx context.Context, mount, path string) (map[string]any, error) {
		sec, err := api.KVv2(mount).Get(ctx, path)
		if err != nil {
			return nil, err
		}
		return sec.Data, nil
	}), nil
}

func newClient(read reader) *Client {
	return &Client{read: read, secrets: make(map[string]map[string]any)}
}

// Resolve returns the string stored at ref ("<mount>/<path>#<key>").
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return "", err
	}
	data, err := c.secret(ctx, r.Mount, r.Path)
	if err != nil {
		return "", err
	}
	raw, ok := data[r.Key]
	if !ok {
		return "", fmt.Errorf("vault: key %q not in %s/%s", r.Key, r.Mount, r.Path)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault: %s is not a string", r)
	}
	return val, nil
}

func (c *Client) secret(ctx context.Context, mount, path string) (map[string]any, error) {
	id := mount + "/" + path

	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.secrets[id]; ok {
		return data, nil
	}
	data, err := c.read(ctx, mount, path)
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", id, err)
	}
	c.secrets[id] = data
	return data, nil
}
