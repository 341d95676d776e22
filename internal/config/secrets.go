// internal/config/secrets.go
//
// Vault indirection for secret-bearing keys.
//
// A value of the form `vault:<mount>/<path>#<key>` is replaced with the
// string stored under <key> in that KV-v2 secret.  The Vault client is only
// constructed when at least one such value is present, so local setups
// never need VAULT_ADDR.

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanizio/folio/internal/vault"
)

const vaultPrefix = "vault:"

type secretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// newResolver is swapped in tests.
var newResolver = func(context.Context) (secretResolver, error) {
	return vault.New()
}

// resolveSecrets rewrites every vault: reference in place.
func resolveSecrets(ctx context.Context, c *Config) error {
	fields := []*string{
		&c.Session.Secret,
		&c.Database.URI,
		&c.Security.CSRFKey,
	}

	var r secretResolver
	for _, f := range fields {
		if !strings.HasPrefix(*f, vaultPrefix) {
			continue
		}
		if r == nil {
			var err error
			if r, err = newResolver(ctx); err != nil {
				return fmt.Errorf("config: vault client: %w", err)
			}
		}
		val, err := r.Resolve(ctx, strings.TrimPrefix(*f, vaultPrefix))
		if err != nil {
			return fmt.Errorf("config: resolve secret: %w", err)
		}
		*f = val
	}
	return nil
}
