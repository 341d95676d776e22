package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Hasher derives argon2id keys.  Zero fields take the defaults: one pass,
// 64 MiB, four threads, 32-byte key, 16-byte salt.
type Hasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultHasher is used by production wiring.
var DefaultHasher = Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}

func (h Hasher) withDefaults() Hasher {
	d := DefaultHasher
	if h.Time != 0 {
		d.Time = h.Time
	}
	if h.Memory != 0 {
		d.Memory = h.Memory
	}
	if h.Threads != 0 {
		d.Threads = h.Threads
	}
	if h.KeyLen != 0 {
		d.KeyLen = h.KeyLen
	}
	if h.SaltLen != 0 {
		d.SaltLen = h.SaltLen
	}
	return d
}

// Hash returns the base64 key and base64 salt for password.
func (h Hasher) Hash(password string) (hash, salt string, err error) {
	h = h.withDefaults()
	raw := make([]byte, h.SaltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("auth: salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), raw, h.Time, h.Memory, h.Threads, h.KeyLen)
	return base64.StdEncoding.EncodeToString(key), base64.StdEncoding.EncodeToString(raw), nil
}

// Verify reports whether password matches the stored hash and salt.  The
// comparison runs in constant time.
func (h Hasher) Verify(password, hash, salt string) bool {
	h = h.withDefaults()
	want, err := base64.StdEncoding.DecodeString(hash)
	if err != nil || len(want) == 0 {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), raw, h.Time, h.Memory, h.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
