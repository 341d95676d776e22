// internal/config/model.go
//
// Typed configuration model for folio.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/<app>.yaml`                       – primary static file,
//   • `FOLIO_`-prefixed environment overrides – highest precedence.
//
// Secret-bearing strings that begin with `vault:` are resolved through the
// Vault client after unmarshalling, so the rest of the app only ever sees
// plain values.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// App section
//

// App names the binary and picks the entity it serves.
type App struct {
	Name   string `koanf:"name"   validate:"required"`
	Entity string `koanf:"entity" validate:"required,oneof=blog book"`
}

//
// HTTP section
//

// HTTP holds web-server tunables.  TrustedProxies lists the addresses
// or CIDRs of reverse proxies whose forwarding headers are believed; with
// the list empty the client address is always the socket peer.
type HTTP struct {
	ListenAddr     string   `koanf:"listen_addr"     validate:"required,hostname_port"`
	ForceHTTPS     bool     `koanf:"force_https"`
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,cidr|ip"`
}

//
// Session section
//

// Session configures the cookie store.  Secret seeds both the signing and
// the encryption key.
type Session struct {
	Secret string        `koanf:"secret"  validate:"required,min=16"`
	MaxAge time.Duration `koanf:"max_age" validate:"gte=0"`
}

//
// Database section
//

// Database selects the backend.  URI is a Mongo connection string or a
// SQL DSN depending on Driver; Name is the Mongo database name.
type Database struct {
	Driver  string        `koanf:"driver"  validate:"required,oneof=mongo mysql postgres sqlite3"`
	URI     string        `koanf:"uri"     validate:"required"`
	Name    string        `koanf:"name"    validate:"required_if=Driver mongo"`
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
}

//
// Security section
//

// Security toggles request-forgery protection and the registration captcha.
// CSRFKey is optional; when empty a key is derived from Session.Secret.
type Security struct {
	CSRF    bool   `koanf:"csrf"`
	CSRFKey string `koanf:"csrf_key"`
	Captcha bool   `koanf:"captcha"`
}

//
// Log, GeoIP, and Theme sections
//

// Log controls the file logger.  Dir is relative to Paths.Root unless
// absolute.
type Log struct {
	Dir   string `koanf:"dir"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// GeoIP points at an optional GeoLite2-City database.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

// Theme points at an optional template override directory.
type Theme struct {
	Dir string `koanf:"dir"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // FOLIO_ROOT or discovered parent
	File string // config file actually read
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	App      App      `koanf:"app"`
	HTTP     HTTP     `koanf:"http"`
	Session  Session  `koanf:"session"`
	Database Database `koanf:"database"`
	Security Security `koanf:"security"`
	Log      Log      `koanf:"log"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Theme    Theme    `koanf:"theme"`
	Paths    Paths    `koanf:"-"`
}

// Defaults applied to zero values after unmarshal.
const (
	DefaultListenAddr = ":7000"
	DefaultMaxAge     = 7 * 24 * time.Hour
	DefaultTimeout    = 5 * time.Second
	DefaultLogDir     = "logs"
	DefaultLogLevel   = "info"
)

func (c *Config) applyDefaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = DefaultListenAddr
	}
	if c.Session.MaxAge == 0 {
		c.Session.MaxAge = DefaultMaxAge
	}
	if c.Database.Timeout == 0 {
		c.Database.Timeout = DefaultTimeout
	}
	if c.Log.Dir == "" {
		c.Log.Dir = DefaultLogDir
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
