// internal/session/session.go
//
// Cookie-backed sessions and flash messages.
//
// Context
//   Authentication persists the logged-in user between requests in a
//   gorilla/sessions CookieStore.  The cookie is signed with an HMAC key and
//   encrypted with an AES key, both derived from the configured secret, so
//   the payload can neither be read nor forged client-side.
//
//   Values stored: user id, username, and usertype.  Flash messages ride in
//   the same cookie and are consumed on the next render.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/yanizio/folio/internal/auth"
)

// Cookie and value keys.
const (
	CookieName  = "folio_session"
	keyUserID   = "uid"
	keyUsername = "username"
	keyUserType = "usertype"
)

// Manager wraps the cookie store.
type Manager struct {
	store *sessions.CookieStore
}

// New derives the signing and encryption keys from secret.  secure marks
// the cookie HTTPS-only.
func New(secret string, maxAge time.Duration, secure bool) *Manager {
	authKey := sha256.Sum256([]byte(secret + "auth"))
	encKey := sha256.Sum256([]byte(secret + "encryption"))

	st := sessions.NewCookieStore(authKey[:], encKey[:])
	st.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	st.MaxAge(st.Options.MaxAge)
	return &Manager{store: st}
}

// get never fails hard.  A cookie that no longer decodes (rotated secret,
// tampering) yields a fresh empty session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, CookieName)
	if err != nil {
		s, _ = m.store.New(r, CookieName)
	}
	return s
}

// Login stores id in the session.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	s := m.get(r)
	s.Values[keyUserID] = id.ID
	s.Values[keyUsername] = id.Username
	s.Values[keyUserType] = id.UserType
	return s.Save(r, w)
}

// Logout drops the identity but keeps the cookie so a flash can follow.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, keyUserID)
	delete(s.Values, keyUsername)
	delete(s.Values, keyUserType)
	return s.Save(r, w)
}

// Current returns the identity stored in the session, if any.
func (m *Manager) Current(r *http.Request) (*auth.Identity, bool) {
	s := m.get(r)
	uid, _ := s.Values[keyUserID].(string)
	if uid == "" {
		return nil, false
	}
	name, _ := s.Values[keyUsername].(string)
	typ, _ := s.Values[keyUserType].(string)
	return &auth.Identity{ID: uid, Username: name, UserType: typ}, true
}

// AddFlash queues msg for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	s := m.get(r)
	s.AddFlash(msg)
	return s.Save(r, w)
}

// Flashes pops every queued message.  It writes the cookie, so call it
// before the response body.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w)
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// Load is middleware that attaches the session identity to the request
// context for guards and templates.
func (m *Manager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := m.Current(r); ok {
			r = r.WithContext(auth.WithUser(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
