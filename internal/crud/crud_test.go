// internal/crud/crud_test.go
//
// End-to-end tests through the full router against SQLite in memory.
// Redirects are not followed so each step can assert its Location.
//
// Run: go test ./internal/crud -v

package crud_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yanizio/folio/internal/app"
	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/server"
	"github.com/yanizio/folio/internal/store"
)

type harness struct {
	t   *testing.T
	srv *httptest.Server
	st  store.Store
	e   record.Entity
}

// newHarness serves e from a fresh in-memory store.  opts adjust the
// config before the app is assembled.
func newHarness(t *testing.T, e record.Entity, opts ...func(*config.Config)) *harness {
	t.Helper()
	ctx := context.Background()
	cfg := &config.Config{
		App:      config.App{Name: "test", Entity: e.Key},
		HTTP:     config.HTTP{ListenAddr: ":0"},
		Session:  config.Session{Secret: "0123456789abcdef0123456789", MaxAge: time.Hour},
		Database: config.Database{Driver: "sqlite3", URI: ":memory:", Timeout: 5 * time.Second},
	}
	for _, o := range opts {
		o(cfg)
	}

	st, err := app.OpenStore(ctx, cfg.Database, e, "")
	require.NoError(t, err)
	a, err := app.Assemble(cfg, zaptest.NewLogger(t).Sugar(), e, st)
	require.NoError(t, err)
	a.Auth = auth.NewService(st.Users(), auth.Hasher{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8})

	reg, err := server.Components(a)
	require.NoError(t, err)
	srv := httptest.NewServer(server.Router(a, reg))
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close(ctx)
	})
	return &harness{t: t, srv: srv, st: st, e: e}
}

// client returns a cookie-keeping client that does not follow redirects.
func (h *harness) client() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(h.t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (h *harness) get(c *http.Client, path string) (*http.Response, string) {
	h.t.Helper()
	res, err := c.Get(h.srv.URL + path)
	require.NoError(h.t, err)
	return res, readBody(h.t, res)
}

func (h *harness) post(c *http.Client, path string, form url.Values) (*http.Response, string) {
	h.t.Helper()
	res, err := c.PostForm(h.srv.URL+path, form)
	require.NoError(h.t, err)
	return res, readBody(h.t, res)
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func (h *harness) seed(rec *record.Record) string {
	h.t.Helper()
	require.NoError(h.t, h.st.Records().Create(context.Background(), rec))
	return rec.ID
}

// loggedIn registers and logs in a fresh user.
func (h *harness) loggedIn() *http.Client {
	h.t.Helper()
	c := h.client()
	creds := url.Values{"username": {"ann"}, "password": {"s3cret"}}
	res, _ := h.post(c, h.e.Path("register"), creds)
	require.Equal(h.t, http.StatusSeeOther, res.StatusCode)

	res, _ = h.post(c, h.e.Path("login"), creds)
	require.Equal(h.t, http.StatusSeeOther, res.StatusCode)
	require.Equal(h.t, h.e.Path(""), res.Header.Get("Location"))
	return c
}

func TestRootRedirectsToList(t *testing.T) {
	h := newHarness(t, record.Blog)
	res, _ := h.get(h.client(), "/")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/blogs", res.Header.Get("Location"))
}

func TestCreateAppearsInListSanitized(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.client()

	res, _ := h.post(c, "/blogs", url.Values{
		"blog[title]": {"Hello <b>world</b>"},
		"blog[body]":  {`<p>hi</p><script>alert(1)</script><a href="javascript:x()">x</a>`},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/blogs", res.Header.Get("Location"))

	res, body := h.get(c, "/blogs")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Hello world")

	recs, err := h.st.Records().All(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Hello world", recs[0].Title)
	assert.Contains(t, recs[0].Body, "<p>hi</p>")
	assert.NotContains(t, recs[0].Body, "<script")
	assert.NotContains(t, recs[0].Body, "javascript:")
}

func TestUpdateChangesOnlySubmittedFields(t *testing.T) {
	h := newHarness(t, record.Blog)
	id := h.seed(&record.Record{Title: "T", Author: "A", Genre: "G", Body: "old"})

	res, _ := h.post(h.client(), "/blogs/"+id, url.Values{
		"_method":    {"PUT"},
		"blog[body]": {"<b>new</b><script>steal()</script>"},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/blogs/"+id, res.Header.Get("Location"))

	got, err := h.st.Records().Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "A", got.Author)
	assert.Equal(t, "G", got.Genre)
	assert.Equal(t, "<b>new</b>", got.Body)
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	h := newHarness(t, record.Book)
	id := h.seed(&record.Record{Title: "Dune"})
	c := h.client()

	for _, suffix := range []string{"/edit", "/deactivate", "/activate", "/request"} {
		res, _ := h.get(c, "/books/"+id+suffix)
		assert.Equal(t, http.StatusSeeOther, res.StatusCode, suffix)
		assert.Equal(t, "/books/login", res.Header.Get("Location"), suffix)
	}

	res, _ := h.post(c, "/books/"+id, url.Values{"_method": {"DELETE"}})
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/books/login", res.Header.Get("Location"))

	got, err := h.st.Records().Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
}

func TestRegisterThenLogin(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.loggedIn()

	id := h.seed(&record.Record{Title: "Mine"})
	res, body := h.get(c, "/blogs/"+id+"/edit")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Signed in as ann")

	res, _ = h.get(c, "/blogs/logout")
	assert.Equal(t, "/blogs/login", res.Header.Get("Location"))
	res, _ = h.get(c, "/blogs/"+id+"/edit")
	assert.Equal(t, "/blogs/login", res.Header.Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t, record.Blog)
	h.loggedIn()

	res, body := h.post(h.client(), "/blogs/login", url.Values{
		"username": {"ann"}, "password": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "Invalid username or password.")
	assert.Contains(t, body, `name="password"`)
}

func TestLoginThrottled(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.client()
	bad := url.Values{"username": {"nobody"}, "password": {"x"}}

	for i := 0; i < 5; i++ {
		res, _ := h.post(c, "/blogs/login", bad)
		require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	}
	res, _ := h.post(c, "/blogs/login", bad)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
}

func TestLoginThrottleIgnoresSpoofedForwardedFor(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.client()
	bad := url.Values{"username": {"nobody"}, "password": {"x"}}

	attempt := func(n int) int {
		req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/blogs/login", strings.NewReader(bad.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", n))
		req.Header.Set("X-Real-Ip", fmt.Sprintf("10.0.1.%d", n))
		res, err := c.Do(req)
		require.NoError(t, err)
		readBody(t, res)
		return res.StatusCode
	}

	for i := 1; i <= 5; i++ {
		require.Equal(t, http.StatusUnauthorized, attempt(i))
	}
	assert.Equal(t, http.StatusTooManyRequests, attempt(6))
}

func TestLoginThrottlePerClientBehindTrustedProxy(t *testing.T) {
	h := newHarness(t, record.Blog, func(cfg *config.Config) {
		cfg.HTTP.TrustedProxies = []string{"127.0.0.1", "::1"}
	})
	c := h.client()
	bad := url.Values{"username": {"nobody"}, "password": {"x"}}

	attempt := func(client string) int {
		req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/blogs/login", strings.NewReader(bad.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", client)
		res, err := c.Do(req)
		require.NoError(t, err)
		readBody(t, res)
		return res.StatusCode
	}

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusUnauthorized, attempt("203.0.113.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, attempt("203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, attempt("203.0.113.2"))
}

func TestRegisterFailuresRerenderForm(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.client()

	res, body := h.post(c, "/blogs/register", url.Values{"username": {"ann"}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "Password is required.")

	creds := url.Values{"username": {"ann"}, "password": {"pw"}}
	res, _ = h.post(c, "/blogs/register", creds)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	res, body = h.post(h.client(), "/blogs/register", creds)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "already taken")
}

func TestDeleteRemovesRecord(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.loggedIn()
	keep := h.seed(&record.Record{Title: "Keep"})
	gone := h.seed(&record.Record{Title: "Gone"})

	res, _ := h.post(c, "/blogs/"+gone, url.Values{"_method": {"DELETE"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/blogs", res.Header.Get("Location"))

	_, body := h.get(c, "/blogs")
	assert.Contains(t, body, "Keep")
	assert.NotContains(t, body, ">Gone<")
	assert.Contains(t, body, "Blog deleted.")

	_, err := h.st.Records().Get(context.Background(), gone)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = h.st.Records().Get(context.Background(), keep)
	assert.NoError(t, err)
}

func TestShowMissingRedirectsWithFlash(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.client()

	res, _ := h.get(c, "/blogs/does-not-exist")
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/blogs", res.Header.Get("Location"))

	_, body := h.get(c, "/blogs")
	assert.Contains(t, body, "Blog not found.")

	// Consumed once.
	_, body = h.get(c, "/blogs")
	assert.NotContains(t, body, "Blog not found.")
}

func TestStatusChangeGoesThroughUpdate(t *testing.T) {
	h := newHarness(t, record.Book)
	c := h.loggedIn()
	id := h.seed(&record.Record{Title: "Dune", Status: record.StatusActivated})

	res, body := h.get(c, "/books/"+id+"/deactivate")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `name="book[status]" value="deactivated"`)

	got, err := h.st.Records().Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, record.StatusActivated, got.Status)

	res, _ = h.post(c, "/books/"+id, url.Values{"_method": {"PUT"}, "book[status]": {"deactivated"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	_, body = h.get(c, "/books/deactivatedbooks")
	assert.Contains(t, body, "Dune")
	_, body = h.get(c, "/books/allbooks")
	assert.Contains(t, body, "Dune")
}

func TestWishlist(t *testing.T) {
	h := newHarness(t, record.Book)
	c := h.client()

	res, _ := h.post(c, "/books/list", url.Values{
		"entry[title]":  {"Emma"},
		"entry[author]": {"Austen"},
		"entry[name]":   {"<i>bob</i>"},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/books/list", res.Header.Get("Location"))

	res, body := h.get(c, "/books/list")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Emma")
	assert.Contains(t, body, "<td>bob</td>")
}

func TestBlogHasNoLibraryRoutes(t *testing.T) {
	h := newHarness(t, record.Blog)
	c := h.client()
	for _, p := range []string{"/blogs/list", "/api-docs.json"} {
		res, _ := h.get(c, p)
		// /blogs/list falls through to the show route and misses.
		assert.NotEqual(t, http.StatusOK, res.StatusCode, p)
	}
}

func TestAPIDocs(t *testing.T) {
	h := newHarness(t, record.Book)
	c := h.client()

	res, body := h.get(c, "/api-docs.json")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Contains(t, body, `"openapi": "3.0.3"`)
	assert.Contains(t, body, `"/books/{id}/request"`)
	assert.Contains(t, body, `"x-requires-login": true`)

	res, body = h.get(c, "/api-docs")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.Contains(body, "/books/allbooks"))
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, record.Book)
	res, body := h.get(h.client(), "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok\n", body)
}

var csrfField = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// token loads a form page and returns the csrf token it renders.
func (h *harness) token(c *http.Client, path string) string {
	h.t.Helper()
	res, body := h.get(c, path)
	require.Equal(h.t, http.StatusOK, res.StatusCode, path)
	m := csrfField.FindStringSubmatch(body)
	require.Len(h.t, m, 2, "no csrf_token on %s", path)
	return m[1]
}

func TestCSRFFormsRoundTripOverPlainHTTP(t *testing.T) {
	h := newHarness(t, record.Blog, func(cfg *config.Config) {
		cfg.Security.CSRF = true
	})
	c := h.client()
	id := h.seed(&record.Record{Title: "Before"})
	creds := url.Values{"username": {"ann"}, "password": {"s3cret"}}

	res, _ := h.post(c, "/blogs/register", creds)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	creds.Set("csrf_token", h.token(c, "/blogs/register"))
	res, _ = h.post(c, "/blogs/register", creds)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	creds.Set("csrf_token", h.token(c, "/blogs/login"))
	res, _ = h.post(c, "/blogs/login", creds)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	tok := h.token(c, "/blogs/"+id+"/edit")
	res, _ = h.post(c, "/blogs/"+id, url.Values{
		"_method":     {"PUT"},
		"blog[title]": {"After"},
		"csrf_token":  {tok},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/blogs/"+id, res.Header.Get("Location"))

	res, _ = h.post(c, "/blogs/"+id, url.Values{
		"_method":     {"PUT"},
		"blog[title]": {"Forged"},
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	got, err := h.st.Records().Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
}
