package crud

import (
	"errors"
	"net/http"

	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/metrics"
	"github.com/yanizio/folio/internal/requestinfo"
)

// Form input names on the register and login pages.
const (
	fieldUsername  = "username"
	fieldPassword  = "password"
	fieldUserType  = "usertype"
	fieldCaptchaID = "captcha_id"
	fieldCaptcha   = "captcha"
)

func (c *Component) captchaOn() bool { return c.app.Config.Security.Captcha }

func (c *Component) registerPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	p := c.page(w, r, "Register")
	p.Error = msg
	if c.captchaOn() {
		p.CaptchaID = auth.NewCaptcha()
	}
	c.render(w, r, status, "register", p)
}

func (c *Component) registerForm(w http.ResponseWriter, r *http.Request) {
	c.registerPage(w, r, http.StatusOK, "")
}

// register creates the account, starts a session for it, and sends the
// browser to the login page.  Failures re-render the form.
func (c *Component) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if c.captchaOn() &&
		!auth.VerifyCaptcha(r.PostForm.Get(fieldCaptchaID), r.PostForm.Get(fieldCaptcha)) {
		c.registerPage(w, r, http.StatusUnprocessableEntity, "The digits did not match.  Please try again.")
		return
	}

	u, err := c.app.Auth.Register(r.Context(), auth.Registration{
		Username: r.PostForm.Get(fieldUsername),
		Password: r.PostForm.Get(fieldPassword),
		UserType: c.app.Sanitizer.Text(r.PostForm.Get(fieldUserType)),
	})
	if err != nil {
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			c.registerPage(w, r, http.StatusUnprocessableEntity, verr.Msg)
		case errors.Is(err, auth.ErrUsernameTaken):
			c.registerPage(w, r, http.StatusConflict, "That username is already taken.")
		default:
			logger.FromContext(r.Context()).Errorw("register failed", "err", err)
			c.registerPage(w, r, http.StatusInternalServerError, "Registration failed.  Please try again.")
		}
		return
	}

	id := auth.Identity{ID: u.ID, Username: u.Username, UserType: u.UserType}
	if err := c.app.Sessions.Login(w, r, id); err != nil {
		logger.FromContext(r.Context()).Errorw("session save failed", "err", err)
	}
	logger.FromContext(r.Context()).Infow("user registered", "username", u.Username)
	c.flash(w, r, "Welcome, "+u.Username+".")
	http.Redirect(w, r, c.e.Path("login"), http.StatusSeeOther)
}

func (c *Component) loginPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	p := c.page(w, r, "Login")
	p.Error = msg
	c.render(w, r, status, "login", p)
}

func (c *Component) loginForm(w http.ResponseWriter, r *http.Request) {
	c.loginPage(w, r, http.StatusOK, "")
}

// login checks credentials under the per-client limiter.  Success goes to
// the list; failure re-renders the form.
func (c *Component) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	log := logger.FromContext(ctx)
	key := requestinfo.ClientKey(ctx)

	if !c.app.Limiter.Allow(key) {
		metrics.Logins.WithLabelValues("blocked").Inc()
		log.Warnw("login blocked", "client", key)
		c.loginPage(w, r, http.StatusTooManyRequests, "Too many failed attempts.  Try again later.")
		return
	}

	username := r.PostForm.Get(fieldUsername)
	u, err := c.app.Auth.Authenticate(ctx, username, r.PostForm.Get(fieldPassword))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.app.Limiter.RecordFailure(key)
			metrics.Logins.WithLabelValues("failure").Inc()
			log.Infow("login failed", "username", username, "client", key)
			c.loginPage(w, r, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		metrics.Logins.WithLabelValues("error").Inc()
		log.Errorw("login lookup failed", "err", err)
		c.loginPage(w, r, http.StatusInternalServerError, "Login failed.  Please try again.")
		return
	}

	c.app.Limiter.Reset(key)
	id := auth.Identity{ID: u.ID, Username: u.Username, UserType: u.UserType}
	if err := c.app.Sessions.Login(w, r, id); err != nil {
		log.Errorw("session save failed", "err", err)
		c.loginPage(w, r, http.StatusInternalServerError, "Login failed.  Please try again.")
		return
	}
	metrics.Logins.WithLabelValues("success").Inc()

	fields := []any{"username", u.Username, "client", key}
	if info := requestinfo.FromContext(ctx); info != nil {
		fields = append(fields, "browser", info.Agent.Browser, "os", info.Agent.OS)
	}
	log.Infow("login", fields...)
	http.Redirect(w, r, c.e.Path(""), http.StatusSeeOther)
}

func (c *Component) logout(w http.ResponseWriter, r *http.Request) {
	if err := c.app.Sessions.Logout(w, r); err != nil {
		logger.FromContext(r.Context()).Warnw("session clear failed", "err", err)
	}
	c.flash(w, r, "You have been logged out.")
	http.Redirect(w, r, c.e.Path("login"), http.StatusSeeOther)
}
