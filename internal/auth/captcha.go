package auth

import (
	"net/http"

	"github.com/dchest/captcha"
)

// CaptchaLength is the number of digits shown on the register form.
const CaptchaLength = 6

// NewCaptcha allocates a challenge id for a form render.
func NewCaptcha() string { return captcha.NewLen(CaptchaLength) }

// VerifyCaptcha checks the submitted digits.  Each id verifies at most once.
func VerifyCaptcha(id, digits string) bool {
	if id == "" || digits == "" {
		return false
	}
	return captcha.VerifyString(id, digits)
}

// CaptchaHandler serves /captcha/<id>.png images.
func CaptchaHandler() http.Handler {
	return captcha.Server(captcha.StdWidth, captcha.StdHeight)
}
