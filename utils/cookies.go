package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "quill_session"
	FlashCookieName   = "quill_flash"
)

type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

func SetSessionCookie(c *gin.Context, token string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
}

func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", opts.Secure, true)
}

func SessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

// SetFlash queues a message for the next rendered page.
func SetFlash(c *gin.Context, message string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, message, 60, "/", "", opts.Secure, true)
}

// PopFlash returns the queued message, if any, and clears it.
func PopFlash(c *gin.Context, opts CookieOptions) string {
	message, err := c.Cookie(FlashCookieName)
	if err != nil || message == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, "", -1, "/", "", opts.Secure, true)
	return message
}
