package middleware

import (
	"context"
	"errors"
	"net/http"

	"quill/models"
	"quill/policy"
	"quill/services"
	"quill/utils"

	"github.com/gin-gonic/gin"
)

const ContextIdentityKey = "identity"

// IdentityResolver maps a session token to the acting identity.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, token string) models.Identity
}

// Identity resolves the session cookie once per request. Anonymous is a
// regular value, never a missing key.
func Identity(resolver IdentityResolver, cookies utils.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.SessionToken(c)
		identity := resolver.CurrentIdentity(c.Request.Context(), token)
		if identity.IsAnonymous() && token != "" {
			utils.ClearSessionCookie(c, cookies)
		}
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) models.Identity {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return models.Anonymous
	}
	identity, ok := value.(models.Identity)
	if !ok {
		return models.Anonymous
	}
	return identity
}

// IdentityHandlerFunc is a handler that receives the acting identity as an
// argument.
type IdentityHandlerFunc func(c *gin.Context, identity models.Identity)

func WithIdentity(fn IdentityHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		fn(c, CurrentIdentity(c))
	}
}

// RequireSession redirects anonymous visitors to the login page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).IsAnonymous() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Authorize enforces p for action. Forbidden is a bare 403; a missing
// login redirects to /login.
func Authorize(p policy.Policy, action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := p.Authorize(action, CurrentIdentity(c))
		if decision.Allowed {
			c.Next()
			return
		}
		if errors.Is(decision.Reason, services.ErrAuthenticationRequired) {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}
