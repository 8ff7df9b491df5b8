package controllers

import (
	"net/http"

	"quill/models"
	"quill/policy"
	"quill/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Renderer fills the data every page needs: the acting identity, whether
// it is the admin and the pending flash message.
type Renderer struct {
	policy  policy.Policy
	cookies utils.CookieOptions
	logger  *zap.Logger
}

func NewRenderer(p policy.Policy, cookies utils.CookieOptions, logger *zap.Logger) *Renderer {
	return &Renderer{policy: p, cookies: cookies, logger: logger}
}

// Flash queues message for the next page this client renders.
func (r *Renderer) Flash(c *gin.Context, message string) {
	utils.SetFlash(c, message, r.cookies)
}

func (r *Renderer) HTML(c *gin.Context, status int, name string, identity models.Identity, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Identity"] = identity
	data["IsAdmin"] = r.policy.IsAdmin(identity)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = utils.PopFlash(c, r.cookies)
	}
	c.HTML(status, name, data)
}

func (r *Renderer) NotFound(c *gin.Context, identity models.Identity) {
	r.HTML(c, http.StatusNotFound, "error.html", identity, gin.H{
		"Title":   "Not found",
		"Status":  http.StatusNotFound,
		"Message": "That page does not exist.",
	})
}

func (r *Renderer) ServerError(c *gin.Context, identity models.Identity, err error) {
	r.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	r.HTML(c, http.StatusInternalServerError, "error.html", identity, gin.H{
		"Title":   "Error",
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong.",
	})
}
