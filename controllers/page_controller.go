package controllers

import (
	"net/http"

	"quill/models"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	render *Renderer
}

func NewPageController(render *Renderer) *PageController {
	return &PageController{render: render}
}

func (pc *PageController) About(c *gin.Context, identity models.Identity) {
	pc.render.HTML(c, http.StatusOK, "about.html", identity, gin.H{"Title": "About"})
}

func (pc *PageController) Contact(c *gin.Context, identity models.Identity) {
	pc.render.HTML(c, http.StatusOK, "contact.html", identity, gin.H{"Title": "Contact"})
}

func (pc *PageController) NotFound(c *gin.Context, identity models.Identity) {
	pc.render.NotFound(c, identity)
}
