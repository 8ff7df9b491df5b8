package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type trimmable interface {
	TrimSpace()
}

// bindForm binds req, strips surrounding whitespace and validates again so
// that blank input fails "required" like empty input does.
func bindForm(c *gin.Context, req trimmable) error {
	if err := c.ShouldBind(req); err != nil {
		return err
	}
	req.TrimSpace()
	return binding.Validator.ValidateStruct(req)
}
