package controllers

import (
	"errors"
	"net/http"

	"quill/models"
	"quill/services"
	"quill/utils"

	"github.com/gin-gonic/gin"
)

const (
	msgEmailTaken    = "You've already signed up with that email, log in instead!"
	msgUnknownEmail  = "The user email doesn't exist, please try again."
	msgWrongPassword = "The password is incorrect, please try again."
	msgInvalidForm   = "Please fill in every field with a valid value."
	msgLongPassword  = "Passwords are limited to 72 bytes."
)

type AuthController struct {
	authService *services.AuthService
	render      *Renderer
	cookies     utils.CookieOptions
}

func NewAuthController(authService *services.AuthService, render *Renderer, cookies utils.CookieOptions) *AuthController {
	return &AuthController{
		authService: authService,
		render:      render,
		cookies:     cookies,
	}
}

func (ac *AuthController) RegisterForm(c *gin.Context, identity models.Identity) {
	ac.render.HTML(c, http.StatusOK, "register.html", identity, gin.H{"Title": "Register"})
}

func (ac *AuthController) Register(c *gin.Context, identity models.Identity) {
	var req models.RegisterRequest
	if err := bindForm(c, &req); err != nil {
		ac.render.HTML(c, http.StatusBadRequest, "register.html", identity, gin.H{
			"Title":     "Register",
			"FormError": msgInvalidForm,
			"Email":     req.Email,
			"Name":      req.Name,
		})
		return
	}

	_, token, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			ac.render.Flash(c, msgEmailTaken)
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		if errors.Is(err, services.ErrPasswordTooLong) {
			ac.render.HTML(c, http.StatusBadRequest, "register.html", identity, gin.H{
				"Title":     "Register",
				"FormError": msgLongPassword,
				"Email":     req.Email,
				"Name":      req.Name,
			})
			return
		}
		ac.render.ServerError(c, identity, err)
		return
	}

	utils.SetSessionCookie(c, token, ac.cookies)
	c.Redirect(http.StatusSeeOther, "/")
}

func (ac *AuthController) LoginForm(c *gin.Context, identity models.Identity) {
	ac.render.HTML(c, http.StatusOK, "login.html", identity, gin.H{"Title": "Log in"})
}

func (ac *AuthController) Login(c *gin.Context, identity models.Identity) {
	var req models.LoginRequest
	if err := bindForm(c, &req); err != nil {
		ac.render.HTML(c, http.StatusBadRequest, "login.html", identity, gin.H{
			"Title":     "Log in",
			"FormError": msgInvalidForm,
			"Email":     req.Email,
		})
		return
	}

	_, token, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		var message string
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			message = msgUnknownEmail
		case errors.Is(err, services.ErrWrongPassword):
			message = msgWrongPassword
		default:
			ac.render.ServerError(c, identity, err)
			return
		}
		ac.render.HTML(c, http.StatusUnauthorized, "login.html", identity, gin.H{
			"Title": "Log in",
			"Flash": message,
			"Email": req.Email,
		})
		return
	}

	utils.SetSessionCookie(c, token, ac.cookies)
	c.Redirect(http.StatusSeeOther, "/")
}

func (ac *AuthController) Logout(c *gin.Context, identity models.Identity) {
	if err := ac.authService.Logout(c.Request.Context(), utils.SessionToken(c)); err != nil {
		ac.render.ServerError(c, identity, err)
		return
	}

	utils.ClearSessionCookie(c, ac.cookies)
	c.Redirect(http.StatusSeeOther, "/")
}
