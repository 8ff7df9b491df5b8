package routes

import (
	"net/http"

	"quill/controllers"
	"quill/handlers"
	"quill/middleware"
	"quill/policy"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth  *controllers.AuthController
	Posts *controllers.PostController
	Pages *controllers.PageController
	API   *controllers.APIController
	Feed  *handlers.CommentFeedHandler
}

func SetupRoutes(r *gin.Engine, p policy.Policy, ctl Controllers, apiMiddleware ...gin.HandlerFunc) {
	with := middleware.WithIdentity

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", with(ctl.Posts.Index))
	r.GET("/about", with(ctl.Pages.About))
	r.GET("/contact", with(ctl.Pages.Contact))

	r.GET("/register", with(ctl.Auth.RegisterForm))
	r.POST("/register", with(ctl.Auth.Register))
	r.GET("/login", with(ctl.Auth.LoginForm))
	r.POST("/login", with(ctl.Auth.Login))
	r.GET("/logout", middleware.RequireSession(), with(ctl.Auth.Logout))

	r.GET("/post/:id", with(ctl.Posts.ShowPost))
	r.POST("/post/:id", with(ctl.Posts.SubmitComment))
	r.GET("/post/:id/ws", ctl.Feed.HandleWebSocket)

	r.GET("/new-post", middleware.Authorize(p, policy.CreatePost), with(ctl.Posts.NewPostForm))
	r.POST("/new-post", middleware.Authorize(p, policy.CreatePost), with(ctl.Posts.CreatePost))

	r.GET("/edit-post/:id", middleware.Authorize(p, policy.EditPost), with(ctl.Posts.EditPostForm))
	r.POST("/edit-post/:id", middleware.Authorize(p, policy.EditPost), with(ctl.Posts.UpdatePost))

	r.GET("/delete/:id", middleware.Authorize(p, policy.DeletePost), with(ctl.Posts.DeletePost))

	api := r.Group("/api/v1", apiMiddleware...)
	{
		api.GET("/posts", ctl.API.ListPosts)
		api.GET("/posts/:id", ctl.API.GetPost)
	}

	r.NoRoute(with(ctl.Pages.NotFound))
}
