package controllers

import (
	"errors"
	"net/http"

	"quill/models"
	"quill/services"

	"github.com/gin-gonic/gin"
)

// APIController serves the public read-only JSON API.
type APIController struct {
	postService    *services.PostService
	commentService *services.CommentService
}

func NewAPIController(postService *services.PostService, commentService *services.CommentService) *APIController {
	return &APIController{
		postService:    postService,
		commentService: commentService,
	}
}

type PostWithComments struct {
	models.PostView
	Comments []models.CommentView `json:"comments"`
}

// ListPosts godoc
// @Summary List posts
// @Description All posts in publication order, with author names
// @Tags posts
// @Produce json
// @Success 200 {object} map[string][]models.PostView
// @Failure 500 {object} map[string]string
// @Router /posts [get]
func (ac *APIController) ListPosts(c *gin.Context) {
	posts, err := ac.postService.ListPosts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	if posts == nil {
		posts = []models.PostView{}
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

// GetPost godoc
// @Summary Get a post
// @Description One post with its comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]PostWithComments
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (ac *APIController) GetPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	ctx := c.Request.Context()
	post, err := ac.postService.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	comments, err := ac.commentService.ListCommentsForPost(ctx, id)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.CommentView{}
	}

	c.JSON(http.StatusOK, gin.H{"data": PostWithComments{PostView: *post, Comments: comments}})
}
