package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"quill/models"
	"quill/policy"
	"quill/services"

	"github.com/gin-gonic/gin"
)

const (
	msgLoginToComment = "Log in required for submitting a comment."
	msgEmptyComment   = "A comment cannot be empty."
	msgTitleTaken     = "A post with that title already exists."
)

// CommentNotifier is told about every stored comment.
type CommentNotifier interface {
	BroadcastToPost(postID uint, messageType string, data interface{})
}

type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	notifier       CommentNotifier
	policy         policy.Policy
	render         *Renderer
}

func NewPostController(postService *services.PostService, commentService *services.CommentService, notifier CommentNotifier, p policy.Policy, render *Renderer) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
		notifier:       notifier,
		policy:         p,
		render:         render,
	}
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (pc *PostController) Index(c *gin.Context, identity models.Identity) {
	posts, err := pc.postService.ListPosts(c.Request.Context())
	if err != nil {
		pc.render.ServerError(c, identity, err)
		return
	}

	pc.render.HTML(c, http.StatusOK, "index.html", identity, gin.H{"Posts": posts})
}

func (pc *PostController) ShowPost(c *gin.Context, identity models.Identity) {
	pc.showPost(c, identity, http.StatusOK, "")
}

func (pc *PostController) showPost(c *gin.Context, identity models.Identity, status int, formError string) {
	id, ok := parsePostID(c)
	if !ok {
		pc.render.NotFound(c, identity)
		return
	}

	ctx := c.Request.Context()
	post, err := pc.postService.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			pc.render.NotFound(c, identity)
			return
		}
		pc.render.ServerError(c, identity, err)
		return
	}

	comments, err := pc.commentService.ListCommentsForPost(ctx, id)
	if err != nil {
		pc.render.ServerError(c, identity, err)
		return
	}

	pc.render.HTML(c, status, "post.html", identity, gin.H{
		"Title":     post.Title,
		"Post":      post,
		"Comments":  comments,
		"FormError": formError,
	})
}

// SubmitComment stores a comment from the acting user. Anonymous
// submissions are sent to the login page and their text is discarded.
func (pc *PostController) SubmitComment(c *gin.Context, identity models.Identity) {
	id, ok := parsePostID(c)
	if !ok {
		pc.render.NotFound(c, identity)
		return
	}

	if decision := pc.policy.Authorize(policy.CreateComment, identity); !decision.Allowed {
		pc.render.Flash(c, msgLoginToComment)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var req models.CommentRequest
	if err := bindForm(c, &req); err != nil {
		pc.showPost(c, identity, http.StatusBadRequest, msgEmptyComment)
		return
	}

	comment, err := pc.commentService.CreateComment(c.Request.Context(), id, identity.UserID(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrForeignKeyViolation) {
			pc.render.NotFound(c, identity)
			return
		}
		pc.render.ServerError(c, identity, err)
		return
	}

	pc.notifier.BroadcastToPost(id, "comment_created", comment)
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func (pc *PostController) NewPostForm(c *gin.Context, identity models.Identity) {
	pc.renderPostForm(c, identity, http.StatusOK, models.PostRequest{}, false, "")
}

func (pc *PostController) CreatePost(c *gin.Context, identity models.Identity) {
	var req models.PostRequest
	if err := bindForm(c, &req); err != nil {
		pc.renderPostForm(c, identity, http.StatusBadRequest, req, false, msgInvalidForm)
		return
	}

	if _, err := pc.postService.CreatePost(c.Request.Context(), identity.UserID(), &req); err != nil {
		if errors.Is(err, services.ErrDuplicateTitle) {
			pc.renderPostForm(c, identity, http.StatusConflict, req, false, msgTitleTaken)
			return
		}
		pc.render.ServerError(c, identity, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// EditPostForm pre-fills the form with the stored post.
func (pc *PostController) EditPostForm(c *gin.Context, identity models.Identity) {
	id, ok := parsePostID(c)
	if !ok {
		pc.render.NotFound(c, identity)
		return
	}

	post, err := pc.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			pc.render.NotFound(c, identity)
			return
		}
		pc.render.ServerError(c, identity, err)
		return
	}

	form := models.PostRequest{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	pc.renderPostForm(c, identity, http.StatusOK, form, true, "")
}

func (pc *PostController) UpdatePost(c *gin.Context, identity models.Identity) {
	id, ok := parsePostID(c)
	if !ok {
		pc.render.NotFound(c, identity)
		return
	}

	var req models.PostRequest
	if err := bindForm(c, &req); err != nil {
		pc.renderPostForm(c, identity, http.StatusBadRequest, req, true, msgInvalidForm)
		return
	}

	update := req.AsUpdate()
	if _, err := pc.postService.UpdatePost(c.Request.Context(), id, &update); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			pc.render.NotFound(c, identity)
		case errors.Is(err, services.ErrDuplicateTitle):
			pc.renderPostForm(c, identity, http.StatusConflict, req, true, msgTitleTaken)
		default:
			pc.render.ServerError(c, identity, err)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func (pc *PostController) DeletePost(c *gin.Context, identity models.Identity) {
	id, ok := parsePostID(c)
	if !ok {
		pc.render.NotFound(c, identity)
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			pc.render.NotFound(c, identity)
			return
		}
		pc.render.ServerError(c, identity, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (pc *PostController) renderPostForm(c *gin.Context, identity models.Identity, status int, form models.PostRequest, isEdit bool, formError string) {
	title := "New post"
	if isEdit {
		title = "Edit post"
	}
	pc.render.HTML(c, status, "make-post.html", identity, gin.H{
		"Title":     title,
		"Form":      form,
		"IsEdit":    isEdit,
		"FormError": formError,
	})
}
