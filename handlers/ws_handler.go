package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"quill/models"
	"quill/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// PostLookup reports whether a post exists.
type PostLookup interface {
	GetPost(ctx context.Context, id uint) (*models.PostView, error)
}

// CommentFeedHandler streams new comments on a post to its viewers.
type CommentFeedHandler struct {
	hubService *services.HubService
	posts      PostLookup
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

func NewCommentFeedHandler(hubService *services.HubService, posts PostLookup, logger *zap.Logger) *CommentFeedHandler {
	return &CommentFeedHandler{
		hubService: hubService,
		posts:      posts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

func (h *CommentFeedHandler) HandleWebSocket(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if _, err := h.posts.GetPost(c.Request.Context(), uint(postID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.logger.Error("load post for comment feed", zap.Uint64("post_id", postID), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	hub := h.hubService.GetHub()
	client := models.NewClient(hub, conn, uint(postID))

	select {
	case hub.Register <- client:
	case <-hub.Done:
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

// readPump only drains control frames; viewers cannot post through the feed.
func (h *CommentFeedHandler) readPump(client *models.Client) {
	defer func() {
		select {
		case client.Hub.Unregister <- client:
		case <-client.Hub.Done:
		}
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("unexpected websocket close", zap.String("client_id", client.ID), zap.Error(err))
			}
			return
		}
	}
}

func (h *CommentFeedHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Debug("websocket write failed", zap.String("client_id", client.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
