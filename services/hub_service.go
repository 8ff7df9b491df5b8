package services

import (
	"context"
	"encoding/json"

	"quill/models"

	"go.uber.org/zap"
)

type HubService struct {
	hub    *models.Hub
	logger *zap.Logger
}

func NewHubService(logger *zap.Logger) *HubService {
	return &HubService{hub: models.NewHub(), logger: logger}
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

// Run owns the hub state until ctx is done, then disconnects every client.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.hub.Done)
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case message := <-h.hub.Broadcast:
			h.broadcastToRoom(message)

		case <-ctx.Done():
			for client := range h.hub.Clients {
				h.unregisterClient(client)
			}
			return
		}
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	if h.hub.Rooms[client.PostID] == nil {
		h.hub.Rooms[client.PostID] = make(map[*models.Client]bool)
	}
	h.hub.Rooms[client.PostID][client] = true
	h.logger.Debug("viewer joined", zap.String("client_id", client.ID), zap.Uint("post_id", client.PostID))
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	delete(h.hub.Clients, client)
	close(client.Send)

	if room, exists := h.hub.Rooms[client.PostID]; exists {
		delete(room, client)
		if len(room) == 0 {
			delete(h.hub.Rooms, client.PostID)
		}
	}
	h.logger.Debug("viewer left", zap.String("client_id", client.ID), zap.Uint("post_id", client.PostID))
}

func (h *HubService) broadcastToRoom(message models.RoomMessage) {
	for client := range h.hub.Rooms[message.PostID] {
		select {
		case client.Send <- message.Payload:
		default:
			h.unregisterClient(client)
		}
	}
}

// BroadcastToPost queues an event for everyone viewing postID. It never
// blocks the caller; events are dropped when the queue is full.
func (h *HubService) BroadcastToPost(postID uint, messageType string, data interface{}) {
	payload, err := json.Marshal(models.WSMessage{Type: messageType, Data: data})
	if err != nil {
		h.logger.Error("marshal websocket message", zap.Error(err))
		return
	}

	select {
	case h.hub.Broadcast <- models.RoomMessage{PostID: postID, Payload: payload}:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping event", zap.Uint("post_id", postID))
	}
}
