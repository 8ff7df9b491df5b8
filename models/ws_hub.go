package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans comment events out to the viewers of each post. Its maps are
// owned by the HubService run loop.
type Hub struct {
	Clients    map[*Client]bool
	Rooms      map[uint]map[*Client]bool
	Broadcast  chan RoomMessage
	Register   chan *Client
	Unregister chan *Client
	// Done is closed when the run loop exits.
	Done chan struct{}
}

type Client struct {
	ID     string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	PostID uint
}

type RoomMessage struct {
	PostID  uint
	Payload []byte
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Rooms:      make(map[uint]map[*Client]bool),
		Broadcast:  make(chan RoomMessage, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Done:       make(chan struct{}),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, postID uint) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		PostID: postID,
	}
}
