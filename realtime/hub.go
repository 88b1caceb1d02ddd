// Package realtime pushes tournament updates to WebSocket clients grouped in
// per-tournament rooms.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/google/uuid"
)

const (
	MessageEnrollmentUpdated  = "ENROLLMENT_UPDATED"
	MessageEnrollmentSnapshot = "ENROLLMENT_SNAPSHOT"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

func TournamentRoom(tournamentID uuid.UUID) string {
	return "tournament_" + tournamentID.String()
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run owns room membership until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			size := len(h.rooms[client.room])
			h.mu.Unlock()
			close(client.joined)
			h.logger.Debug("client joined room", slog.String("room", client.room), slog.Int("clients", size))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("client left room", slog.String("room", client.room))
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.closeSend()
		}
		delete(h.rooms, room)
	}
}

// Register adds the client to its room and returns once broadcasts to that
// room reach it. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
	case <-h.done:
		return false
	}
	select {
	case <-client.joined:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// RoomSize reports how many clients are connected to the room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// BroadcastToRoom sends message to every client in the room. Slow clients
// whose buffers are full miss the message.
func (h *Hub) BroadcastToRoom(roomID string, message Message) {
	message.RoomID = roomID
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal room message", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if !client.trySend(messageBytes) {
			h.logger.Warn("client send buffer full, dropping message", slog.String("room", roomID))
		}
	}
}

// EnrollmentUpdated publishes the enrolled list to the tournament's room.
func (h *Hub) EnrollmentUpdated(tournamentID uuid.UUID, players []models.EnrolledPlayer) {
	h.BroadcastToRoom(TournamentRoom(tournamentID), Message{
		Type:    MessageEnrollmentUpdated,
		Payload: players,
	})
}
