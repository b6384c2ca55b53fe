package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/pradikta/taskhub/internal/core/events"
)

// Hub tracks connected clients grouped into per-team rooms and fans
// messages out to everyone in a room.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[int64]map[*Client]struct{}
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[int64]map[*Client]struct{}),
		logger: logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.teamID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.teamID] = room
	}
	room[c] = struct{}{}
	count := len(room)
	h.mu.Unlock()

	h.logger.Info("chat client joined", "team_id", c.teamID, "user_id", c.userID, "room_size", count)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.teamID]; ok {
		if _, present := room[c]; present {
			delete(room, c)
			close(c.send)
			if len(room) == 0 {
				delete(h.rooms, c.teamID)
			}
		}
	}
	h.mu.Unlock()

	h.logger.Info("chat client left", "team_id", c.teamID, "user_id", c.userID)
}

// Broadcast delivers a message to every client in the team room. Clients
// with a full send buffer are dropped rather than allowed to stall the hub.
func (h *Hub) Broadcast(teamID int64, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal chat message", "error", err)
		return
	}

	h.mu.RLock()
	room := h.rooms[teamID]
	var stalled []*Client
	for c := range room {
		select {
		case c.send <- payload:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.logger.Warn("dropping stalled chat client", "team_id", teamID, "user_id", c.userID)
		h.unregister(c)
	}
}

// RoomSize reports the number of connected clients for a team.
func (h *Hub) RoomSize(teamID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[teamID])
}

// RegisterEventHandlers wires task activity into the team rooms so
// connected clients see board changes live.
func (h *Hub) RegisterEventHandlers(bus *events.EventBus) {
	relay := func(ctx context.Context, event events.Event) error {
		teamID, ok := teamIDOf(event)
		if !ok {
			return nil
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		h.Broadcast(teamID, Message{
			Type:   MessageTypeEvent,
			TeamID: teamID,
			Event:  payload,
			SentAt: time.Now(),
		})
		return nil
	}

	bus.Subscribe(events.EventTypeTaskCreated, relay)
	bus.Subscribe(events.EventTypeTaskStatusChanged, relay)
	bus.Subscribe(events.EventTypeTaskAssigned, relay)
	bus.Subscribe(events.EventTypeCommentAdded, relay)
}

func teamIDOf(event events.Event) (int64, bool) {
	switch e := event.(type) {
	case *events.TaskCreatedEvent:
		return e.TeamID, true
	case *events.TaskStatusChangedEvent:
		return e.TeamID, true
	case *events.TaskAssignedEvent:
		return e.TeamID, true
	case *events.CommentAddedEvent:
		return e.TeamID, true
	}
	return 0, false
}
