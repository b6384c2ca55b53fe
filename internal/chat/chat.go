package chat

import (
	"encoding/json"
	"time"
)

const (
	MessageTypeChat   = "chat"
	MessageTypeSystem = "system"
	MessageTypeEvent  = "event"
)

// Message is the wire format for everything that travels through a team
// room: user chat, join/leave notices and task event fan-out.
type Message struct {
	Type       string          `json:"type"`
	TeamID     int64           `json:"team_id"`
	SenderID   int64           `json:"sender_id,omitempty"`
	SenderName string          `json:"sender_name,omitempty"`
	Body       string          `json:"body,omitempty"`
	Event      json.RawMessage `json:"event,omitempty"`
	SentAt     time.Time       `json:"sent_at"`
}

// inbound is what a connected client is allowed to send.
type inbound struct {
	Body string `json:"body"`
}
