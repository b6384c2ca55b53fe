package chat

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pradikta/taskhub/internal"
)

// Client is one websocket connection bound to a user and a team room.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	teamID   int64
	userID   int64
	userName string
	cfg      internal.ChatConfig
}

func newClient(hub *Hub, conn *websocket.Conn, teamID, userID int64, userName string, cfg internal.ChatConfig) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 64),
		teamID:   teamID,
		userID:   userID,
		userName: userName,
		cfg:      cfg,
	}
}

// readPump pulls chat messages off the socket and rebroadcasts them to
// the room. It owns the read side of the connection and drives the pong
// deadline.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("chat read error", "team_id", c.teamID, "user_id", c.userID, "error", err)
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(raw, &in); err != nil || in.Body == "" {
			continue
		}

		c.hub.Broadcast(c.teamID, Message{
			Type:       MessageTypeChat,
			TeamID:     c.teamID,
			SenderID:   c.userID,
			SenderName: c.userName,
			Body:       in.Body,
			SentAt:     time.Now(),
		})
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	pingInterval := c.cfg.PongWait * 9 / 10
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
