package ws

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	readLimit    = 32 * 1024
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 256
)

// clientFrame is what subscribers send upstream.
type clientFrame struct {
	Type   string `json:"type"`
	ChatID string `json:"chat_id"`
}

type Client struct {
	conn   *websocket.Conn
	send   chan any
	done   chan struct{}
	userID string
	hub    *Hub
	live   *Live
}

func newClient(conn *websocket.Conn, userID string, hub *Hub, live *Live) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan any, sendBuffer),
		done:   make(chan struct{}),
		userID: userID,
		hub:    hub,
		live:   live,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Drop(c)
		close(c.done)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var f clientFrame
		if err := json.Unmarshal(data, &f); err != nil {
			// bad JSON from a client is not a reason to disconnect it
			continue
		}
		switch f.Type {
		case "subscribe":
			if f.ChatID != "" {
				c.hub.Subscribe(f.ChatID, c)
				c.live.SendSnapshot(f.ChatID, c)
			}
		case "unsubscribe":
			if f.ChatID != "" {
				c.hub.Unsubscribe(f.ChatID, c)
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
			return
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(time.Second)); err != nil {
				return
			}
		}
	}
}
