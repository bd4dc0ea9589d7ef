package ws

import (
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/auth"
)

// Server upgrades websocket connections and attaches them to the hub after
// validating the token carried in the query string.
type Server struct {
	hub    *Hub
	live   *Live
	tokens *auth.Manager
	log    *zap.SugaredLogger
}

func NewServer(hub *Hub, live *Live, tokens *auth.Manager, log *zap.SugaredLogger) *Server {
	return &Server{hub: hub, live: live, tokens: tokens, log: log}
}

func (s *Server) Handle() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		token := conn.Query("token")
		if token == "" {
			_ = conn.Close()
			return
		}
		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.log.Debugw("ws token rejected", "err", err)
			_ = conn.Close()
			return
		}

		c := newClient(conn, claims.UserID, s.hub, s.live)
		s.log.Infow("ws connected", "user", c.userID)
		go c.writePump()
		c.readPump()
		s.log.Infow("ws disconnected", "user", c.userID)
	}
}
