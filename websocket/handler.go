package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and registers the client for
// finance event broadcasts. The caller has already passed JWT auth.
func HandleWebSocket(c echo.Context, hub *Hub, role string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		Conn: conn,
		Role: role,
	}

	hub.register <- client

	conn.WriteJSON(FinanceEvent{
		Type:      "connected",
		Message:   "WebSocket connection established",
		Timestamp: time.Now(),
	})

	// Drain inbound frames so pings and close frames are processed;
	// unregister on disconnect.
	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
