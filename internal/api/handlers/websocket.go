package handlers

import (
	"net/http"

	"campus-vote/internal/api/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking happens in the CORS middleware; the upgrade
		// request already passed authentication
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ElectionEventsWebSocket streams live cast events to authenticated
// clients. Events carry election-level data only, never voter identity.
func ElectionEventsWebSocket(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			services.GetLogger().Error("WebSocket upgrade failed: %v", err)
			return
		}

		services.GetLogger().Info("Event feed connection established - client_ip: %s", getClientIP(c))
		services.GetEventHub().Serve(conn)
	}
}
