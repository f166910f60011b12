package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/maxlgn/counterhub/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin enforcement is delegated to the CORS configuration of
		// the deployment; tighten here when serving a single frontend.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeCatalog subscribes the client to live catalog events. An
// optional ?defense=<slug> query narrows the subscription to one
// defense's room.
func (h *WebSocketHandler) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	room := live.CatalogRoom
	if slug := r.URL.Query().Get("defense"); slug != "" {
		room = live.DefenseRoom(slug)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket connection: %v", err)
		return
	}

	live.NewClient(h.hub, conn, room).Start()
}
