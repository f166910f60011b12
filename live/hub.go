// Package live pushes catalog changes to connected browsers over
// websockets. Clients join the shared catalog room or a per-defense
// room; maintainer mutations are broadcast as events so open pages
// refresh without polling.
package live

import (
	"encoding/json"
	"log"
	"sync"
)

// CatalogRoom receives every catalog-wide event. Per-defense rooms are
// named by DefenseRoom.
const CatalogRoom = "catalog"

func DefenseRoom(slug string) string {
	return "defense_" + slug
}

const (
	EventDefenseCreated = "DEFENSE_CREATED"
	EventDefenseDeleted = "DEFENSE_DELETED"
	EventCounterCreated = "COUNTER_CREATED"
	EventCounterDeleted = "COUNTER_DELETED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Room    string      `json:"room,omitempty"`
}

type Hub struct {
	register   chan *Client
	unregister chan *Client

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run owns room membership. It must be started once, before any client
// connects.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, present := clients[client]; present {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom fans an event out to every client in the room. Slow
// clients whose send buffer is full are skipped rather than blocking
// the caller.
func (h *Hub) BroadcastToRoom(room string, event Event) {
	event.Room = room

	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("live: failed to marshal event for room %s: %v", room, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- message:
			default:
				log.Printf("live: send buffer full for a client in room %s, dropping event", room)
			}
		}
		client.mu.Unlock()
	}
}
