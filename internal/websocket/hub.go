package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub fans server events out to every connection of a user.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	publish    chan *delivery
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopOnce   sync.Once
	stopped    bool
	mu         sync.RWMutex
}

type delivery struct {
	userID uuid.UUID
	msg    *Message
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan *delivery, 256),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, conns := range h.clients {
				for client := range conns {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				conns, ok := h.clients[client.userID]
				if !ok {
					conns = make(map[*Client]bool)
					h.clients[client.userID] = conns
				}
				conns[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case d := <-h.publish:
			h.deliver(d)
		}
	}
}

func (h *Hub) deliver(d *delivery) {
	data, err := json.Marshal(d.msg)
	if err != nil {
		log.Printf("ERROR [hub.deliver] failed to marshal %s: %v", d.msg.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[d.userID] {
		if !client.trySend(data) {
			log.Printf("hub: dropping slow client of user %s", d.userID)
			h.removeLocked(client)
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	conns, ok := h.clients[client.userID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}
	client.Close()
}

// Stop closes every connection and blocks until Run() has exited. Safe to
// call more than once and from several goroutines.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues msg for every connection of userID. Users without an open
// connection simply miss the event; the REST API stays the source of truth.
func (h *Hub) Publish(userID uuid.UUID, msg *Message) {
	select {
	case h.publish <- &delivery{userID: userID, msg: msg}:
	case <-h.done:
	}
}

// ClientCount returns the number of open connections of a user.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
