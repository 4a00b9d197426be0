package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Publisher is the outbound side of the hub, injected into services that
// emit events. Publishing never returns an error: a room with no members is
// a no-op and dead connections are dropped rather than reported.
type Publisher interface {
	Broadcast(event string, payload any)
	ToRoom(room, event string, payload any)
}

// OrderRoom names the room for clients tracking a single order.
func OrderRoom(orderID string) string {
	return "order:" + orderID
}

// UserRoom names the room for a user's personal notifications.
func UserRoom(userID string) string {
	return "user:" + userID
}

// Room join/leave commands accepted from clients.
const (
	ActionJoinOrderRoom  = "joinOrderRoom"
	ActionLeaveOrderRoom = "leaveOrderRoom"
	ActionJoinUserRoom   = "joinUserRoom"
	ActionLeaveUserRoom  = "leaveUserRoom"
)

type command struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// sendBuffer bounds per-client outbound queueing. A client that cannot keep
// up is disconnected instead of blocking publishes.
const sendBuffer = 32

type client struct {
	send chan envelope
	quit chan struct{}
	once sync.Once
}

func newClient() *client {
	return &client{
		send: make(chan envelope, sendBuffer),
		quit: make(chan struct{}),
	}
}

func (c *client) stop() {
	c.once.Do(func() { close(c.quit) })
}

// Hub tracks connected websocket clients and their room memberships.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	rooms   map[string]map[*client]struct{}
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		rooms:   make(map[string]map[*client]struct{}),
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event string, payload any) {
	msg := envelope{Event: event, Data: payload}

	for _, c := range h.snapshotAll() {
		h.deliver(c, msg)
	}
}

// ToRoom sends an event to every member of the room. Empty rooms are a no-op.
func (h *Hub) ToRoom(room, event string, payload any) {
	msg := envelope{Event: event, Data: payload}

	for _, c := range h.snapshotRoom(room) {
		h.deliver(c, msg)
	}
}

func (h *Hub) snapshotAll() []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	return targets
}

func (h *Hub) snapshotRoom(room string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var targets []*client
	for c := range h.rooms[room] {
		targets = append(targets, c)
	}
	return targets
}

func (h *Hub) deliver(c *client, msg envelope) {
	select {
	case c.send <- msg:
	case <-c.quit:
	default:
		// Client has fallen behind; drop it.
		h.unregister(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		for room, members := range h.rooms {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()
	c.stop()
}

func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) leave(c *client, room string) {
	h.mu.Lock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) handleCommand(c *client, cmd command) {
	switch cmd.Action {
	case ActionJoinOrderRoom:
		h.join(c, OrderRoom(cmd.ID))
	case ActionLeaveOrderRoom:
		h.leave(c, OrderRoom(cmd.ID))
	case ActionJoinUserRoom:
		h.join(c, UserRoom(cmd.ID))
	case ActionLeaveUserRoom:
		h.leave(c, UserRoom(cmd.ID))
	default:
		log.Printf("[Hub] Unknown command %q ignored", cmd.Action)
	}
}

// Handler returns the websocket handler serving hub connections. The read
// loop parses join/leave commands; a writer goroutine drains the client's
// send queue.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		c := newClient()
		h.register(c)
		defer h.unregister(c)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				select {
				case msg := <-c.send:
					body, err := json.Marshal(msg)
					if err != nil {
						log.Printf("[Hub] Marshal failed for event %s: %v", msg.Event, err)
						continue
					}
					if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
						return
					}
				case <-c.quit:
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var cmd command
			if err := json.Unmarshal(raw, &cmd); err != nil {
				log.Printf("[Hub] Ignoring malformed message: %v", err)
				continue
			}
			h.handleCommand(c, cmd)
		}

		h.unregister(c)
		<-done
	}
}
