package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// clientQueueSize is how many events may wait for one slow client before it
// is dropped.
const clientQueueSize = 16

type Client struct {
	UserID uuid.UUID
	Conn   Conn

	send chan ActivityEvent
	done chan struct{}
}

// Activity event types.
const (
	EventCreated   = "created"
	EventUpdated   = "updated"
	EventPublished = "published"
	EventDeleted   = "deleted"
	EventImported  = "imported"
)

// ActivityEvent is one line of the admin activity feed.
type ActivityEvent struct {
	Type        string    `json:"type"`
	ContentType string    `json:"content_type"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ActorID     string    `json:"actor_id,omitempty"`
	At          time.Time `json:"at"`
}

type Hub struct {
	clients    map[*Client]bool
	mu         sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan ActivityEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ActivityEvent, 64),
	}
}

var Default = NewHub()

func init() {
	go Default.Run()
}

// Register adds c to the feed. From then on only the hub writes to c.Conn.
func (h *Hub) Register(c *Client) {
	c.send = make(chan ActivityEvent, clientQueueSize)
	c.done = make(chan struct{})
	h.register <- c
}

// Unregister removes c and waits until nothing writes to c.Conn any more.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
	if c.done != nil {
		<-c.done
	}
}

// Publish queues ev for every connected client. Events are dropped when the
// queue is full so content handlers never block on slow sockets.
func (h *Hub) Publish(ev ActivityEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("Activity feed queue full, dropping %s event for %s %s", ev.Type, ev.ContentType, ev.ID)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run owns the client set. It never writes to a socket itself: each client
// has its own writer goroutine, so a stalled connection only backs up its own
// queue.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			log.Printf("Activity client registered: %s", client.UserID)
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			go h.writePump(client)
		case client := <-h.unregister:
			h.mu.Lock()
			if h.clients[client] {
				log.Printf("Activity client unregistered: %s", client.UserID)
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case ev := <-h.broadcast:
			var slow []*Client
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- ev:
				default:
					delete(h.clients, client)
					close(client.send)
					slow = append(slow, client)
				}
			}
			h.mu.Unlock()
			for _, client := range slow {
				log.Printf("Activity client %s is not keeping up, disconnecting", client.UserID)
				client.Conn.Close()
			}
		}
	}
}

func (h *Hub) writePump(c *Client) {
	defer close(c.done)
	for ev := range c.send {
		if err := c.Conn.WriteJSON(ev); err != nil {
			log.Printf("Error sending activity to client %s: %v", c.UserID, err)
			c.Conn.Close()
			h.unregister <- c
			for range c.send {
			}
			return
		}
	}
}

// Publish sends ev through the default hub.
func Publish(ev ActivityEvent) {
	Default.Publish(ev)
}
