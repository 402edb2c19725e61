package httpx

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"chessrules/internal/game"
)

const wsWriteWait = 5 * time.Second

// stateMessage is pushed to every websocket client after the game changes.
type stateMessage struct {
	Type  string          `json:"type"`
	State game.BoardState `json:"state"`
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(v)
}

// hub tracks websocket clients and fans state updates out to them.
type hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

func newHub() *hub {
	return &hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// serve upgrades the request, sends initial, and keeps the client registered
// until its connection fails. Inbound messages are ignored.
func (h *hub) serve(w http.ResponseWriter, r *http.Request, initial any) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	c := &client{conn: conn}
	if err := c.send(initial); err != nil {
		log.Printf("ws initial state: %v", err)
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.drop(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

func (h *hub) broadcast(v any) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(v); err != nil {
			log.Printf("ws send to %s: %v", c.conn.RemoteAddr(), err)
			h.drop(c)
		}
	}
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// close disconnects every client.
func (h *hub) close() error {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	var result *multierror.Error
	for c := range clients {
		if err := c.conn.Close(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "close %s", c.conn.RemoteAddr()))
		}
	}
	return result.ErrorOrNil()
}
