package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/kaganatalay/ciz.im/internal/model"
)

// outbound is a queued delivery. If only is set the message goes to that
// connection alone; if except is set every connection but that one gets it.
type outbound struct {
	data   []byte
	only   model.ConnectionID
	except model.ConnectionID
}

// Hub fans events out to the websocket clients of a single session
type Hub struct {
	code    model.SessionCode
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	send       chan outbound
	done       chan struct{}
}

// NewHub creates a new Hub for a session
func NewHub(code model.SessionCode, logger *slog.Logger) *Hub {
	return &Hub{
		code:       code,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("session", string(code))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan outbound, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client registered",
				slog.String("conn_id", string(client.id)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.outbox)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("client unregistered",
					slog.String("conn_id", string(client.id)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case msg := <-h.send:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				if msg.only != "" && client.id != msg.only {
					continue
				}
				if msg.except != "" && client.id == msg.except {
					continue
				}
				select {
				case client.outbox <- msg.data:
				default:
					dropped++
					h.logger.Warn("message dropped - client buffer full",
						slog.String("conn_id", string(client.id)))
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("delivery partial failure", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.outbox)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub. A closed hub accepts nobody; the
// caller observes the session as gone on its next operation.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends an event to every connected client
func (h *Hub) Broadcast(event model.Event) {
	h.enqueue(outbound{data: h.encode(event)})
}

// BroadcastExcept sends an event to every client but the given connection
func (h *Hub) BroadcastExcept(except model.ConnectionID, event model.Event) {
	h.enqueue(outbound{data: h.encode(event), except: except})
}

// SendTo sends an event to a single connection
func (h *Hub) SendTo(only model.ConnectionID, event model.Event) {
	h.enqueue(outbound{data: h.encode(event), only: only})
}

func (h *Hub) enqueue(msg outbound) {
	if msg.data == nil {
		return
	}
	select {
	case h.send <- msg:
	default:
		h.logger.Warn("delivery dropped - hub buffer full")
	}
}

func (h *Hub) encode(event model.Event) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("event marshal failed",
			slog.String("event", string(event.Type)),
			slog.String("error", err.Error()))
		return nil
	}
	return data
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Manager tracks the hubs of all live sessions
type Manager struct {
	hubs   map[model.SessionCode]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewManager creates a new Manager
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		hubs:   make(map[model.SessionCode]*Hub),
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// GetOrCreateHub returns the hub for a session, creating one if needed
func (m *Manager) GetOrCreateHub(code model.SessionCode) *Hub {
	code = code.Normalized()

	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[code]; ok {
		return hub
	}

	hub := NewHub(code, m.logger)
	m.hubs[code] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a session, or nil if it doesn't exist
func (m *Manager) GetHub(code model.SessionCode) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[code.Normalized()]
}

// RemoveHub removes and closes a hub
func (m *Manager) RemoveHub(code model.SessionCode) {
	code = code.Normalized()

	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[code]; ok {
		hub.Close()
		delete(m.hubs, code)
		m.logger.Info("hub removed", slog.String("session", string(code)))
	}
}
