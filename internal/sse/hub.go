package sse

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/seedling/internal/metrics"
)

// Client represents a connected SSE client
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events
}

// wants reports whether the client subscribed to eventType
func (c *Client) wants(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

// Hub manages SSE client connections and event broadcasting
type Hub struct {
	clients   map[string]*Client
	broadcast chan Event
	mu        sync.RWMutex
	closed    bool
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
		now:       time.Now,
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts the loop down and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		h.closed = true
		for id, client := range h.clients {
			close(client.EventChannel)
			delete(h.clients, id)
		}
		h.mu.Unlock()
		metrics.SSEClients.Set(0)
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case event := <-h.broadcast:
			h.fanOut(event)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) fanOut(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.wants(event.Type) {
			continue
		}
		// slow clients miss events rather than stall the loop
		select {
		case client.EventChannel <- event:
		default:
		}
	}
}

// Register adds a new client to the hub.
// It returns nil if the hub has been stopped.
func (h *Hub) Register(eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
	}

	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.clients[client.ID] = client
	metrics.SSEClients.Set(float64(len(h.clients)))
	return client
}

// Unregister removes a client from the hub and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
	metrics.SSEClients.Set(float64(len(h.clients)))
}

// Broadcast sends an event to all interested clients. It never blocks.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
		metrics.EventsBroadcast.WithLabelValues(eventType).Inc()
		slog.Debug(LogMsgEventBroadcast, "event_type", eventType, "event_id", event.ID)
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an SSE event for transmission:
// "id: <id>\nevent: <type>\ndata: <json>\n\n"
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if event.ID != "" {
		buf.WriteString("id: " + event.ID + "\n")
	}
	buf.WriteString("event: " + event.Type + "\n")
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")

	return buf.Bytes(), nil
}
