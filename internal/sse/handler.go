package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/seedling/internal/logger"
)

// Handler returns an HTTP handler for SSE connections.
// ?types=tree.updated,tree.day_rollover limits the stream to those event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
			for _, t := range strings.Split(filterParam, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}

		client := hub.Register(eventTypes)
		if client == nil {
			http.Error(w, "event stream closed", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		log.Info(LogMsgClientConnected, "client_id", client.ID, "filters", eventTypes)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(event Event) bool {
			msg, err := FormatSSEMessage(event)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !write(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, Filters: eventTypes},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub stopped
					return
				}
				if !write(event) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
