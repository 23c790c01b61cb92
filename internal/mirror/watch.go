package mirror

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/sse"
)

// StateHandler is called after a broadcast state has been written to the cache
type StateHandler func(eventType string, st domain.TreeState)

// streamEvent is an event as read off the wire, payload still undecoded
type streamEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Watcher follows the server's event stream and overwrites the local cache
// with every broadcast state. It reconnects with exponential backoff.
type Watcher struct {
	baseURL    string
	mirror     *Mirror
	onState    StateHandler
	httpClient *http.Client
	after      func(time.Duration) <-chan time.Time

	mu        sync.RWMutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewWatcher creates a watcher. onState may be nil.
func NewWatcher(baseURL string, m *Mirror, onState StateHandler) *Watcher {
	return &Watcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		mirror:     m,
		onState:    onState,
		httpClient: &http.Client{
			Timeout: 0, // streams stay open
		},
		after: time.After,
	}
}

// Start connects in the background until ctx is done or Stop is called
func (w *Watcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go w.connectLoop(ctx)
}

// Stop disconnects and waits for the background loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
	w.httpClient.CloseIdleConnections()
}

// IsConnected reports whether a stream is currently open
func (w *Watcher) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

func (w *Watcher) setConnected(v bool) {
	w.mu.Lock()
	w.connected = v
	w.mu.Unlock()
}

func (w *Watcher) connectLoop(ctx context.Context) {
	defer w.wg.Done()

	backoff := watchInitialBackoff
	failures := 0

	for {
		if ctx.Err() != nil {
			slog.Info(LogMsgWatchStopped)
			return
		}

		established, err := w.connect(ctx)
		w.setConnected(false)
		if ctx.Err() != nil {
			slog.Info(LogMsgWatchStopped)
			return
		}

		if established {
			backoff = watchInitialBackoff
			failures = 0
		}
		if err != nil {
			failures++
			slog.Warn(LogMsgWatchFailed, "error", err, "backoff", backoff, "consecutive_failures", failures)
		}

		select {
		case <-w.after(backoff):
			backoff = min(time.Duration(float64(backoff)*watchBackoffMultiplier), watchMaxBackoff)
		case <-ctx.Done():
			slog.Info(LogMsgWatchStopped)
			return
		}
	}
}

// connect reports whether the stream was opened, along with why it ended
func (w *Watcher) connect(ctx context.Context) (bool, error) {
	url := fmt.Sprintf("%s%s?%s=%s,%s", w.baseURL, PathEvents, sse.QueryParamTypes,
		sse.EventTypeTreeUpdated, sse.EventTypeDayRollover)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(HeaderAccept, ContentTypeStream)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: connect: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, statusError(resp)
	}

	w.setConnected(true)
	slog.Info(LogMsgWatchConnected, "url", url)

	return true, w.readEvents(resp.Body)
}

func (w *Watcher) readEvents(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, watchBufferSize), watchBufferSize)

	var eventID, eventType, data string

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if data != "" {
				w.dispatch(eventID, eventType, data)
			}
			eventID, eventType, data = "", "", ""
			continue
		}

		switch {
		case strings.HasPrefix(line, "id: "):
			eventID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return errors.New("stream closed by server")
}

func (w *Watcher) dispatch(id, eventType, data string) {
	if eventType != sse.EventTypeTreeUpdated && eventType != sse.EventTypeDayRollover {
		return
	}

	var evt streamEvent
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		slog.Warn(LogMsgWatchParseError, "error", err, "event_id", id)
		return
	}

	var payload sse.TreePayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		slog.Warn(LogMsgWatchParseError, "error", err, "event_id", id)
		return
	}

	if err := w.mirror.Overwrite(payload.State); err != nil {
		slog.Error(LogMsgWatchApplyError, "error", err, "event_type", eventType)
		return
	}
	if w.onState != nil {
		w.onState(eventType, payload.State)
	}
}
