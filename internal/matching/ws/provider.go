package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"khidmaBack/internal/matching/geo"
	"khidmaBack/internal/matching/notify"
)

// Logger is the minimal logging interface required by the hub.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type assignmentFrame struct {
	Type string `json:"type"`
	notify.Assignment
}

// ProviderHub manages provider websocket connections. Inbound frames are
// location pings that feed the locator; outbound frames carry assignments.
type ProviderHub struct {
	upgrader websocket.Upgrader
	locator  *geo.ProviderLocator
	logger   Logger

	mu    sync.RWMutex
	conns map[int64]*websocket.Conn
}

// NewProviderHub creates the hub.
func NewProviderHub(locator *geo.ProviderLocator, logger Logger) *ProviderHub {
	return &ProviderHub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		locator:  locator,
		logger:   logger,
		conns:    make(map[int64]*websocket.Conn),
	}
}

// ServeWS handles provider websocket connections.
func (h *ProviderHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	providerID, err := parseIDParam(r, "provider_id")
	if err != nil {
		http.Error(w, "missing provider_id", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("provider ws upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if old, ok := h.conns[providerID]; ok {
		_ = old.Close()
	}
	h.conns[providerID] = conn
	h.mu.Unlock()

	h.logger.Infof("provider %d connected", providerID)

	go h.readLoop(providerID, conn)
}

func (h *ProviderHub) readLoop(providerID int64, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		h.mu.Lock()
		if current, ok := h.conns[providerID]; ok && current == conn {
			delete(h.conns, providerID)
		}
		h.mu.Unlock()
		h.logger.Infof("provider %d disconnected", providerID)
	}()

	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(1000 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(1000 * time.Second))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(1000 * time.Second))
		var payload struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		}
		if err := json.Unmarshal(message, &payload); err != nil {
			h.logger.Errorf("provider %d invalid payload: %v", providerID, err)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := h.locator.UpdatePosition(ctx, providerID, payload.Lat, payload.Lon); err != nil {
			h.logger.Errorf("provider %d position update failed: %v", providerID, err)
		}
		cancel()
	}
}

// Connected reports whether the provider has an open connection.
func (h *ProviderHub) Connected(providerID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[providerID] != nil
}

// SendAssignment pushes an assignment notice to a provider.
func (h *ProviderHub) SendAssignment(providerID int64, a notify.Assignment) {
	h.mu.RLock()
	conn := h.conns[providerID]
	h.mu.RUnlock()
	if conn == nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(assignmentFrame{Type: "assignment", Assignment: a}); err != nil {
		h.logger.Errorf("send assignment to provider %d failed: %v", providerID, err)
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	if v := r.URL.Query().Get(name); v != "" {
		return strconv.ParseInt(v, 10, 64)
	}
	if v := r.Header.Get("X-" + name); v != "" {
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, strconv.ErrSyntax
}
