package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"digital.vasic.matchers/pkg/logging"
)

const (
	writeWait    = 5 * time.Second
	clientBuffer = 64
)

// Message kinds sent on the /events feed.
const (
	KindStats = "stats"
	KindEvent = "event"
)

// Message is one frame of the /events feed. The first frame of a
// connection carries the current stats, later frames carry events
// in emit order.
type Message struct {
	Kind  string          `json:"kind"`
	Event *OutcomeEvent   `json:"event,omitempty"`
	Stats *CollectorStats `json:"stats,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server streams collector events to WebSocket clients.
type Server struct {
	mu        sync.RWMutex
	collector *EventCollector
	logger    logging.Logger
	clients   map[*client]struct{}
	addr      string
	server    *http.Server
	upgrader  websocket.Upgrader
}

// NewServer creates a monitor server for collector. A nil logger
// discards output.
func NewServer(
	addr string,
	collector *EventCollector,
	logger logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	s := &Server{
		addr:      addr,
		collector: collector,
		logger:    logger,
		clients:   make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	collector.OnEvent(s.publish)
	return s
}

// Handler returns the HTTP handler serving /events, /stats and
// /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start serves until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = srv.Close()
		s.closeClients()
	}()

	s.logger.Info("monitor listening", logging.StringField("addr", s.addr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server and disconnects clients.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()

	s.closeClients()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// ClientCount returns the number of connected feed clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", logging.ErrorField(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	s.collector.Snapshot(func(stats CollectorStats) {
		if data, err := json.Marshal(Message{Kind: KindStats, Stats: &stats}); err == nil {
			c.send <- data
		}
		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()
	})

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop discards client frames until the connection closes.
func (s *Server) readLoop(c *client) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		close(c.send)
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("websocket write failed", logging.ErrorField(err))
			return
		}
	}
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.collector.Stats())
}

func (s *Server) publish(event OutcomeEvent) {
	data, err := json.Marshal(Message{Kind: KindEvent, Event: &event})
	if err != nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Warn("monitor client too slow, event dropped",
				logging.StringField("matcher", event.Matcher))
		}
	}
}

func (s *Server) closeClients() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
			time.Now().Add(writeWait),
		)
		_ = c.conn.Close()
	}
}
