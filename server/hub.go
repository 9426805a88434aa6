// Package server streams scene snapshots to websocket clients and accepts
// camera commands from them.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"solarsystem/simulation"
)

const (
	DefaultBroadcastHz = 10
	commandQueueSize   = 64
	writeTimeout       = 2 * time.Second
	shutdownTimeout    = 3 * time.Second
)

// Message is the envelope sent to clients
type Message struct {
	Type     string               `json:"type"`
	Snapshot *simulation.Snapshot `json:"snapshot,omitempty"`
	Client   string               `json:"client,omitempty"`
	Command  string               `json:"command,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// Request is what clients send
type Request struct {
	Command string `json:"command"`
}

type Options struct {
	BroadcastHz float64
	Logger      *slog.Logger
	Metrics     *Metrics
}

// client serialises writes to one connection
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans snapshots out to clients. Publish is safe to call from the render thread.
type Hub struct {
	upgrader websocket.Upgrader
	limiter  *rate.Limiter
	logger   *slog.Logger
	metrics  *Metrics

	mailbox  chan simulation.Snapshot
	commands chan simulation.Command

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*client

	latestMu sync.RWMutex
	latest   *simulation.Snapshot
}

func NewHub(opts Options) *Hub {
	hz := opts.BroadcastHz
	if hz <= 0 {
		hz = DefaultBroadcastHz
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	return &Hub{
		// nil CheckOrigin keeps gorilla's same-origin check
		upgrader: websocket.Upgrader{},
		limiter:  rate.NewLimiter(rate.Limit(hz), 1),
		logger:   logger.With("component", "server"),
		metrics:  metrics,
		mailbox:  make(chan simulation.Snapshot, 1),
		commands: make(chan simulation.Command, commandQueueSize),
		clients:  make(map[*websocket.Conn]*client),
	}
}

// Metrics returns the hub's collector
func (h *Hub) Metrics() *Metrics { return h.metrics }

// Commands delivers camera commands received from clients
func (h *Hub) Commands() <-chan simulation.Command { return h.commands }

// Publish hands a snapshot to the broadcaster, replacing any still pending
func (h *Hub) Publish(snap simulation.Snapshot) {
	h.latestMu.Lock()
	h.latest = &snap
	h.latestMu.Unlock()

	select {
	case h.mailbox <- snap:
		return
	default:
	}
	select {
	case <-h.mailbox:
		h.metrics.snapshotDropped()
	default:
	}
	select {
	case h.mailbox <- snap:
	default:
		h.metrics.snapshotDropped()
	}
}

// Latest returns the most recently published snapshot
func (h *Hub) Latest() (simulation.Snapshot, bool) {
	h.latestMu.RLock()
	defer h.latestMu.RUnlock()
	if h.latest == nil {
		return simulation.Snapshot{}, false
	}
	return *h.latest, true
}

// Run broadcasts published snapshots at no more than the configured rate until ctx ends
func (h *Hub) Run(ctx context.Context) {
	for {
		var snap simulation.Snapshot
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case snap = <-h.mailbox:
		}

		if err := h.limiter.Wait(ctx); err != nil {
			h.closeAll()
			return
		}
		// a newer snapshot may have arrived while throttled
		select {
		case snap = <-h.mailbox:
		default:
		}
		h.broadcast(Message{Type: "snapshot", Snapshot: &snap})
	}
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode snapshot", "err", err)
		return
	}

	h.clientsMu.RLock()
	var failed []*client
	for _, c := range h.clients {
		if err := c.write(data); err != nil {
			failed = append(failed, c)
		}
	}
	h.clientsMu.RUnlock()

	for _, c := range failed {
		h.logger.Debug("dropping client", "client", c.id, "remote", c.conn.RemoteAddr().String())
		h.remove(c.conn)
		c.conn.Close()
	}
}

func (h *Hub) send(c *client, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.write(data)
}

func (h *Hub) add(conn *websocket.Conn) *client {
	c := &client{id: uuid.NewString(), conn: conn}
	h.clientsMu.Lock()
	h.clients[conn] = c
	h.clientsMu.Unlock()
	h.metrics.clientConnected()
	return c
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.clientsMu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.clientsMu.Unlock()
	if ok {
		h.metrics.clientDisconnected()
	}
}

func (h *Hub) closeAll() {
	h.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clientsMu.Unlock()
	for _, conn := range conns {
		h.remove(conn)
		conn.Close()
	}
}

// ClientCount reports connected websocket clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	c := h.add(conn)
	defer h.remove(conn)
	h.logger.Debug("client connected", "client", c.id, "remote", r.RemoteAddr)

	if err := h.send(c, Message{Type: "welcome", Client: c.id}); err != nil {
		return
	}
	if snap, ok := h.Latest(); ok {
		if err := h.send(c, Message{Type: "snapshot", Snapshot: &snap}); err != nil {
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", "client", c.id, "err", err)
			}
			return
		}

		reply, ok := h.handleRequest(data)
		if ok {
			continue
		}
		h.logger.Debug("rejected request", "client", c.id, "err", reply.Error)
		if err := h.send(c, reply); err != nil {
			return
		}
	}
}

// handleRequest queues a valid command. ok is false when reply must be sent back.
func (h *Hub) handleRequest(data []byte) (reply Message, ok bool) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Message{Type: "error", Error: "malformed request: " + err.Error()}, false
	}
	cmd, err := simulation.ParseCommand(req.Command)
	if err != nil {
		return Message{Type: "error", Command: req.Command, Error: err.Error()}, false
	}
	if !remoteAllowed(cmd) {
		return Message{Type: "error", Command: req.Command, Error: "command not allowed remotely"}, false
	}

	select {
	case h.commands <- cmd:
		return Message{}, true
	default:
		return Message{Type: "error", Command: req.Command, Error: "command queue full"}, false
	}
}

// remoteAllowed reports whether websocket clients may issue cmd. Quitting stays local.
func remoteAllowed(cmd simulation.Command) bool {
	return cmd != simulation.Quit
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Latest()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Warn("write snapshot", "err", err)
	}
}

// Handler routes /ws, /snapshot and /metrics
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/snapshot", h.handleSnapshot)
	mux.Handle("/metrics", h.metrics.Handler())
	return mux
}

// Start serves handler on addr until ctx ends
func Start(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
