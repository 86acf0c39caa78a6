package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/pipeboard/internal/events"
	"golang.org/x/sync/errgroup"
)

// Options tunes buffer sizes, health checking and metrics exposure
type Options struct {
	BroadcastBuffer int
	ClientBuffer    int
	PingInterval    time.Duration
	StaleAfter      time.Duration // Clients silent for longer are disconnected
	MetricsAddr     string        // Serve /metrics here when non-empty
}

func (o *Options) applyDefaults() {
	if o.BroadcastBuffer <= 0 {
		o.BroadcastBuffer = 100
	}
	if o.ClientBuffer <= 0 {
		o.ClientBuffer = 10
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = 3 * o.PingInterval
	}
}

// client represents a connected client to the daemon
type client struct {
	conn         net.Conn
	send         chan events.Message
	subscription events.SubscribeMessage
	lastSeen     time.Time
	closed       bool
	mu           sync.Mutex // Protects subscription, lastSeen, closed and sends on send
}

// subscribedTo reports whether the client wants events for pipelineID.
// 0 on either side means every pipeline.
func (c *client) subscribedTo(pipelineID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := c.subscription.PipelineID
	return pipelineID == 0 || sub == 0 || sub == pipelineID
}

// trySend queues msg without blocking. It reports false when the client is
// gone or its queue is full.
func (c *client) trySend(msg events.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close closes the connection and the send queue once
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

// Server is the pipeboard live-update daemon. It relays db_changed events
// from any client to every client subscribed to the event's pipeline.
type Server struct {
	socketPath      string
	listener        net.Listener
	opts            Options
	clients         map[*client]struct{}
	mu              sync.RWMutex
	broadcast       chan events.Event
	metrics         *Metrics
	sequenceCounter atomic.Int64
	shutdownOnce    sync.Once
	done            chan struct{}
}

// NewServer creates a new daemon server listening on socketPath
func NewServer(socketPath string, opts Options) (*Server, error) {
	opts.applyDefaults()

	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		opts:       opts,
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan events.Event, opts.BroadcastBuffer),
		metrics:    NewMetrics(),
		done:       make(chan struct{}),
	}, nil
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the daemon until ctx is cancelled or Shutdown is called.
// The accept, broadcast and health loops (and the metrics endpoint when
// configured) run in one errgroup; the first failure stops them all.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket", s.socketPath, "metrics_addr", s.opts.MetricsAddr)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.done:
		}
		s.Shutdown()
		return nil
	})
	g.Go(s.acceptLoop)
	g.Go(func() error { return s.broadcastLoop(gctx) })
	g.Go(func() error { return s.monitorHealth(gctx) })

	if s.opts.MetricsAddr != "" {
		g.Go(func() error { return s.serveMetrics(gctx) })
	}

	err := g.Wait()
	slog.Info("daemon stopped", "error", err)
	return err
}

// acceptLoop accepts client connections until the listener is closed
func (s *Server) acceptLoop() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShutdown() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Shutdown()
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.opts.ClientBuffer),
			lastSeen: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = struct{}{}
		count := len(s.clients)
		s.mu.Unlock()

		s.metrics.IncConnections()
		s.metrics.SetConnectedClients(count)
		slog.Info("client connected", "clients", count)

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop stamps sequence numbers and distributes events to subscribed clients
func (s *Server) broadcastLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil

		case event := <-s.broadcast:
			event.SequenceID = s.sequenceCounter.Add(1)
			s.metrics.IncBroadcasts()

			msg := events.Message{
				Version: events.ProtocolVersion,
				Type:    events.MessageEvent,
				Event:   &event,
			}

			for _, c := range s.snapshotClients() {
				if !c.subscribedTo(event.PipelineID) {
					continue
				}
				if !s.sendToClient(c, msg) {
					s.metrics.IncEventsDropped(dropClientQueueFull)
					slog.Warn("client send queue full, event dropped", "pipeline_id", event.PipelineID)
				}
			}
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		slog.Info("client disconnected", "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		c.mu.Lock()
		c.lastSeen = time.Now()
		c.mu.Unlock()

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case events.MessageEvent:
			if msg.Event == nil {
				continue
			}
			s.metrics.IncEventsReceived()
			if err := s.Broadcast(*msg.Event); err != nil {
				slog.Warn("event dropped", "pipeline_id", msg.Event.PipelineID, "error", err)
			}

		case events.MessageSubscribe:
			if msg.Subscribe != nil {
				c.mu.Lock()
				c.subscription = *msg.Subscribe
				c.mu.Unlock()
				slog.Debug("client subscribed", "pipeline_id", msg.Subscribe.PipelineID)
			}

		case events.MessagePing:
			s.sendToClient(c, events.Message{Version: events.ProtocolVersion, Type: events.MessagePong})

		case events.MessagePong:
			// lastSeen already updated
		}
	}
}

// clientWriter drains a client's send queue onto its connection
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			s.removeClient(c)
			return
		}
	}
}

// monitorHealth pings clients and removes the ones that stopped answering
func (s *Server) monitorHealth(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()

	ping := events.Message{
		Version: events.ProtocolVersion,
		Type:    events.MessagePing,
		Event:   &events.Event{Type: events.EventPing},
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case now := <-ticker.C:
			for _, c := range s.snapshotClients() {
				c.mu.Lock()
				silent := now.Sub(c.lastSeen)
				c.mu.Unlock()

				if silent > s.opts.StaleAfter {
					slog.Info("removing stale client", "silent_for", silent)
					s.metrics.IncStaleRemoved()
					s.removeClient(c)
					continue
				}
				if !s.sendToClient(c, ping) {
					slog.Debug("failed to queue ping")
				}
			}
		}
	}
}

// serveMetrics exposes the prometheus registry over HTTP until ctx ends
func (s *Server) serveMetrics(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())

	srv := &http.Server{
		Addr:              s.opts.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	case <-s.done:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Broadcast queues an event for distribution (non-blocking)
func (s *Server) Broadcast(event events.Event) error {
	if s.isShutdown() {
		return fmt.Errorf("daemon is shut down")
	}
	select {
	case s.broadcast <- event:
		return nil
	default:
		s.metrics.IncEventsDropped(dropBroadcastFull)
		return fmt.Errorf("broadcast channel full")
	}
}

// Shutdown stops the loops, disconnects every client and removes the socket.
// It is safe to call more than once.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon")
		close(s.done)

		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Warn("error closing listener", "error", err)
		}

		s.mu.Lock()
		clients := s.clients
		s.clients = make(map[*client]struct{})
		s.mu.Unlock()

		for c := range clients {
			c.close()
		}
		s.metrics.SetConnectedClients(0)

		if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove socket file", "error", err)
		}
	})
}

func (s *Server) isShutdown() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) snapshotClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	return clients
}

// removeClient unregisters and closes a client; safe to call repeatedly
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	count := len(s.clients)
	s.mu.Unlock()

	c.close()
	s.metrics.SetConnectedClients(count)
}

// sendToClient queues a message for a client and counts it
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	if !c.trySend(msg) {
		return false
	}
	s.metrics.IncEventsSent()
	return true
}
