package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Client represents a connection to the pipeboard daemon for live updates.
// It handles event sending, receiving, batching, reconnection, and subscriptions.
type Client struct {
	socketPath string
	origin     string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching configuration
	eventQueue  chan Event
	debounce    time.Duration
	closed      bool // Prevent double-close panics
	batcherOnce sync.Once
	batcherDone chan struct{}

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	// Subscription state, replayed after a reconnect
	currentPipelineID int

	// Event tracking
	lastSequence int64

	notify NotifyFunc

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a new event client but does not connect.
// The socket path should be the full path to the Unix domain socket.
// Batching debounce defaults to 100ms and can be tuned with PIPEBOARD_EVENT_DEBOUNCE_MS.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is required")
	}

	debounceMs := 100
	if envVal := os.Getenv("PIPEBOARD_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		origin:      uuid.NewString(),
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		batcherDone: make(chan struct{}),
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Origin returns the id stamped on every event this client sends
func (c *Client) Origin() string {
	if c == nil {
		return ""
	}
	return c.origin
}

// SetNotifyFunc registers a callback for connection state changes
func (c *Client) SetNotifyFunc(fn NotifyFunc) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

func (c *Client) notifyUser(level, message string) {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn(level, message)
	}
}

// Connect establishes a connection to the daemon socket and
// (re)sends the current subscription.
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", ClassifyDaemonError(err))
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)
	// Sequence ids restart when the daemon restarts
	c.lastSequence = 0

	msg := Message{
		Version:   ProtocolVersion,
		Type:      MessageSubscribe,
		Subscribe: &SubscribeMessage{PipelineID: c.currentPipelineID},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Debug("error closing connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	c.batcherOnce.Do(func() {
		go c.startBatcher()
	})

	return nil
}

// SendEvent queues an event to be sent to the daemon.
// Events are batched and sent in bursts within the debounce window.
// Returns an error if the queue is full (non-blocking send).
func (c *Client) SendEvent(event Event) error {
	if c == nil {
		return ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startBatcher runs in a goroutine and batches events from the queue.
// It sends a single event every debounce tick if any events are pending.
// Events from several pipelines collapse into one event with PipelineID 0.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending bool
	var pipelineID int
	var hasMultiplePipelines bool

	track := func(evt Event) {
		if !pending {
			pending = true
			pipelineID = evt.PipelineID
			hasMultiplePipelines = false
			return
		}
		if pipelineID != evt.PipelineID {
			hasMultiplePipelines = true
		}
	}

	flushPending := func() {
		if !pending {
			return
		}
		batchPipelineID := pipelineID
		if hasMultiplePipelines {
			batchPipelineID = 0
		}

		if err := c.sendToSocket(Message{
			Version: ProtocolVersion,
			Type:    MessageEvent,
			Event: &Event{
				Type:       EventDatabaseChanged,
				PipelineID: batchPipelineID,
				Origin:     c.origin,
				Timestamp:  time.Now(),
			},
		}); err != nil && !isConnectionError(err) {
			slog.Warn("failed to send batched event", "error", err)
		}
		pending = false
	}

	for {
		select {
		case <-c.ctx.Done():
			// Drain whatever was queued before Close
			for {
				select {
				case evt := <-c.eventQueue:
					track(evt)
				default:
					flushPending()
					return
				}
			}

		case evt := <-c.eventQueue:
			track(evt)

		case <-ticker.C:
			flushPending()
		}
	}
}

// sendToSocket writes one message to the daemon socket.
func (c *Client) sendToSocket(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	// Set a short write deadline to detect dead connections
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	return c.encoder.Encode(msg)
}

// Listen starts listening for events from the daemon.
// It returns a channel that receives events and handles reconnection automatically.
// Events this client sent itself are not delivered.
// The channel is closed when ctx is done or reconnection fails.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	if c == nil {
		close(eventChan)
		return eventChan, ErrNilClient
	}
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

// listenLoop reads events from the daemon and handles reconnection.
func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	// Unblock a pending read as soon as the caller gives up
	stop := context.AfterFunc(ctx, c.interruptRead)
	defer stop()

	for {
		err := c.readEvents(ctx, eventChan)
		if ctx.Err() != nil || c.ctx.Err() != nil {
			return
		}

		slog.Info("connection to daemon lost, reconnecting", "error", err)
		c.notifyUser("warning", "Live updates disconnected, reconnecting...")

		if !c.reconnect(ctx) {
			slog.Warn("failed to reconnect to daemon, giving up", "attempts", c.maxRetries)
			c.notifyUser("error", "Live updates unavailable")
			return
		}

		slog.Info("reconnected to daemon")
		c.notifyUser("info", "Live updates reconnected")
	}
}

// readEvents reads messages from the socket and forwards events to eventChan.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		if err := ctx.Err(); err != nil {
			c.mu.Unlock()
			return err
		}
		// Detect hung connections; the daemon pings every 30 seconds
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case MessageEvent:
			if msg.Event == nil || msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			if msg.Event.Origin != "" && msg.Event.Origin == c.origin {
				continue
			}
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case MessagePing:
			err := c.sendToSocket(Message{
				Version: ProtocolVersion,
				Type:    MessagePong,
				Event:   &Event{Type: EventPong},
			})
			if err != nil && !isConnectionError(err) {
				slog.Debug("failed to send pong", "error", err)
			}
		}
	}
}

// interruptRead expires the read deadline so a blocked Decode returns
func (c *Client) interruptRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.SetReadDeadline(time.Now())
	}
}

// isConnectionError reports whether err means the socket is gone
func isConnectionError(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, ErrNotConnected)
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
// It tries up to maxRetries times, doubling the delay each time.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	c.mu.Lock()
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Debug("error closing connection during reconnect", "error", err)
		}
		c.conn = nil
	}
	c.mu.Unlock()

	for i := 0; i < c.maxRetries; i++ {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-c.ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		if err := c.Connect(ctx); err == nil {
			slog.Debug("reconnected to daemon", "attempt", i+1, "max_retries", c.maxRetries)
			return true
		} else if errors.Is(err, ErrClientClosed) {
			return false
		}

		slog.Debug("reconnection attempt failed", "attempt", i+1, "next_delay", delay*2)
		delay *= 2 // 1s, 2s, 4s, 8s, 16s
	}

	return false
}

// Subscribe changes the subscription to a specific pipeline.
// PipelineID 0 means subscribe to all pipelines.
func (c *Client) Subscribe(pipelineID int) error {
	if c == nil {
		return ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentPipelineID = pipelineID

	if c.conn == nil {
		return ErrNotConnected
	}

	return c.encoder.Encode(Message{
		Version:   ProtocolVersion,
		Type:      MessageSubscribe,
		Subscribe: &SubscribeMessage{PipelineID: pipelineID},
	})
}

// Close flushes pending events, closes the connection and stops all goroutines.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()

	// The batcher only exists once Connect has succeeded
	started := true
	c.batcherOnce.Do(func() {
		started = false
	})
	if started {
		<-c.batcherDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}

	return nil
}
