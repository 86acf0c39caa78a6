package events

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// ============================================================================
// Test Helpers
// ============================================================================

// mockDaemon is a minimal daemon that records client messages and can push messages back
type mockDaemon struct {
	socketPath string
	listener   net.Listener
	received   chan Message

	mu    sync.Mutex
	conns []net.Conn
}

// setupMockDaemon starts a mock daemon on a temp socket
func setupMockDaemon(t *testing.T) *mockDaemon {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "test.sock")
	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to create mock daemon listener: %v", err)
	}

	d := &mockDaemon{
		socketPath: socketPath,
		listener:   listener,
		received:   make(chan Message, 32),
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			d.mu.Lock()
			d.conns = append(d.conns, conn)
			d.mu.Unlock()

			go func(c net.Conn) {
				defer func() { _ = c.Close() }()
				decoder := json.NewDecoder(c)
				for {
					var msg Message
					if err := decoder.Decode(&msg); err != nil {
						return
					}
					select {
					case d.received <- msg:
					default:
					}
				}
			}(conn)
		}
	}()

	t.Cleanup(d.close)
	return d
}

func (d *mockDaemon) close() {
	_ = d.listener.Close()
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.conns {
		_ = c.Close()
	}
}

// push sends msg to every connected client
func (d *mockDaemon) push(t *testing.T, msg Message) {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.conns {
		if err := json.NewEncoder(c).Encode(msg); err != nil {
			t.Fatalf("Failed to push message: %v", err)
		}
	}
}

// waitFor returns the next received message of the given type
func (d *mockDaemon) waitFor(t *testing.T, msgType string) Message {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-d.received:
			if msg.Type == msgType {
				return msg
			}
		case <-timeout:
			t.Fatalf("Timed out waiting for %q message", msgType)
			return Message{}
		}
	}
}

func newTestClient(t *testing.T, socketPath string) *Client {
	t.Helper()
	client, err := NewClient(socketPath)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	client.debounce = 10 * time.Millisecond
	client.baseDelay = 10 * time.Millisecond
	client.maxRetries = 2
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// ============================================================================
// Client Tests
// ============================================================================

func TestNewClient_RequiresSocketPath(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("Expected error for empty socket path")
	}
}

func TestNewClient_CustomDebounce(t *testing.T) {
	t.Setenv("PIPEBOARD_EVENT_DEBOUNCE_MS", "250")

	client, err := NewClient(filepath.Join(t.TempDir(), "pipeboard.sock"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer func() { _ = client.Close() }()

	if client.debounce != 250*time.Millisecond {
		t.Errorf("Expected debounce 250ms, got %v", client.debounce)
	}
	if client.Origin() == "" {
		t.Error("Expected a non-empty origin")
	}
}

func TestClient_DistinctOrigins(t *testing.T) {
	a := newTestClient(t, "/tmp/a.sock")
	b := newTestClient(t, "/tmp/b.sock")
	if a.Origin() == b.Origin() {
		t.Error("Expected each client to have its own origin")
	}
}

func TestConnect_SendsSubscription(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)

	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	msg := d.waitFor(t, MessageSubscribe)
	if msg.Version != ProtocolVersion {
		t.Errorf("Expected version %d, got %d", ProtocolVersion, msg.Version)
	}
	if msg.Subscribe == nil || msg.Subscribe.PipelineID != 0 {
		t.Errorf("Expected initial subscription to all pipelines, got %+v", msg.Subscribe)
	}
}

func TestConnect_NoDaemon(t *testing.T) {
	client := newTestClient(t, filepath.Join(t.TempDir(), "missing.sock"))

	err := client.Connect(context.Background())
	if err == nil {
		t.Fatal("Expected connect to fail without a daemon")
	}
	var daemonErr *DaemonError
	if !errors.As(err, &daemonErr) {
		t.Fatalf("Expected DaemonError in chain, got %v", err)
	}
	if daemonErr.Code != ErrSocketNotFound {
		t.Errorf("Expected ErrSocketNotFound, got %v", daemonErr.Code)
	}
}

func TestSubscribe(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	d.waitFor(t, MessageSubscribe)

	if err := client.Subscribe(7); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	msg := d.waitFor(t, MessageSubscribe)
	if msg.Subscribe.PipelineID != 7 {
		t.Errorf("Expected subscription to pipeline 7, got %d", msg.Subscribe.PipelineID)
	}
}

func TestSubscribe_NotConnected(t *testing.T) {
	client := newTestClient(t, "/tmp/none.sock")
	if err := client.Subscribe(3); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
	// The subscription is remembered for the next Connect
	if client.currentPipelineID != 3 {
		t.Errorf("Expected remembered pipeline 3, got %d", client.currentPipelineID)
	}
}

func TestSendEvent_BatchesSamePipeline(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)
	client.debounce = 50 * time.Millisecond

	// Queue before connecting so every event lands in the first batch window
	for i := 0; i < 5; i++ {
		if err := client.SendEvent(Event{Type: EventDatabaseChanged, PipelineID: 4}); err != nil {
			t.Fatalf("SendEvent failed: %v", err)
		}
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	msg := d.waitFor(t, MessageEvent)
	if msg.Event.PipelineID != 4 {
		t.Errorf("Expected batched event for pipeline 4, got %d", msg.Event.PipelineID)
	}
	if msg.Event.Origin != client.Origin() {
		t.Errorf("Expected origin %s, got %s", client.Origin(), msg.Event.Origin)
	}

	// Only one event goes out for the whole batch
	select {
	case extra := <-d.received:
		if extra.Type == MessageEvent {
			t.Errorf("Expected a single batched event, got another: %+v", extra.Event)
		}
	case <-time.After(150 * time.Millisecond):
	}
}

func TestSendEvent_MixedPipelinesCollapse(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)
	client.debounce = 50 * time.Millisecond

	_ = client.SendEvent(Event{Type: EventDatabaseChanged, PipelineID: 1})
	_ = client.SendEvent(Event{Type: EventDatabaseChanged, PipelineID: 2})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	msg := d.waitFor(t, MessageEvent)
	if msg.Event.PipelineID != 0 {
		t.Errorf("Expected collapsed pipeline id 0, got %d", msg.Event.PipelineID)
	}
}

func TestSendEvent_AfterClose(t *testing.T) {
	client := newTestClient(t, "/tmp/closed.sock")
	_ = client.Close()
	if err := client.SendEvent(Event{Type: EventDatabaseChanged}); !errors.Is(err, ErrClientClosed) {
		t.Errorf("Expected ErrClientClosed, got %v", err)
	}
}

func TestClose_FlushesPending(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)
	client.debounce = time.Hour
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	d.waitFor(t, MessageSubscribe)

	_ = client.SendEvent(Event{Type: EventDatabaseChanged, PipelineID: 9})
	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	msg := d.waitFor(t, MessageEvent)
	if msg.Event.PipelineID != 9 {
		t.Errorf("Expected flushed event for pipeline 9, got %d", msg.Event.PipelineID)
	}
}

func TestClose_WithoutConnect(t *testing.T) {
	client, err := NewClient("/tmp/never.sock")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- client.Close() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a client that never connected")
	}
	// Idempotent
	if err := client.Close(); err != nil {
		t.Errorf("Second Close returned %v", err)
	}
}

func TestListen_DeliversForeignEventsOnly(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	d.waitFor(t, MessageSubscribe)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventChan, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	// Own echo, stale sequence, then a foreign event
	d.push(t, Message{Type: MessageEvent, Event: &Event{Type: EventDatabaseChanged, PipelineID: 1, Origin: client.Origin(), SequenceID: 1}})
	d.push(t, Message{Type: MessageEvent, Event: &Event{Type: EventDatabaseChanged, PipelineID: 1, Origin: "other", SequenceID: 1}})
	d.push(t, Message{Type: MessageEvent, Event: &Event{Type: EventDatabaseChanged, PipelineID: 2, Origin: "other", SequenceID: 2}})

	select {
	case evt := <-eventChan:
		if evt.PipelineID != 2 || evt.SequenceID != 2 {
			t.Errorf("Expected foreign event seq 2 for pipeline 2, got %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestListen_RespondsToPing(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	d.waitFor(t, MessageSubscribe)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := client.Listen(ctx); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	d.push(t, Message{Version: ProtocolVersion, Type: MessagePing})
	d.waitFor(t, MessagePong)
}

func TestListen_ClosesChannelWhenContextDone(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	d := setupMockDaemon(t)
	client, err := NewClient(d.socketPath)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	eventChan, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	cancel()

	select {
	case _, ok := <-eventChan:
		if ok {
			t.Error("Expected channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not stop after cancel")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	d.close()
}

func TestListen_ReconnectsAfterDaemonRestart(t *testing.T) {
	d := setupMockDaemon(t)
	client := newTestClient(t, d.socketPath)
	client.baseDelay = 20 * time.Millisecond
	client.maxRetries = 10
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	d.waitFor(t, MessageSubscribe)
	if err := client.Subscribe(5); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	d.waitFor(t, MessageSubscribe)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := client.Listen(ctx); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	// Drop the live connection; the listener stays up so the redial succeeds
	d.mu.Lock()
	for _, c := range d.conns {
		_ = c.Close()
	}
	d.conns = nil
	d.mu.Unlock()

	msg := d.waitFor(t, MessageSubscribe)
	if msg.Subscribe.PipelineID != 5 {
		t.Errorf("Expected subscription to be replayed for pipeline 5, got %d", msg.Subscribe.PipelineID)
	}
}

// ============================================================================
// Nil safety
// ============================================================================

func TestNilClientMethods(t *testing.T) {
	var client *Client

	client.SetNotifyFunc(func(level, message string) {})

	if err := client.Connect(context.Background()); !errors.Is(err, ErrNilClient) {
		t.Errorf("Expected ErrNilClient from Connect, got %v", err)
	}
	if err := client.SendEvent(Event{Type: EventDatabaseChanged}); !errors.Is(err, ErrNilClient) {
		t.Errorf("Expected ErrNilClient from SendEvent, got %v", err)
	}
	if err := client.Subscribe(1); !errors.Is(err, ErrNilClient) {
		t.Errorf("Expected ErrNilClient from Subscribe, got %v", err)
	}
	if client.Origin() != "" {
		t.Error("Expected empty origin from nil client")
	}

	eventChan, err := client.Listen(context.Background())
	if err == nil {
		t.Error("Expected error from Listen on nil client")
	}
	if _, ok := <-eventChan; ok {
		t.Error("Expected closed channel from nil client Listen")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close should return nil on nil client, got %v", err)
	}
}
