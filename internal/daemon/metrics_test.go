package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// ============================================================================
// Basic Metrics Tests
// ============================================================================

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("Expected NewMetrics to return non-nil")
	}

	snap := m.GetSnapshot()
	if snap.EventsSent != 0 || snap.EventsReceived != 0 || snap.Broadcasts != 0 {
		t.Errorf("Expected zero counters, got %+v", snap)
	}
	if snap.ConnectedClients != 0 {
		t.Errorf("Expected ConnectedClients to be 0, got %d", snap.ConnectedClients)
	}

	if time.Since(m.StartTime) > time.Second {
		t.Errorf("Expected StartTime to be recent, got %v", m.StartTime)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.IncEventsSent()
	m.IncEventsSent()
	m.IncEventsReceived()
	m.IncBroadcasts()
	m.IncConnections()
	m.IncConnections()
	m.IncConnections()
	m.IncStaleRemoved()

	if got := testutil.ToFloat64(m.eventsSent); got != 2 {
		t.Errorf("events_sent_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.eventsReceived); got != 1 {
		t.Errorf("events_received_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.connections); got != 3 {
		t.Errorf("connections_total = %v, want 3", got)
	}

	snap := m.GetSnapshot()
	if snap.EventsSent != 2 {
		t.Errorf("snapshot EventsSent = %d, want 2", snap.EventsSent)
	}
	if snap.Broadcasts != 1 {
		t.Errorf("snapshot Broadcasts = %d, want 1", snap.Broadcasts)
	}
	if snap.StaleRemoved != 1 {
		t.Errorf("snapshot StaleRemoved = %d, want 1", snap.StaleRemoved)
	}
}

func TestMetrics_DroppedByReason(t *testing.T) {
	m := NewMetrics()

	m.IncEventsDropped(dropClientQueueFull)
	m.IncEventsDropped(dropClientQueueFull)
	m.IncEventsDropped(dropBroadcastFull)

	if got := testutil.ToFloat64(m.eventsDropped.WithLabelValues(dropClientQueueFull)); got != 2 {
		t.Errorf("client_queue_full drops = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.eventsDropped.WithLabelValues(dropBroadcastFull)); got != 1 {
		t.Errorf("broadcast_full drops = %v, want 1", got)
	}

	// The snapshot sums all reasons
	if got := m.GetSnapshot().EventsDropped; got != 3 {
		t.Errorf("snapshot EventsDropped = %d, want 3", got)
	}
}

func TestMetrics_ConnectedClientsGauge(t *testing.T) {
	m := NewMetrics()

	m.SetConnectedClients(5)
	if got := m.GetSnapshot().ConnectedClients; got != 5 {
		t.Errorf("ConnectedClients = %d, want 5", got)
	}

	m.SetConnectedClients(2)
	if got := m.GetSnapshot().ConnectedClients; got != 2 {
		t.Errorf("ConnectedClients = %d, want 2 after decrease", got)
	}
}

// ============================================================================
// Concurrency Tests
// ============================================================================

func TestMetrics_ConcurrentIncrements(t *testing.T) {
	m := NewMetrics()

	const workers = 10
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.IncEventsSent()
				m.IncEventsDropped(dropClientQueueFull)
			}
		}()
	}
	wg.Wait()

	snap := m.GetSnapshot()
	if snap.EventsSent != workers*perWorker {
		t.Errorf("EventsSent = %d, want %d", snap.EventsSent, workers*perWorker)
	}
	if snap.EventsDropped != workers*perWorker {
		t.Errorf("EventsDropped = %d, want %d", snap.EventsDropped, workers*perWorker)
	}
}

// ============================================================================
// Exposition Tests
// ============================================================================

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.IncBroadcasts()
	m.IncEventsDropped(dropBroadcastFull)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"pipeboard_daemon_broadcasts_total 1",
		`pipeboard_daemon_events_dropped_total{reason="broadcast_full"} 1`,
		"pipeboard_daemon_connected_clients 0",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_GatherAndCompare(t *testing.T) {
	m := NewMetrics()
	m.IncConnections()

	expected := `
# HELP pipeboard_daemon_connections_total Client connections accepted
# TYPE pipeboard_daemon_connections_total counter
pipeboard_daemon_connections_total 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "pipeboard_daemon_connections_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestMetricsSnapshot_JSON(t *testing.T) {
	m := NewMetrics()
	m.IncEventsReceived()

	data, err := json.Marshal(m.GetSnapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["events_received"] != float64(1) {
		t.Errorf("events_received = %v, want 1", decoded["events_received"])
	}
	if _, ok := decoded["uptime"]; !ok {
		t.Error("snapshot JSON missing uptime")
	}
}
