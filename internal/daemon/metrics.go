package daemon

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "pipeboard"

// Drop reasons recorded on events_dropped_total
const (
	dropClientQueueFull = "client_queue_full"
	dropBroadcastFull   = "broadcast_full"
)

// Metrics tracks daemon statistics as prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	eventsSent       prometheus.Counter
	eventsReceived   prometheus.Counter
	eventsDropped    *prometheus.CounterVec
	broadcasts       prometheus.Counter
	connections      prometheus.Counter
	staleRemoved     prometheus.Counter
	connectedClients prometheus.Gauge

	StartTime time.Time
}

// NewMetrics creates a new Metrics instance with every collector registered
func NewMetrics() *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		StartTime: time.Now(),
	}

	m.eventsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "daemon",
		Name:      "events_sent_total",
		Help:      "Messages queued for delivery to clients, pings included",
	})
	m.eventsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "daemon",
		Name:      "events_received_total",
		Help:      "Change events received from clients",
	})
	m.eventsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "daemon",
		Name:      "events_dropped_total",
		Help:      "Messages dropped because a queue was full",
	}, []string{"reason"})
	m.broadcasts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "daemon",
		Name:      "broadcasts_total",
		Help:      "Events fanned out to subscribers",
	})
	m.connections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "daemon",
		Name:      "connections_total",
		Help:      "Client connections accepted",
	})
	m.staleRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "daemon",
		Name:      "stale_clients_removed_total",
		Help:      "Clients disconnected for missing pongs",
	})
	m.connectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "daemon",
		Name:      "connected_clients",
		Help:      "Currently connected clients",
	})

	m.registry.MustRegister(
		m.eventsSent,
		m.eventsReceived,
		m.eventsDropped,
		m.broadcasts,
		m.connections,
		m.staleRemoved,
		m.connectedClients,
		collectors.NewGoCollector(),
	)

	return m
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncEventsSent() { m.eventsSent.Inc() }
func (m *Metrics) IncEventsReceived() { m.eventsReceived.Inc() }
func (m *Metrics) IncEventsDropped(reason string) { m.eventsDropped.WithLabelValues(reason).Inc() }
func (m *Metrics) IncBroadcasts() { m.broadcasts.Inc() }
func (m *Metrics) IncConnections() { m.connections.Inc() }
func (m *Metrics) IncStaleRemoved() { m.staleRemoved.Inc() }
func (m *Metrics) SetConnectedClients(count int) { m.connectedClients.Set(float64(count)) }

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsSent       int64     `json:"events_sent"`
	EventsReceived   int64     `json:"events_received"`
	EventsDropped    int64     `json:"events_dropped"`
	Broadcasts       int64     `json:"broadcasts"`
	Connections      int64     `json:"connections"`
	StaleRemoved     int64     `json:"stale_removed"`
	ConnectedClients int64     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot gathers the registry and returns the daemon's own values.
// Label dimensions are summed.
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		StartTime: m.StartTime,
		Uptime:    time.Since(m.StartTime).String(),
	}

	families, err := m.registry.Gather()
	if err != nil {
		return snap
	}

	targets := map[string]*int64{
		"pipeboard_daemon_events_sent_total":           &snap.EventsSent,
		"pipeboard_daemon_events_received_total":       &snap.EventsReceived,
		"pipeboard_daemon_events_dropped_total":        &snap.EventsDropped,
		"pipeboard_daemon_broadcasts_total":            &snap.Broadcasts,
		"pipeboard_daemon_connections_total":           &snap.Connections,
		"pipeboard_daemon_stale_clients_removed_total": &snap.StaleRemoved,
		"pipeboard_daemon_connected_clients":           &snap.ConnectedClients,
	}
	for _, family := range families {
		dst, ok := targets[family.GetName()]
		if !ok {
			continue
		}
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue() + metric.GetGauge().GetValue()
		}
		*dst = int64(total)
	}
	return snap
}
