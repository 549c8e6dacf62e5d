// Package telemetry exposes session activity as Prometheus metrics.
// Collector implements both prometheus.Collector (for registration)
// and session.Metrics (for the driver to call into directly), the
// same Describe/Collect shape the TCP info exporter in the example
// corpus uses for per-connection stats.
package telemetry

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates counts and gauges across every session sharing
// it — typically one Collector per process, registered once.
type Collector struct {
	mu sync.Mutex

	sent          *prometheus.CounterVec
	received      *prometheus.CounterVec
	pendingGauge  prometheus.Gauge
	keepAliveLoss prometheus.Counter
}

// NewCollector builds a Collector whose metric names are prefixed with
// prefix (e.g. "smppctl").
func NewCollector(prefix string, constLabels prometheus.Labels) *Collector {
	return &Collector{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        fmt.Sprintf("%s_pdus_sent_total", prefix),
			Help:        "PDUs sent, by command ID.",
			ConstLabels: constLabels,
		}, []string{"command_id"}),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        fmt.Sprintf("%s_pdus_received_total", prefix),
			Help:        "PDUs received, by command ID.",
			ConstLabels: constLabels,
		}, []string{"command_id"}),
		pendingGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        fmt.Sprintf("%s_pending_responses", prefix),
			Help:        "Requests awaiting a matching response, as last reported by any session using this collector.",
			ConstLabels: constLabels,
		}),
		keepAliveLoss: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        fmt.Sprintf("%s_keepalive_losses_total", prefix),
			Help:        "Sessions closed because an enquire_link went unanswered within the response timeout.",
			ConstLabels: constLabels,
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.sent.Describe(ch)
	c.received.Describe(ch)
	ch <- c.pendingGauge.Desc()
	ch <- c.keepAliveLoss.Desc()
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.sent.Collect(ch)
	c.received.Collect(ch)
	ch <- c.pendingGauge
	ch <- c.keepAliveLoss
}

// ObserveSent implements session.Metrics.
func (c *Collector) ObserveSent(commandID uint32) {
	c.sent.WithLabelValues(commandIDLabel(commandID)).Inc()
}

// ObserveReceived implements session.Metrics.
func (c *Collector) ObserveReceived(commandID uint32) {
	c.received.WithLabelValues(commandIDLabel(commandID)).Inc()
}

// SetPendingCount implements session.Metrics. The gauge is replaced,
// not added to: when several sessions share one Collector, the last
// reported count wins.
func (c *Collector) SetPendingCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingGauge.Set(float64(n))
}

// ObserveKeepAliveLoss implements session.Metrics.
func (c *Collector) ObserveKeepAliveLoss() {
	c.keepAliveLoss.Inc()
}

func commandIDLabel(id uint32) string {
	return fmt.Sprintf("0x%08x", id)
}
