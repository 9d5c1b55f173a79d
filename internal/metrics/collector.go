// Package metrics exposes RaSTA/SCI connection state as Prometheus
// metrics, grounded on the custom-Collector pattern of
// runZeroInc-sockstats' pkg/exporter/exporter.go: a mutex-guarded map of
// per-connection state, snapshotted into prometheus.Metric values on every
// Collect call rather than pushed incrementally.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// connStats is the bookkeeping kept for one RaSTA connection id.
type connStats struct {
	state              float64
	sequenceErrors     float64
	timeouts           float64
	heartbeatsSent     float64
	heartbeatsReceived float64
	telegramsSent      map[string]float64
	telegramsReceived  map[string]float64
}

func newConnStats() *connStats {
	return &connStats{
		telegramsSent:     make(map[string]float64),
		telegramsReceived: make(map[string]float64),
	}
}

// ConnectionCollector is a prometheus.Collector tracking per-id RaSTA
// connection state and SCI telegram counts. The zero value is not usable;
// construct with NewConnectionCollector.
type ConnectionCollector struct {
	mu    sync.Mutex
	conns map[uint32]*connStats

	stateDesc              *prometheus.Desc
	sequenceErrorsDesc     *prometheus.Desc
	timeoutsDesc           *prometheus.Desc
	heartbeatsSentDesc     *prometheus.Desc
	heartbeatsReceivedDesc *prometheus.Desc
	telegramsSentDesc      *prometheus.Desc
	telegramsReceivedDesc  *prometheus.Desc
}

// NewConnectionCollector builds a ConnectionCollector whose metric names
// carry the given prefix (e.g. "rasta").
func NewConnectionCollector(prefix string) *ConnectionCollector {
	idLabel := []string{"rasta_id"}
	protoLabel := []string{"rasta_id", "protocol"}
	return &ConnectionCollector{
		conns: make(map[uint32]*connStats),
		stateDesc: prometheus.NewDesc(
			prefix+"_connection_state", "Current rasta.State of the connection (0=Closed,1=Down,2=Start,3=Up).", idLabel, nil),
		sequenceErrorsDesc: prometheus.NewDesc(
			prefix+"_sequence_errors_total", "Sequence number confirmations that did not match the expected value.", idLabel, nil),
		timeoutsDesc: prometheus.NewDesc(
			prefix+"_timeouts_total", "Reads that exceeded the RaSTA timeout.", idLabel, nil),
		heartbeatsSentDesc: prometheus.NewDesc(
			prefix+"_heartbeats_sent_total", "Heartbeat messages sent.", idLabel, nil),
		heartbeatsReceivedDesc: prometheus.NewDesc(
			prefix+"_heartbeats_received_total", "Heartbeat messages received.", idLabel, nil),
		telegramsSentDesc: prometheus.NewDesc(
			prefix+"_sci_telegrams_sent_total", "SCI telegrams sent, by sub-protocol.", protoLabel, nil),
		telegramsReceivedDesc: prometheus.NewDesc(
			prefix+"_sci_telegrams_received_total", "SCI telegrams received, by sub-protocol.", protoLabel, nil),
	}
}

func (c *ConnectionCollector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.stateDesc
	descs <- c.sequenceErrorsDesc
	descs <- c.timeoutsDesc
	descs <- c.heartbeatsSentDesc
	descs <- c.heartbeatsReceivedDesc
	descs <- c.telegramsSentDesc
	descs <- c.telegramsReceivedDesc
}

func (c *ConnectionCollector) Collect(metrics chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, s := range c.conns {
		label := idLabelValue(id)
		metrics <- prometheus.MustNewConstMetric(c.stateDesc, prometheus.GaugeValue, s.state, label)
		metrics <- prometheus.MustNewConstMetric(c.sequenceErrorsDesc, prometheus.CounterValue, s.sequenceErrors, label)
		metrics <- prometheus.MustNewConstMetric(c.timeoutsDesc, prometheus.CounterValue, s.timeouts, label)
		metrics <- prometheus.MustNewConstMetric(c.heartbeatsSentDesc, prometheus.CounterValue, s.heartbeatsSent, label)
		metrics <- prometheus.MustNewConstMetric(c.heartbeatsReceivedDesc, prometheus.CounterValue, s.heartbeatsReceived, label)
		for protocol, n := range s.telegramsSent {
			metrics <- prometheus.MustNewConstMetric(c.telegramsSentDesc, prometheus.CounterValue, n, label, protocol)
		}
		for protocol, n := range s.telegramsReceived {
			metrics <- prometheus.MustNewConstMetric(c.telegramsReceivedDesc, prometheus.CounterValue, n, label, protocol)
		}
	}
}

// Add registers id for tracking, idempotently.
func (c *ConnectionCollector) Add(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.conns[id]; !ok {
		c.conns[id] = newConnStats()
	}
}

// Remove stops tracking id.
func (c *ConnectionCollector) Remove(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.conns, id)
}

func (c *ConnectionCollector) stat(id uint32) *connStats {
	s, ok := c.conns[id]
	if !ok {
		s = newConnStats()
		c.conns[id] = s
	}
	return s
}

// SetState records id's current connection state as an integer gauge value
// (see rasta.State's ordering).
func (c *ConnectionCollector) SetState(id uint32, state uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stat(id).state = float64(state)
}

func (c *ConnectionCollector) IncSequenceError(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stat(id).sequenceErrors++
}

func (c *ConnectionCollector) IncTimeout(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stat(id).timeouts++
}

func (c *ConnectionCollector) IncHeartbeatSent(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stat(id).heartbeatsSent++
}

func (c *ConnectionCollector) IncHeartbeatReceived(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stat(id).heartbeatsReceived++
}

func (c *ConnectionCollector) IncTelegramSent(id uint32, protocol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stat(id).telegramsSent[protocol]++
}

func (c *ConnectionCollector) IncTelegramReceived(id uint32, protocol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stat(id).telegramsReceived[protocol]++
}

func idLabelValue(id uint32) string {
	return fmt.Sprintf("%#08x", id)
}
