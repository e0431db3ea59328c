package metrics

import (
	"errors"

	"github.com/npillmayer/elemtree/protocol"
	"github.com/npillmayer/elemtree/store"
	"github.com/npillmayer/elemtree/strtab"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the metrics of one or more stores. Gauges reflect the
// store which most recently applied a batch.
type Collector struct {
	batches    prometheus.Counter
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	elements   prometheus.Gauge
	roots      prometheus.Gauge
	errors     prometheus.Gauge
	warnings   prometheus.Gauge
	revision   prometheus.Gauge
}

// NewCollector creates a collector and registers its metrics with reg.
// A nil reg creates unregistered metrics, which is useful for tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		batches: factory.NewCounter(prometheus.CounterOpts{
			Name: "elemtree_batches_total",
			Help: "Total number of batches applied",
		}),
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elemtree_operations_total",
			Help: "Total number of operations applied, by opcode",
		}, []string{"opcode"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elemtree_batch_errors_total",
			Help: "Total number of batches stopped by a fatal error, by cause",
		}, []string{"kind"}),
		elements: factory.NewGauge(prometheus.GaugeOpts{
			Name: "elemtree_elements",
			Help: "Current number of visible elements across all roots",
		}),
		roots: factory.NewGauge(prometheus.GaugeOpts{
			Name: "elemtree_roots",
			Help: "Current number of roots",
		}),
		errors: factory.NewGauge(prometheus.GaugeOpts{
			Name: "elemtree_errors",
			Help: "Current number of errors reported for elements",
		}),
		warnings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "elemtree_warnings",
			Help: "Current number of warnings reported for elements",
		}),
		revision: factory.NewGauge(prometheus.GaugeOpts{
			Name: "elemtree_revision",
			Help: "Revision of the store after the last batch",
		}),
	}
}

// Attach subscribes the collector to the events of a store. The returned
// function detaches it.
func (c *Collector) Attach(s *store.Store) (detach func()) {
	tracer().Debugf("collector attached to store at revision %d", s.Revision())
	return s.Subscribe(func(ev store.Event) {
		if ev.Kind != store.EventMutated || ev.Report == nil {
			return
		}
		c.observe(s, ev.Report)
	})
}

func (c *Collector) observe(s *store.Store, report *store.BatchReport) {
	c.batches.Inc()
	for op, n := range report.OpCounts {
		c.operations.WithLabelValues(opcodeLabel(op)).Add(float64(n))
	}
	c.elements.Set(float64(s.NumElements()))
	c.roots.Set(float64(len(s.Roots())))
	c.errors.Set(float64(s.ErrorCount()))
	c.warnings.Set(float64(s.WarningCount()))
	c.revision.Set(float64(report.Revision))
}

// ObserveError counts a fatal error returned by ApplyBatch. nil errors are
// ignored.
func (c *Collector) ObserveError(err error) {
	if err == nil {
		return
	}
	kind := ErrorKind(err)
	tracer().Debugf("batch error of kind %s: %v", kind, err)
	c.failures.WithLabelValues(kind).Inc()
}

var kinds = []struct {
	sentinel error
	kind     string
}{
	{store.ErrDuplicateID, "duplicate-id"},
	{store.ErrInvalidID, "invalid-id"},
	{store.ErrUnknownParent, "unknown-parent"},
	{store.ErrUnknownID, "unknown-id"},
	{store.ErrNonLeafRemoval, "non-leaf-removal"},
	{store.ErrChildCountMismatch, "child-count-mismatch"},
	{store.ErrNotRoot, "not-root"},
	{store.ErrUnsupportedOperation, "unsupported-operation"},
	{store.ErrTruncatedBatch, "truncated"},
	{store.ErrClosed, "closed"},
	{strtab.ErrTruncated, "string-table"},
	{strtab.ErrInvalidCodePoint, "string-table"},
	{strtab.ErrIndexOutOfRange, "string-table"},
}

// ErrorKind classifies an error returned by ApplyBatch. Errors without a
// known cause are of kind "other".
func ErrorKind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return "other"
}

// opcodeLabel maps opcodes outside the protocol to a single label.
func opcodeLabel(op protocol.Opcode) string {
	if !op.Known() {
		return "unknown"
	}
	return op.String()
}
