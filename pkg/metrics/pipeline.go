package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records quote and checkout pipeline outcomes.
type PipelineMetrics struct {
	quoteDuration *prometheus.HistogramVec
	quoteOutcome  *prometheus.CounterVec
	quoteCache    *prometheus.CounterVec
	ordersPlaced  prometheus.Counter
	publishResult *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of delivery quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	quoteOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_outcomes_total",
		Help: "Delivery quote outcomes by result.",
	}, []string{"outcome"})
	quoteCache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_cache_total",
		Help: "Quote cache lookups by result.",
	}, []string{"result"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders accepted at checkout.",
	})
	publishResult := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_publish_total",
		Help: "Order event publish attempts by result.",
	}, []string{"result"})
	reg.MustRegister(quoteDuration, quoteOutcome, quoteCache, ordersPlaced, publishResult)
	return &PipelineMetrics{
		quoteDuration: quoteDuration,
		quoteOutcome:  quoteOutcome,
		quoteCache:    quoteCache,
		ordersPlaced:  ordersPlaced,
		publishResult: publishResult,
	}
}

// ObserveQuoteDuration records how long a quote took, labeled by source
// (engine or cache).
func (p *PipelineMetrics) ObserveQuoteDuration(source string, duration time.Duration) {
	if p == nil || p.quoteDuration == nil {
		return
	}
	p.quoteDuration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncQuoteOutcome increments the counter for a quote result label.
func (p *PipelineMetrics) IncQuoteOutcome(outcome string) {
	if p == nil || p.quoteOutcome == nil {
		return
	}
	p.quoteOutcome.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncQuoteCache increments the cache lookup counter (hit or miss).
func (p *PipelineMetrics) IncQuoteCache(result string) {
	if p == nil || p.quoteCache == nil {
		return
	}
	p.quoteCache.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncOrdersPlaced increments the accepted-order counter.
func (p *PipelineMetrics) IncOrdersPlaced() {
	if p == nil || p.ordersPlaced == nil {
		return
	}
	p.ordersPlaced.Inc()
}

// IncPublishResult increments the publisher counter (published, failed, terminal).
func (p *PipelineMetrics) IncPublishResult(result string) {
	if p == nil || p.publishResult == nil {
		return
	}
	p.publishResult.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
