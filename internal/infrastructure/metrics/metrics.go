// Package metrics exposes Prometheus metrics for catalog listing and mutations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CatalogMetrics - Interface mà product service dùng; Noop khi không cấu hình
type CatalogMetrics interface {
	RecordListing(scope string, items int, hasMore bool, duration time.Duration)
	RecordCacheLookup(hit bool)
	RecordMutation(op, outcome string)
	RecordReshuffled(count int)
}

// Collector - Prometheus implementation
type Collector struct {
	listRequests *prometheus.CounterVec
	listLatency  *prometheus.HistogramVec
	pageSize     prometheus.Histogram
	cacheLookups *prometheus.CounterVec
	mutations    *prometheus.CounterVec
	reshuffled   prometheus.Counter
}

// NewCollector tạo Collector và register vào reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		listRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_list_requests_total",
			Help: "Listing requests by scope and whether another page exists",
		}, []string{"scope", "has_more"}),
		listLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_list_duration_seconds",
			Help:    "Listing latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"scope"}),
		pageSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_list_page_items",
			Help:    "Items returned per listing page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_list_cache_lookups_total",
			Help: "Listing page cache lookups",
		}, []string{"result"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Catalog mutations by operation and outcome",
		}, []string{"op", "outcome"}),
		reshuffled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_reshuffled_products_total",
			Help: "Products whose shuffle key was recomputed by the reshuffle job",
		}),
	}

	reg.MustRegister(
		c.listRequests,
		c.listLatency,
		c.pageSize,
		c.cacheLookups,
		c.mutations,
		c.reshuffled,
	)

	return c
}

func (c *Collector) RecordListing(scope string, items int, hasMore bool, duration time.Duration) {
	more := "false"
	if hasMore {
		more = "true"
	}
	c.listRequests.WithLabelValues(scope, more).Inc()
	c.listLatency.WithLabelValues(scope).Observe(duration.Seconds())
	c.pageSize.Observe(float64(items))
}

func (c *Collector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

func (c *Collector) RecordMutation(op, outcome string) {
	c.mutations.WithLabelValues(op, outcome).Inc()
}

func (c *Collector) RecordReshuffled(count int) {
	c.reshuffled.Add(float64(count))
}

// Noop - CatalogMetrics không làm gì (tests, worker không expose /metrics)
type Noop struct{}

func (Noop) RecordListing(string, int, bool, time.Duration) {}
func (Noop) RecordCacheLookup(bool)                         {}
func (Noop) RecordMutation(string, string)                  {}
func (Noop) RecordReshuffled(int)                           {}

// Handler trả về HTTP handler cho Prometheus scrape
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// PoolStatsFunc - Snapshot connection pool: acquired, idle, total, max
type PoolStatsFunc func() (acquired, idle, total, max int32)

// RegisterDBPool - Gauge cho pgx pool, đọc lúc scrape
func RegisterDBPool(reg prometheus.Registerer, stats PoolStatsFunc) {
	gauge := func(name, help string, pick func(a, i, t, m int32) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return float64(pick(stats()))
		})
	}

	reg.MustRegister(
		gauge("catalog_db_pool_acquired_conns", "Connections currently in use", func(a, _, _, _ int32) int32 { return a }),
		gauge("catalog_db_pool_idle_conns", "Idle connections", func(_, i, _, _ int32) int32 { return i }),
		gauge("catalog_db_pool_total_conns", "Total connections", func(_, _, t, _ int32) int32 { return t }),
		gauge("catalog_db_pool_max_conns", "Configured max connections", func(_, _, _, m int32) int32 { return m }),
	)
}
