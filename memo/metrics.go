package memo

import "github.com/prometheus/client_golang/prometheus"

// Collector exports the activity of a Cache as Prometheus metrics:
//
//	<namespace>_memo_hits_total     counter
//	<namespace>_memo_misses_total   counter
//	<namespace>_memo_entries        gauge
//
// Register it with a prometheus.Registerer; it reads Cache.Stats on every scrape.
type Collector struct {
	cache   *Cache
	hits    *prometheus.Desc
	misses  *prometheus.Desc
	entries *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for c. constLabels are attached to every
// metric, which lets several caches share a registry.
func NewCollector(c *Cache, namespace string, constLabels prometheus.Labels) *Collector {
	return &Collector{
		cache: c,
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "memo", "hits_total"),
			"Fits served from the cache.",
			nil, constLabels,
		),
		misses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "memo", "misses_total"),
			"Fits computed because no cached result matched.",
			nil, constLabels,
		),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "memo", "entries"),
			"Cached regressions, including expired entries awaiting cleanup.",
			nil, constLabels,
		),
	}
}

// Describe implements prometheus.Collector.
func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- col.hits
	ch <- col.misses
	ch <- col.entries
}

// Collect implements prometheus.Collector.
func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	s := col.cache.Stats()
	ch <- prometheus.MustNewConstMetric(col.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(col.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(col.entries, prometheus.GaugeValue, float64(s.Entries))
}
