package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
)

// metrics are the request instruments of the service
type metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	candidates *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer, e *engine.Engine) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcfcomplete_requests_total",
			Help: "Requests served, by endpoint and HTTP status code.",
		}, []string{"endpoint", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcfcomplete_request_duration_seconds",
			Help:    "Time spent answering a request.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"endpoint"}),
		candidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcfcomplete_candidates",
			Help:    "Number of candidates returned per completion request.",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.requests, m.duration, m.candidates, newGrammarCollector(e))
	return m
}

// grammarCollector reports the size of the loaded grammar and registries
// on each scrape.
type grammarCollector struct {
	engine *engine.Engine

	grammarNodes    *prometheus.Desc
	registryEntries *prometheus.Desc
}

func newGrammarCollector(e *engine.Engine) *grammarCollector {
	return &grammarCollector{
		engine: e,
		grammarNodes: prometheus.NewDesc(
			"mcfcomplete_grammar_nodes",
			"Number of nodes in the loaded grammar.",
			nil, nil,
		),
		registryEntries: prometheus.NewDesc(
			"mcfcomplete_registry_entries",
			"Number of identifiers per registry.",
			[]string{"registry"}, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *grammarCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.grammarNodes
	ch <- c.registryEntries
}

// Collect implements prometheus.Collector
func (c *grammarCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.grammarNodes, prometheus.GaugeValue, float64(c.engine.Tree().Size()))

	regs := c.engine.Registries()
	for _, name := range regs.Names() {
		ch <- prometheus.MustNewConstMetric(c.registryEntries, prometheus.GaugeValue, float64(regs.Len(name)), name)
	}
}
