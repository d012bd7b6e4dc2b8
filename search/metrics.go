package search

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus counters for the resolution pipeline.
type Metrics struct {
	Searches  *prometheus.CounterVec // labels: mode={proximity,exact,text}
	Redirects *prometheus.CounterVec // labels: kind={zip,state_code,state_name,city_state,freeform}
	Geocodes  *prometheus.CounterVec // labels: outcome={hit,miss}
	Suggests  prometheus.Counter
}

// NewMetrics creates and registers pipeline metrics with the default
// Prometheus registry. Call once at process start.
func NewMetrics() *Metrics {
	m := &Metrics{
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "directory",
			Name:      "searches_total",
			Help:      "Full searches served, by result mode.",
		}, []string{"mode"}),
		Redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "directory",
			Name:      "redirects_total",
			Help:      "Queries resolved to a canonical page, by query kind.",
		}, []string{"kind"}),
		Geocodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "directory",
			Name:      "geocodes_total",
			Help:      "Geocoder calls, by outcome.",
		}, []string{"outcome"}),
		Suggests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "directory",
			Name:      "suggest_requests_total",
			Help:      "Autocomplete requests served.",
		}),
	}

	prometheus.MustRegister(m.Searches, m.Redirects, m.Geocodes, m.Suggests)
	return m
}

func (m *Metrics) countSearch(mode string) {
	if m != nil {
		m.Searches.WithLabelValues(mode).Inc()
	}
}

func (m *Metrics) countRedirect(kind Kind) {
	if m != nil {
		m.Redirects.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) countGeocode(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.Geocodes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) countSuggest() {
	if m != nil {
		m.Suggests.Inc()
	}
}
