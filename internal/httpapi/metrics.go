package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries the engine's counters on a private registry so tests can
// build isolated instances.
type Metrics struct {
	Registry *prometheus.Registry

	ListingsRequests prometheus.Counter
	MapBuilds        prometheus.Counter
	ReferralsAdded   prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		ListingsRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sb_listings_requests_total",
			Help: "Total listing reads served.",
		}),
		MapBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sb_map_builds_total",
			Help: "Total map documents built.",
		}),
		ReferralsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sb_referrals_added_total",
			Help: "Total referral paths recorded.",
		}),
	}
	reg.MustRegister(m.ListingsRequests, m.MapBuilds, m.ReferralsAdded)
	reg.MustRegister(collectors.NewGoCollector())
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
