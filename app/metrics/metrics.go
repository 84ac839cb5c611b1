// Package metrics exposes store and proxy activity to Prometheus.
package metrics

import (
	"net/http"

	"estate-go/app/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	changes     *prometheus.CounterVec
	entities    *prometheus.GaugeVec
	loaded      *prometheus.GaugeVec
	userDeletes *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "store_changes_total",
			Help:      "Changes applied to the entity stores.",
		}, []string{"collection", "op"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "estate",
			Name:      "store_entities",
			Help:      "Records currently held per collection.",
		}, []string{"collection"}),
		loaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "estate",
			Name:      "store_loaded",
			Help:      "1 once a collection has been loaded from the backend.",
		}, []string{"collection"}),
		userDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "user_deletions_total",
			Help:      "User deletions proxied to the identity provider.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.changes, m.entities, m.loaded, m.userDeletes)
	return m
}

// Observe subscribes to every collection of state. The returned function
// detaches all subscriptions.
func (m *Metrics) Observe(state *store.Container) func() {
	var unsubs []func()
	for _, col := range state.Collections() {
		col := col
		m.record(col)
		unsubs = append(unsubs, col.Subscribe(func(ch store.Change) {
			m.changes.WithLabelValues(ch.Collection, ch.Op.String()).Inc()
			m.record(col)
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (m *Metrics) record(col store.Observable) {
	m.entities.WithLabelValues(col.Name()).Set(float64(col.Len()))
	loaded := 0.0
	if col.Loaded() {
		loaded = 1
	}
	m.loaded.WithLabelValues(col.Name()).Set(loaded)
}

// UserDeleted counts one proxied deletion; outcome is "success" or "failure".
func (m *Metrics) UserDeleted(outcome string) {
	m.userDeletes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
