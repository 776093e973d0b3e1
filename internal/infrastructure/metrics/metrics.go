// Package metrics expone los contadores Prometheus del núcleo de inventario.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stock"

// Metrics agrupa los colectores con un registro propio (no el global) para poder instanciarlo en tests.
type Metrics struct {
	registry *prometheus.Registry

	movements       *prometheus.CounterVec
	deletions       *prometheus.CounterVec
	partialFailures *prometheus.CounterVec
	casRetries      prometheus.Counter
	casConflicts    prometheus.Counter
	adjustDuration  prometheus.Histogram
	readFailures    *prometheus.CounterVec
}

// New crea y registra todos los colectores.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_total",
			Help:      "Movimientos procesados por dirección y resultado.",
		}, []string{"direction", "outcome"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movement_deletions_total",
			Help:      "Eliminaciones de movimientos por resultado.",
		}, []string{"outcome"}),
		partialFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_failures_total",
			Help:      "Operaciones con libro escrito y saldo sin actualizar.",
		}, []string{"operation"}),
		casRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_cas_retries_total",
			Help:      "Reintentos del compare-and-swap del saldo por carrera perdida.",
		}),
		casConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_cas_conflicts_total",
			Help:      "Ajustes de saldo que agotaron el presupuesto de reintentos.",
		}),
		adjustDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_adjust_duration_seconds",
			Help:      "Duración de Adjust incluyendo reintentos.",
			Buckets:   prometheus.DefBuckets,
		}),
		readFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_failures_total",
			Help:      "Lecturas degradadas a resultado vacío por proyección.",
		}, []string{"projection"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.movements, m.deletions, m.partialFailures,
		m.casRetries, m.casConflicts, m.adjustDuration, m.readFailures,
	)
	return m
}

// Handler sirve el registro en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro subyacente.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) MovementRecorded(direction, outcome string) {
	m.movements.WithLabelValues(direction, outcome).Inc()
}

func (m *Metrics) MovementDeleted(outcome string) {
	m.deletions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PartialFailure(operation string) {
	m.partialFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) BalanceRetry() { m.casRetries.Inc() }

func (m *Metrics) BalanceConflict() { m.casConflicts.Inc() }

func (m *Metrics) BalanceAdjusted(d time.Duration) {
	m.adjustDuration.Observe(d.Seconds())
}

func (m *Metrics) ReadFailure(projection string) {
	m.readFailures.WithLabelValues(projection).Inc()
}
