// Package metrics exposes Prometheus instruments for booking activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	facilities *prometheus.CounterVec
	bookings   *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	cancels    *prometheus.CounterVec
	units      prometheus.Gauge
	active     prometheus.Gauge
}

// New builds a private registry so several instances can coexist in tests.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		facilities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facilities_registered_total",
			Help:      "Facilities registered, by type.",
		}, []string{"kind"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings committed, by facility.",
		}, []string{"facility"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "Booking attempts rejected, by validation step.",
		}, []string{"step"}),
		cancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_cancellations_total",
			Help:      "Cancellation attempts, by result.",
		}, []string{"result"}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "booked_units",
			Help:      "Units held by active bookings.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_bookings",
			Help:      "Active bookings in the ledger.",
		}),
	}
	reg.MustRegister(
		m.facilities, m.bookings, m.rejected, m.cancels, m.units, m.active,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) FacilityRegistered(kind string) {
	m.facilities.WithLabelValues(kind).Inc()
}

func (m *Metrics) BookingMade(facility string, units int) {
	m.bookings.WithLabelValues(facility).Inc()
	m.units.Add(float64(units))
	m.active.Inc()
}

func (m *Metrics) BookingRejected(step string) {
	m.rejected.WithLabelValues(step).Inc()
}

func (m *Metrics) BookingCancelled(units int, found bool) {
	if !found {
		m.cancels.WithLabelValues("not_found").Inc()
		return
	}
	m.cancels.WithLabelValues("cancelled").Inc()
	m.units.Sub(float64(units))
	m.active.Dec()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
