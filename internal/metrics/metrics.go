package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's business and HTTP instruments. All methods
// are safe on a nil receiver so tests can pass nil.
type Metrics struct {
	Registrations          prometheus.Counter
	Logins                 *prometheus.CounterVec
	AppointmentsCreated    prometheus.Counter
	AppointmentTransitions *prometheus.CounterVec
	BookingConflicts       prometheus.Counter
	KycDecisions           *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
}

// New registers every instrument on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_registrations_total",
			Help: "Total number of registered users",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		AppointmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_appointments_created_total",
			Help: "Total number of booked appointments",
		}),
		AppointmentTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_appointment_transitions_total",
			Help: "Appointment state transitions by target status",
		}, []string{"status"}),
		BookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_booking_conflicts_total",
			Help: "Bookings refused because the slot was already taken",
		}),
		KycDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_kyc_decisions_total",
			Help: "KYC review decisions by outcome",
		}, []string{"status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementRegistrations() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}

// IncrementLogins records a login attempt; outcome is success, not_found or bad_password.
func (m *Metrics) IncrementLogins(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementAppointmentsCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.Inc()
}

func (m *Metrics) IncrementAppointmentTransitions(status string) {
	if m == nil {
		return
	}
	m.AppointmentTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementBookingConflicts() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

func (m *Metrics) IncrementKycDecisions(status string) {
	if m == nil {
		return
	}
	m.KycDecisions.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest records a finished request. Call with time.Now() taken
// before the handler ran.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
