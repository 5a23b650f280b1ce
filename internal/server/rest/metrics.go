package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	outcomeSuccess            = "success"
	outcomeValidation         = "validation_error"
	outcomeDuplicate          = "duplicate_email"
	outcomeInvalidCredentials = "invalid_credentials"
	outcomeError              = "error"
)

// Gate rejection reasons. These never reach the client.
const (
	reasonMissing = "missing"
	reasonInvalid = "invalid"
)

// Metrics owns a private registry so several servers (and tests) can coexist.
type Metrics struct {
	registry       *prometheus.Registry
	registrations  *prometheus.CounterVec
	logins         *prometheus.CounterVec
	gateRejections *prometheus.CounterVec
	requests       *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		gateRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_auth_gate_rejections_total",
			Help: "Requests rejected by the bearer token gate",
		}, []string{"reason"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coursehub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.registrations,
		m.logins,
		m.gateRejections,
		m.requests,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) recordRegistration(err error) {
	m.registrations.WithLabelValues(outcomeOf(err)).Inc()
}

func (m *Metrics) recordLogin(err error) {
	m.logins.WithLabelValues(outcomeOf(err)).Inc()
}

func (m *Metrics) recordGateRejection(reason string) {
	m.gateRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, common.ErrorValidation):
		return outcomeValidation
	case errors.Is(err, common.ErrorAlreadyExists):
		return outcomeDuplicate
	case errors.Is(err, common.ErrorInvalidCredentials):
		return outcomeInvalidCredentials
	default:
		return outcomeError
	}
}
