// Package metrics exposes prometheus collectors for the authenticated client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tripclient"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups client collectors
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Refreshes       *prometheus.CounterVec
	RefreshWaiters  prometheus.Counter
}

// ObserveRequest records one HTTP exchange; code 0 denotes a transport failure
func (m *Metrics) ObserveRequest(method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveRefresh records a settled refresh episode
func (m *Metrics) ObserveRefresh(err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.Refreshes.WithLabelValues(outcome).Inc()
}

// ObserveWaiter records a caller that joined an in-flight refresh
func (m *Metrics) ObserveWaiter() {
	if m == nil {
		return
	}
	m.RefreshWaiters.Inc()
}

// New creates collectors and registers them with registerer when not nil
func New(registerer prometheus.Registerer) *Metrics {
	ret := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests sent to the API by method and status code.",
		}, []string{"method", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_total",
			Help:      "Credential refresh calls by outcome.",
		}, []string{"outcome"}),
		RefreshWaiters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_waiters_total",
			Help:      "Requests that waited on an in-flight refresh instead of starting one.",
		}),
	}
	if registerer != nil {
		registerer.MustRegister(ret.Requests, ret.RequestDuration, ret.Refreshes, ret.RefreshWaiters)
	}
	return ret
}
