// Package metrics collects Prometheus metrics for the request pipeline and the stand-in panel API.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the subset used by the request pipeline and the session manager.
type Recorder interface {
	RecordRequest(method string, statusCode int)
	RecordRequestError(method string)
	RecordRefresh(success bool)
	RecordRetry()
}

// Collector is the Prometheus backed Recorder. It also counts requests served by the stand-in API.
type Collector struct {
	requests      *prometheus.CounterVec
	requestErrors *prometheus.CounterVec
	refreshes     *prometheus.CounterVec
	retries       prometheus.Counter
	served        *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panel",
			Name:      "client_requests_total",
			Help:      "Requests sent by the authenticated request pipeline.",
		}, []string{"method", "status"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panel",
			Name:      "client_request_errors_total",
			Help:      "Requests that failed before a response was received.",
		}, []string{"method"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panel",
			Name:      "session_refreshes_total",
			Help:      "Access token refresh attempts by result.",
		}, []string{"result"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "panel",
			Name:      "client_retries_total",
			Help:      "Requests resent after a refresh.",
		}),
		served: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panel",
			Name:      "api_requests_served_total",
			Help:      "Requests served by the stand-in panel API.",
		}, []string{"method", "status"}),
	}
	reg.MustRegister(c.requests, c.requestErrors, c.refreshes, c.retries, c.served)
	return c
}

func (c *Collector) RecordRequest(method string, statusCode int) {
	c.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRequestError(method string) {
	c.requestErrors.WithLabelValues(method).Inc()
}

func (c *Collector) RecordRefresh(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.refreshes.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRetry() {
	c.retries.Inc()
}

func (c *Collector) RecordServed(method string, statusCode int) {
	c.served.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used when no collector is configured.
type Nop struct{}

func (Nop) RecordRequest(string, int) {}
func (Nop) RecordRequestError(string) {}
func (Nop) RecordRefresh(bool) {}
func (Nop) RecordRetry() {}
