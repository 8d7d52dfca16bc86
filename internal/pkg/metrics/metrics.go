/*
Package metrics collects Prometheus metrics for account and image operations.

All recording methods are safe to call on a nil *Collector, which records nothing;
components built without metrics (tests, tools) need no special casing.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels shared by the counters.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)

// Collector holds the application's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	uploads       *prometheus.CounterVec
	cleanups      *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		gatherer: reg,
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profilehub_registrations_total",
			Help: "Registration attempts by result.",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profilehub_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profilehub_image_uploads_total",
			Help: "Profile image uploads by result.",
		}, []string{"result"}),
		cleanups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profilehub_image_removals_total",
			Help: "Best-effort removals of replaced or orphaned image files by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(c.registrations, c.logins, c.uploads, c.cleanups)

	return c
}

// RecordRegistration counts a registration attempt.
func (c *Collector) RecordRegistration(result string) {
	if c == nil {
		return
	}
	c.registrations.WithLabelValues(result).Inc()
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(result string) {
	if c == nil {
		return
	}
	c.logins.WithLabelValues(result).Inc()
}

// RecordUpload counts a profile image upload.
func (c *Collector) RecordUpload(result string) {
	if c == nil {
		return
	}
	c.uploads.WithLabelValues(result).Inc()
}

// RecordImageRemoval counts a best-effort image file removal.
func (c *Collector) RecordImageRemoval(result string) {
	if c == nil {
		return
	}
	c.cleanups.WithLabelValues(result).Inc()
}

// Handler exposes the registered metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
