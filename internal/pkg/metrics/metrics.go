// Package metrics collects and exposes Prometheus metrics for the
// recognition and attendance pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface consumed by the service layer.
type Recorder interface {
	RecordMatchAttempt()
	RecordMatchHit()
	RecordMatchMiss()
	RecordMatchLatency(duration time.Duration)
	RecordEventAccepted(state string)
	RecordCooldownRejection()
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	matchAttempts      prometheus.Counter
	matchHits          prometheus.Counter
	matchMisses        prometheus.Counter
	matchLatency       prometheus.Histogram
	eventsAccepted     *prometheus.CounterVec
	cooldownRejections prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		matchAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceattend_match_attempts_total",
			Help: "Total face match attempts against the enrolled set.",
		}),
		matchHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceattend_match_hits_total",
			Help: "Match attempts that resolved to an enrolled identity.",
		}),
		matchMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceattend_match_misses_total",
			Help: "Match attempts rejected as not recognized.",
		}),
		matchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "faceattend_match_duration_seconds",
			Help:    "Duration of the candidate scan.",
			Buckets: prometheus.DefBuckets,
		}),
		eventsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "faceattend_events_accepted_total",
			Help: "Accepted attendance events by resulting state.",
		}, []string{"state"}),
		cooldownRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceattend_cooldown_rejections_total",
			Help: "Submissions rejected by the cooldown window.",
		}),
	}

	reg.MustRegister(
		c.matchAttempts,
		c.matchHits,
		c.matchMisses,
		c.matchLatency,
		c.eventsAccepted,
		c.cooldownRejections,
	)

	return c
}

func (c *Collector) RecordMatchAttempt() { c.matchAttempts.Inc() }
func (c *Collector) RecordMatchHit()     { c.matchHits.Inc() }
func (c *Collector) RecordMatchMiss()    { c.matchMisses.Inc() }

func (c *Collector) RecordMatchLatency(duration time.Duration) {
	c.matchLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordEventAccepted(state string) {
	c.eventsAccepted.WithLabelValues(state).Inc()
}

func (c *Collector) RecordCooldownRejection() { c.cooldownRejections.Inc() }

// Handler serves the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
