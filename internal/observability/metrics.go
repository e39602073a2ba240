package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/idudko/go-autoclean/pkg/autoclean"
)

// MetricsObserver counts reset events per owner type.
type MetricsObserver struct {
	registry        *prometheus.Registry
	membersReset    *prometheus.CounterVec
	membersReleased *prometheus.CounterVec
	releaseFailures *prometheus.CounterVec
}

// NewMetricsObserver creates the counters and registers them with a registry
// owned by the observer.
func NewMetricsObserver() *MetricsObserver {
	labels := []string{"owner", "partition"}
	m := &MetricsObserver{
		registry: prometheus.NewRegistry(),
		membersReset: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "autoclean",
				Subsystem: "members",
				Name:      "reset_total",
				Help:      "Members set back to their zero value.",
			},
			labels,
		),
		membersReleased: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "autoclean",
				Subsystem: "members",
				Name:      "released_total",
				Help:      "Disposable values closed before a reset.",
			},
			labels,
		),
		releaseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "autoclean",
				Subsystem: "members",
				Name:      "release_failures_total",
				Help:      "Close calls that returned an error.",
			},
			labels,
		),
	}
	m.registry.MustRegister(m.membersReset, m.membersReleased, m.releaseFailures)
	return m
}

// Registry exposes the registry the counters live in.
func (m *MetricsObserver) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsObserver) Notify(event autoclean.Event) {
	owner := "<nil>"
	if event.Owner != nil {
		owner = event.Owner.String()
	}
	partition := event.Partition.String()

	switch event.Kind {
	case autoclean.EventReset:
		m.membersReset.WithLabelValues(owner, partition).Inc()
	case autoclean.EventReleased:
		m.membersReleased.WithLabelValues(owner, partition).Inc()
	case autoclean.EventReleaseFailed:
		m.releaseFailures.WithLabelValues(owner, partition).Inc()
	}
}
