package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector registers and records the service's prometheus metrics.
type Collector struct {
	recordsTotal      *prometheus.CounterVec
	deploysTotal      *prometheus.CounterVec
	deployDuration    *prometheus.HistogramVec
	deployedBytes     prometheus.Counter
	installsTotal     *prometheus.CounterVec
	fingerprintsTotal prometheus.Counter
}

// NewCollector registers the collectors on reg. Pass
// prometheus.DefaultRegisterer in the service binary and a fresh registry in
// tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	c := &Collector{}

	c.recordsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artifacts",
			Name:      "records_total",
			Help:      "Artifact records created",
		},
		[]string{"project"},
	)

	c.deploysTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artifacts",
			Name:      "deploys_total",
			Help:      "Record deployments by result",
		},
		[]string{"repository", "result"},
	)

	c.deployDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "artifacts",
			Name:      "deploy_duration_seconds",
			Help:      "Record deployment duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"repository"},
	)

	c.deployedBytes = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: "artifacts",
			Name:      "deployed_bytes_total",
			Help:      "Bytes written to remote repositories by deployments",
		},
	)

	c.installsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artifacts",
			Name:      "installs_total",
			Help:      "Record installations by result",
		},
		[]string{"result"},
	)

	c.fingerprintsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: "artifacts",
			Name:      "fingerprints_total",
			Help:      "Artifact fingerprints recorded",
		},
	)

	return c
}

func (c *Collector) RecordCreated(project string) {
	c.recordsTotal.WithLabelValues(project).Inc()
}

func (c *Collector) DeployObserved(repository string, seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.deploysTotal.WithLabelValues(repository, result).Inc()
	c.deployDuration.WithLabelValues(repository).Observe(seconds)
}

func (c *Collector) DeployedBytes(n int64) {
	c.deployedBytes.Add(float64(n))
}

func (c *Collector) InstallObserved(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.installsTotal.WithLabelValues(result).Inc()
}

func (c *Collector) FingerprintsRecorded(n int) {
	c.fingerprintsTotal.Add(float64(n))
}
