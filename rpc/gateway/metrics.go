package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "nns_gateway"

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Number of requests to the Neo RPC server by gateway method and result",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests to the Neo RPC server by gateway method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observe(method string, start time.Time) {
	m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (m *metrics) succeed(method string) {
	m.requests.WithLabelValues(method, "success").Inc()
}

func (m *metrics) fail(method string) {
	m.requests.WithLabelValues(method, "failure").Inc()
}
