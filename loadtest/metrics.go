package loadtest

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives the outcome of every request. Status is 0 if there was no response.
type Recorder interface {
	Record(name string, status int, latency time.Duration)
}

// Metrics records requests both as Prometheus metrics and as in-memory statistics for the
// end-of-run summary. It is safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	mu    sync.Mutex
	stats map[string]*requestStats
}

type requestStats struct {
	failures  int
	latencies []float64
}

// RequestSummary describes all requests with one name.
type RequestSummary struct {
	Name     string
	Count    int
	Failures int
	AvgMs    float64
	P50Ms    float64
	P95Ms    float64
	MaxMs    float64
}

// NewMetrics creates a Metrics with its own registry, so that several can exist at once.
func NewMetrics() *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loadgen",
		Name:      "requests_total",
		Help:      "Total number of gateway requests made by virtual users.",
	}, []string{"name", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "loadgen",
		Name:      "request_duration_seconds",
		Help:      "Gateway request latency in seconds.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"name"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(requests, latency)
	return &Metrics{
		registry: registry,
		requests: requests,
		latency:  latency,
		stats:    make(map[string]*requestStats),
	}
}

func (m *Metrics) Record(name string, status int, latency time.Duration) {
	m.requests.WithLabelValues(name, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(name).Observe(latency.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats[name]
	if s == nil {
		s = &requestStats{}
		m.stats[name] = s
	}
	if IsFailure(status) {
		s.failures++
	}
	s.latencies = append(s.latencies, float64(latency.Microseconds())/1000)
}

// IsFailure is true for no response or an error status.
func IsFailure(status int) bool {
	return status == 0 || status >= 400
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the metrics are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Summary returns statistics per request name, sorted by name.
func (m *Metrics) Summary() []RequestSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := make([]RequestSummary, 0, len(m.stats))
	for name, s := range m.stats {
		values := append([]float64(nil), s.latencies...)
		sort.Float64s(values)
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		summary := RequestSummary{Name: name, Count: len(values), Failures: s.failures}
		if len(values) > 0 {
			summary.AvgMs = sum / float64(len(values))
			summary.P50Ms = percentile(values, 0.50)
			summary.P95Ms = percentile(values, 0.95)
			summary.MaxMs = values[len(values)-1]
		}
		ret = append(ret, summary)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

func percentile(sorted []float64, p float64) float64 {
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
