package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/limaJavier/allocation/pkg/solver"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements solver.Recorder backed by Prometheus collectors.
// Collectors are registered lazily on the first event
type PrometheusRecorder struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solveDuration  *prometheus.HistogramVec
	solveStates    *prometheus.CounterVec
	solves         *prometheus.CounterVec
	seatsTaken     *prometheus.CounterVec
	remainingSeats *prometheus.GaugeVec
}

var _ solver.Recorder = (*PrometheusRecorder)(nil)

// NewPrometheus creates a recorder registering into reg (prometheus.DefaultRegisterer if nil)
// under namespace ("allocation" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "allocation"
	}

	return &PrometheusRecorder{reg: reg, namespace: namespace}
}

func (p *PrometheusRecorder) ensureRegistered() {
	p.once.Do(func() {
		p.solveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of solve calls by solver.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		}, []string{"solver"})

		p.solveStates = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "states_total",
			Help:      "Search nodes, memoized states or processed requests by solver.",
		}, []string{"solver"})

		p.solves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Total solve calls by solver and outcome (completed, cancelled).",
		}, []string{"solver", "outcome"})

		p.seatsTaken = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "greedy",
			Name:      "seats_taken_total",
			Help:      "Total seats committed by the greedy pass by course.",
		}, []string{"course"})

		p.remainingSeats = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "greedy",
			Name:      "remaining_seats",
			Help:      "Seats left in a course after the latest greedy commit.",
		}, []string{"course"})

		p.reg.MustRegister(p.solveDuration, p.solveStates, p.solves, p.seatsTaken, p.remainingSeats)
	})
}

func (p *PrometheusRecorder) SolveFinished(solverName string, duration time.Duration, states int, cancelled bool) {
	p.ensureRegistered()

	outcome := "completed"
	if cancelled {
		outcome = "cancelled"
	}
	p.solveDuration.WithLabelValues(solverName).Observe(duration.Seconds())
	p.solveStates.WithLabelValues(solverName).Add(float64(states))
	p.solves.WithLabelValues(solverName, outcome).Inc()
}

func (p *PrometheusRecorder) SeatTaken(_ string, course, remaining int) {
	p.ensureRegistered()

	label := strconv.Itoa(course)
	p.seatsTaken.WithLabelValues(label).Inc()
	p.remainingSeats.WithLabelValues(label).Set(float64(remaining))
}
