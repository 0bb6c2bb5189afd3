// Package metrics exposes Prometheus collectors for finished simulations.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gnzgo/MartianRobots/sim"
)

// Sources label where a simulation came from.
const (
	SourceHTTP  = "http"
	SourceBatch = "batch"
)

var (
	globalCollectors *Collectors
	collectorsOnce   sync.Once
)

// Collectors holds the process-wide simulation counters.
type Collectors struct {
	SimulationsTotal      *prometheus.CounterVec
	RobotsTotal           *prometheus.CounterVec
	ValidationErrorsTotal *prometheus.CounterVec
	RobotMovesTotal       prometheus.Counter
	ScentedCellsTotal     prometheus.Counter

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// Default registers the collectors with the default registry on first use.
//
// Metrics:
//   - martian_simulations_total{source}
//   - martian_robots_total{outcome} - "active" or "lost"
//   - martian_validation_errors_total{kind}
//   - martian_robot_moves_total - successful forward moves
//   - martian_scented_cells_total - cells left scented at the end of a run
//   - martian_http_requests_total{method,route,status}
//   - martian_http_request_duration_seconds{method,route}
func Default() *Collectors {
	collectorsOnce.Do(func() {
		globalCollectors = &Collectors{
			SimulationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "martian_simulations_total",
					Help: "Total number of simulations that ran to completion",
				},
				[]string{"source"},
			),
			RobotsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "martian_robots_total",
					Help: "Total number of robots by final state",
				},
				[]string{"outcome"},
			),
			ValidationErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "martian_validation_errors_total",
					Help: "Total number of rejected inputs by error kind",
				},
				[]string{"kind"},
			),
			RobotMovesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "martian_robot_moves_total",
				Help: "Total number of successful forward moves",
			}),
			ScentedCellsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "martian_scented_cells_total",
				Help: "Total number of scented cells left by finished simulations",
			}),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "martian_http_requests_total",
					Help: "Total HTTP requests by method, route and status code",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "martian_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
				},
				[]string{"method", "route"},
			),
		}
	})
	return globalCollectors
}

// ObserveSimulation records a finished simulation.
func ObserveSimulation(source string, s *sim.Simulation) {
	c := Default()
	m := s.Metrics()
	c.SimulationsTotal.WithLabelValues(source).Inc()
	c.RobotsTotal.WithLabelValues(string(sim.StateActive)).Add(float64(m.Alive))
	c.RobotsTotal.WithLabelValues(string(sim.StateLost)).Add(float64(m.Lost))
	c.RobotMovesTotal.Add(float64(m.TotalMoves))
	c.ScentedCellsTotal.Add(float64(m.ScentedCells))
}

// ObserveError counts a rejected input. Errors that are not core
// validation errors are counted under "other".
func ObserveError(err error) {
	if err == nil {
		return
	}
	kind := string(sim.KindOf(err))
	if kind == "" {
		kind = "other"
	}
	Default().ValidationErrorsTotal.WithLabelValues(kind).Inc()
}
