package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/internal/metrics"
	"github.com/gnzgo/MartianRobots/sim"
	"github.com/gnzgo/MartianRobots/sim/scenario"
)

// KindInvalidRequest labels bodies that are not a well-formed scenario.
const KindInvalidRequest = "InvalidRequest"

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is returned with 400 when a request is rejected.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// ReportResponse is the response body for POST /api/v1/simulations/report.
type ReportResponse struct {
	Results []scenario.Result `json:"results"`
	Metrics *sim.Metrics      `json:"metrics"`
	Grid    []string          `json:"grid"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleSimulate answers with one result per robot, in request order.
func (s *Server) handleSimulate(c echo.Context) error {
	out, err := run(c)
	if err != nil {
		return reject(c, err)
	}
	return c.JSON(http.StatusOK, out.Results)
}

// handleReport adds fleet statistics and the explored grid to the results.
func (s *Server) handleReport(c echo.Context) error {
	out, err := run(c)
	if err != nil {
		return reject(c, err)
	}
	return c.JSON(http.StatusOK, ReportResponse{
		Results: out.Results,
		Metrics: out.Simulation.Metrics(),
		Grid:    out.Simulation.Surface().Rows(),
	})
}

// run decodes and executes the request body.
func run(c echo.Context) (*scenario.Outcome, error) {
	sc, err := scenario.Decode(c.Request().Body, scenario.FormatJSON)
	if err != nil {
		return nil, err
	}
	return execute(sc)
}

// execute runs sc and records it in the simulation metrics.
func execute(sc *scenario.Scenario) (*scenario.Outcome, error) {
	out, err := sc.Run()
	if err != nil {
		return nil, err
	}
	metrics.ObserveSimulation(metrics.SourceHTTP, out.Simulation)
	return out, nil
}

// reject maps err to a response. Errors raised by echo itself (body limit)
// keep their status; everything else is a 400 naming the error kind.
func reject(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	metrics.ObserveError(err)
	kind := string(sim.KindOf(err))
	if kind == "" {
		kind = KindInvalidRequest
	}
	logrus.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Warnf("simulation rejected: %v", err)
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: kind})
}
