package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnzgo/MartianRobots/internal/config"
	"github.com/gnzgo/MartianRobots/sim"
	"github.com/gnzgo/MartianRobots/sim/scenario"
)

const sampleBody = `{
  "surface": {"width": 5, "height": 3},
  "agents": [
    {"start": {"x": 1, "y": 1, "orientation": "E"}, "commands": "RFRFRFRF"},
    {"start": {"x": 3, "y": 2, "orientation": "N"}, "commands": "FRRFLLFFRRFLL"},
    {"start": {"x": 0, "y": 3, "orientation": "W"}, "commands": "LLFFFLFLFL"}
  ]
}`

func setupTestServer(t *testing.T, mutate ...func(*config.ServerConfig)) *Server {
	t.Helper()
	cfg := config.Default().Server
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := NewServer(&cfg)
	require.NoError(t, err)
	return s
}

func post(s *Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("uses defaults when config is nil", func(t *testing.T) {
		s, err := NewServer(nil)
		require.NoError(t, err)
		assert.Equal(t, "localhost", s.config.Host)
		assert.Equal(t, 5000, s.config.Port)
	})

	t.Run("returns error when body limit is empty", func(t *testing.T) {
		_, err := NewServer(&config.ServerConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "body limit")
	})
}

func TestHandleHealth(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHandleSimulate(t *testing.T) {
	// GIVEN the three-robot sample
	s := setupTestServer(t)

	// WHEN posted
	rec := post(s, "/api/v1/simulations", sampleBody)

	// THEN results come back in request order
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var results []scenario.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, scenario.Result{Final: sim.Position{X: 1, Y: 1, Orientation: sim.East}}, results[0])
	assert.Equal(t, scenario.Result{Final: sim.Position{X: 3, Y: 3, Orientation: sim.North}, Lost: true}, results[1])
	assert.Equal(t, scenario.Result{Final: sim.Position{X: 2, Y: 3, Orientation: sim.South}}, results[2])
}

const legacyBody = `{
  "marsSize": {"x": 5, "y": 3},
  "robotCommands": [
    {"startingPosition": {"x": 1, "y": 1, "orientation": "E"}, "movementCommands": "RFRFRFRF"},
    {"startingPosition": {"x": 3, "y": 2, "orientation": "N"}, "movementCommands": "FRRFLLFFRRFLL"},
    {"startingPosition": {"x": 0, "y": 3, "orientation": "W"}, "movementCommands": "LLFFFLFLFL"}
  ]
}`

func TestHandleLegacySimulate_OriginalShapes(t *testing.T) {
	// GIVEN the sample in the first release's request shape
	s := setupTestServer(t)

	// WHEN posted to the original route
	rec := post(s, "/MartianSimulation", legacyBody)

	// THEN the response uses the first release's result shape
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[
		{"finalPosition": {"x": 1, "y": 1, "orientation": "E"}, "lost": false},
		{"finalPosition": {"x": 3, "y": 3, "orientation": "N"}, "lost": true},
		{"finalPosition": {"x": 2, "y": 3, "orientation": "S"}, "lost": false}
	]`, rec.Body.String())
}

func TestHandleLegacySimulate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind string
	}{
		{"current shape", sampleBody, KindInvalidRequest},
		{"missing size", `{"robotCommands": []}`, KindInvalidRequest},
		{"missing robots", `{"marsSize": {"x": 1, "y": 1}}`, KindInvalidRequest},
		{"missing start", `{"marsSize": {"x": 1, "y": 1}, "robotCommands": [{"movementCommands": "F"}]}`, KindInvalidRequest},
		{"trailing data", `{"marsSize": {"x": 1, "y": 1}, "robotCommands": []} x`, KindInvalidRequest},
		{"degenerate surface", `{"marsSize": {"x": 0, "y": 0}, "robotCommands": []}`, string(sim.KindInvalidDimension)},
		{"bad command", `{"marsSize": {"x": 5, "y": 3}, "robotCommands": [{"startingPosition": {"x": 1, "y": 1, "orientation": "N"}, "movementCommands": "FX"}]}`, string(sim.KindInvalidCommandSequence)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := setupTestServer(t)

			rec := post(s, "/MartianSimulation", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.kind, resp.Kind)
		})
	}
}

func TestHandleSimulate_ResponseShape(t *testing.T) {
	s := setupTestServer(t)
	body := `{"surface": {"width": 5, "height": 5}, "agents": [{"start": {"x": 5, "y": 5, "orientation": "N"}, "commands": "F"}]}`

	rec := post(s, "/api/v1/simulations", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"final": {"x": 5, "y": 5, "orientation": "N"}, "lost": true}]`, rec.Body.String())
}

func TestHandleSimulate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind string
	}{
		{"degenerate surface", `{"surface": {"width": 0, "height": 0}, "agents": []}`, string(sim.KindInvalidDimension)},
		{"oversized surface", `{"surface": {"width": 51, "height": 3}, "agents": []}`, string(sim.KindInvalidDimension)},
		{"placement outside", `{"surface": {"width": 5, "height": 3}, "agents": [{"start": {"x": 6, "y": 1, "orientation": "N"}, "commands": ""}]}`, string(sim.KindInvalidPlacement)},
		{"bad orientation", `{"surface": {"width": 5, "height": 3}, "agents": [{"start": {"x": 1, "y": 1, "orientation": "Q"}, "commands": ""}]}`, string(sim.KindInvalidPlacement)},
		{"bad command", `{"surface": {"width": 5, "height": 3}, "agents": [{"start": {"x": 1, "y": 1, "orientation": "N"}, "commands": "FX"}]}`, string(sim.KindInvalidCommandSequence)},
		{"malformed json", `{"surface": `, KindInvalidRequest},
		{"unknown field", `{"surface": {"width": 5, "height": 3}, "robots": []}`, KindInvalidRequest},
		{"missing surface", `{"agents": []}`, KindInvalidRequest},
		{"trailing data", `{"surface": {"width": 5, "height": 3}, "agents": []} garbage`, KindInvalidRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := setupTestServer(t)

			rec := post(s, "/api/v1/simulations", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.kind, resp.Kind)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleSimulate_BodyTooLarge(t *testing.T) {
	s := setupTestServer(t, func(c *config.ServerConfig) { c.BodyLimit = "1K" })

	rec := post(s, "/api/v1/simulations", `{"surface": {"width": 5, "height": 3}, "agents": [`+strings.Repeat(" ", 2048)+`]}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleReport(t *testing.T) {
	s := setupTestServer(t)

	rec := post(s, "/api/v1/simulations/report", sampleBody)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 3)
	require.NotNil(t, resp.Metrics)
	assert.Equal(t, 3, resp.Metrics.Robots)
	assert.Equal(t, 1, resp.Metrics.Lost)
	assert.Equal(t, 24, resp.Metrics.TotalCells)
	require.Len(t, resp.Grid, 4)
	assert.Equal(t, 6, len(resp.Grid[0]))
	assert.Contains(t, resp.Grid[0], "!")
}

func TestRateLimit_RejectsBurstOverflow(t *testing.T) {
	s := setupTestServer(t, func(c *config.ServerConfig) {
		c.RateLimit = 0.001
		c.Burst = 1
	})

	first := post(s, "/api/v1/simulations", sampleBody)
	second := post(s, "/api/v1/simulations", sampleBody)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestMetricsEndpoint_ExposesSimulationCounters(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusOK, post(s, "/api/v1/simulations", sampleBody).Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `martian_simulations_total{source="http"}`)
	assert.Contains(t, rec.Body.String(), "martian_http_requests_total")
}

func TestClientLimiters_PerIdentifier(t *testing.T) {
	store := newClientLimiters(0.001, 1)

	ok, err := store.Allow("a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = store.Allow("a")
	assert.False(t, ok)
	ok, _ = store.Allow("b")
	assert.True(t, ok)
}
