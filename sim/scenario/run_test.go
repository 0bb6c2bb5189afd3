package scenario

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnzgo/MartianRobots/internal/testutil"
	"github.com/gnzgo/MartianRobots/sim"
	"github.com/gnzgo/MartianRobots/sim/trace"
)

func TestExecute_GoldenDataset_MatchesFinals(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			plan, err := ParseText(strings.NewReader(tc.Text()))
			require.NoError(t, err)

			out, err := Execute(plan)

			require.NoError(t, err)
			assert.Equal(t, tc.Finals(), out.Lines())
			assert.Equal(t, tc.Metrics.Lost, out.Simulation.Metrics().Lost)
		})
	}
}

func TestExecute_ValidationError_WrappedWithLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
		kind  sim.ErrorKind
	}{
		{"bad surface", "0 0\n", "line 1", sim.KindInvalidDimension},
		{"bad placement", "5 3\n1 1 E\nF\n7 1 N\nF\n", "line 4", sim.KindInvalidPlacement},
		{"bad commands", "5 3\n1 1 E\nFFX\n", "line 3", sim.KindInvalidCommandSequence},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := ParseText(strings.NewReader(tc.input))
			require.NoError(t, err)

			_, err = Execute(plan)

			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), tc.line+": "), "got %q", err.Error())
			assert.Equal(t, tc.kind, sim.KindOf(err))
		})
	}
}

func TestScenario_Run_ErrorsNameAgentIndex(t *testing.T) {
	sc := &Scenario{
		Surface: &SurfaceSpec{Width: 5, Height: 3},
		Agents: []AgentSpec{
			{Start: &StartSpec{X: 1, Y: 1, Orientation: "E"}, Commands: "F"},
			{Start: &StartSpec{X: 1, Y: 1, Orientation: "Q"}, Commands: "F"},
		},
	}
	_, err := sc.Run()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "agents[1]: "))
	assert.True(t, errors.Is(err, sim.ErrInvalidPlacement))
}

func TestScenario_Run_WithTrace_RecordsSteps(t *testing.T) {
	sc := &Scenario{
		Surface: &SurfaceSpec{Width: 5, Height: 3},
		Agents:  []AgentSpec{{Start: &StartSpec{X: 1, Y: 1, Orientation: "E"}, Commands: "RFRFRFRF"}},
	}
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelSteps})

	out, err := sc.Run(sim.WithTrace(st))

	require.NoError(t, err)
	assert.Equal(t, []string{"1 1 E"}, out.Lines())
	assert.Len(t, st.Steps, 8)
}

func TestResult_String(t *testing.T) {
	r := Result{Final: sim.Position{X: 3, Y: 3, Orientation: sim.North}, Lost: true}
	assert.Equal(t, "3 3 N LOST", r.String())
	r.Lost = false
	assert.Equal(t, "3 3 N", r.String())
}
