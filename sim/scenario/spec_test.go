package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScenario = `
surface:
  width: 5
  height: 3
agents:
  - start: {x: 1, y: 1, orientation: E}
    commands: RFRFRFRF
  - start: {x: 3, y: 2, orientation: N}
    commands: FRRFLLFFRRFLL
`

const jsonScenario = `{
  "surface": {"width": 5, "height": 3},
  "agents": [
    {"start": {"x": 1, "y": 1, "orientation": "E"}, "commands": "RFRFRFRF"},
    {"start": {"x": 3, "y": 2, "orientation": "N"}, "commands": "FRRFLLFFRRFLL"}
  ]
}`

const tomlScenario = `
[surface]
width = 5
height = 3

[[agents]]
commands = "RFRFRFRF"
[agents.start]
x = 1
y = 1
orientation = "E"

[[agents]]
commands = "FRRFLLFFRRFLL"
[agents.start]
x = 3
y = 2
orientation = "N"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_AllFormats_ProduceSameScenario(t *testing.T) {
	want := &Scenario{
		Surface: &SurfaceSpec{Width: 5, Height: 3},
		Agents: []AgentSpec{
			{Start: &StartSpec{X: 1, Y: 1, Orientation: "E"}, Commands: "RFRFRFRF"},
			{Start: &StartSpec{X: 3, Y: 2, Orientation: "N"}, Commands: "FRRFLLFFRRFLL"},
		},
	}
	files := map[string]string{
		"fleet.yaml": yamlScenario,
		"fleet.json": jsonScenario,
		"fleet.toml": tomlScenario,
		"fleet.txt":  "5 3\n1 1 E\nRFRFRFRF\n3 2 N\nFRRFLLFFRRFLL\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			sc, err := LoadScenario(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, want, sc)
		})
	}
}

func TestLoadScenario_UnknownField_Rejected(t *testing.T) {
	tests := map[string]string{
		"typo.yaml": "surface: {width: 5, height: 3}\nagent: []\n",
		"typo.json": `{"surface": {"width": 5, "height": 3, "depth": 1}}`,
		"typo.toml": "[surface]\nwidth = 5\nheight = 3\nheigth = 4\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScenario(writeFile(t, name, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

func TestDecode_MissingSections_Rejected(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"agents": []}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface is required")

	_, err = Decode(strings.NewReader(`{"surface": {"width": 1, "height": 1}, "agents": [{"commands": "F"}]}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agents[0]: start is required")
}

func TestDecode_JSONTrailingData_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"trailing garbage", `{"surface": {"width": 1, "height": 1}, "agents": []} garbage`, true},
		{"second object", `{"surface": {"width": 1, "height": 1}, "agents": []} {}`, true},
		{"trailing brace", `{"surface": {"width": 1, "height": 1}, "agents": []}}`, true},
		{"trailing whitespace", "{\"surface\": {\"width\": 1, \"height\": 1}, \"agents\": []}\n\t ", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.body), FormatJSON)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("dir/a.json"))
	assert.Equal(t, FormatTOML, FormatFromPath("a.toml"))
	assert.Equal(t, FormatText, FormatFromPath("input"))
}

func TestFromPlan_NonIntegerToken_ReportsLine(t *testing.T) {
	plan, err := ParseText(strings.NewReader("5 3\nx 1 N\nF\n"))
	require.NoError(t, err)

	_, err = FromPlan(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `line 2: x "x" is not an integer`)
}

func TestScenario_Text_RoundTripsThroughParseText(t *testing.T) {
	// GIVEN a typed scenario
	sc, err := Decode(strings.NewReader(jsonScenario), FormatJSON)
	require.NoError(t, err)

	// WHEN rendered as text and parsed back
	plan, err := ParseText(strings.NewReader(sc.Text()))
	require.NoError(t, err)
	back, err := FromPlan(plan)

	// THEN the scenario is unchanged
	require.NoError(t, err)
	assert.Equal(t, sc, back)
}
