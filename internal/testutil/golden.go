// Package testutil provides shared test infrastructure for the simulator.
// It consolidates golden dataset types and helpers used by the sim/ test
// packages and by the adapters under internal/.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one surface plus the robots placed on it, in order.
type GoldenTestCase struct {
	Name    string        `json:"name"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Robots  []GoldenRobot `json:"robots"`
	Metrics GoldenMetrics `json:"metrics"`
}

// GoldenRobot is a placement line, a command line and the expected result line.
type GoldenRobot struct {
	Start    string `json:"start"`
	Commands string `json:"commands"`
	Final    string `json:"final"`
}

// StartTokens splits Start into its x, y and orientation tokens.
func (r GoldenRobot) StartTokens() (x, y, orientation string) {
	f := strings.Fields(r.Start)
	return f[0], f[1], f[2]
}

// GoldenMetrics represents the expected fleet statistics of a golden test case.
type GoldenMetrics struct {
	Robots           int     `json:"robots"`
	Alive            int     `json:"alive"`
	Lost             int     `json:"lost"`
	TotalMoves       int     `json:"total_moves"`
	TotalCells       int     `json:"total_cells"`
	WalkedCells      int     `json:"walked_cells"`
	ScentedCells     int     `json:"scented_cells"`
	WalkedPercentage float64 `json:"walked_percentage"`
}

// Text renders the case in the batch file format: size line, then
// alternating placement and command lines.
func (tc GoldenTestCase) Text() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(tc.Width) + " " + strconv.Itoa(tc.Height) + "\n")
	for _, r := range tc.Robots {
		b.WriteString(r.Start + "\n" + r.Commands + "\n")
	}
	return b.String()
}

// Finals returns the expected result lines in input order.
func (tc GoldenTestCase) Finals() []string {
	out := make([]string, len(tc.Robots))
	for i, r := range tc.Robots {
		out[i] = r.Final
	}
	return out
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

