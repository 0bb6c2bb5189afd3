// Tracks fleet-wide and surface-wide statistics for final reporting.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	Robots           int     `json:"robots"`
	Alive            int     `json:"alive"`
	Lost             int     `json:"lost"`
	TotalMoves       int     `json:"total_moves"`
	TotalCells       int     `json:"total_cells"`
	WalkedCells      int     `json:"walked_cells"`
	ScentedCells     int     `json:"scented_cells"`
	WalkedPercentage float64 `json:"walked_percentage"` // rounded to 2 decimals
}

// percentage returns part/total*100 rounded to two decimals; 0 when total is 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Total robots placed  : %d\n", m.Robots)
	fmt.Fprintf(w, "Alive robots         : %d/%d\n", m.Alive, m.Robots)
	fmt.Fprintf(w, "Lost robots          : %d\n", m.Lost)
	fmt.Fprintf(w, "Forward moves        : %d\n", m.TotalMoves)
	fmt.Fprintf(w, "Cells explored       : %d/%d (%.2f%%)\n", m.WalkedCells, m.TotalCells, m.WalkedPercentage)
	fmt.Fprintf(w, "Scented cells        : %d\n", m.ScentedCells)
}

// JSON returns the metrics as indented JSON.
func (m *Metrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
