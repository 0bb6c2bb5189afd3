package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps    int
	Turns         int
	Moves         int
	ScentSaves    int // forward moves skipped because the edge cell was scented
	Losses        int
	StepsPerRobot map[int]int // robot ID → applied commands
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StepsPerRobot: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	for _, s := range st.Steps {
		summary.StepsPerRobot[s.RobotID]++
		switch s.Outcome {
		case OutcomeTurned:
			summary.Turns++
		case OutcomeMoved:
			summary.Moves++
		case OutcomeScentIgnored:
			summary.ScentSaves++
		case OutcomeLost:
			summary.Losses++
		}
	}
	return summary
}
