// Package trace provides step-trace recording for robot movement analysis.
// It has no dependencies on sim/ and stores plain data types only.
package trace

// Outcome classifies what a single command did.
type Outcome string

const (
	OutcomeTurned       Outcome = "turned"
	OutcomeMoved        Outcome = "moved"
	OutcomeScentIgnored Outcome = "scent-ignored" // forward move off a scented edge, skipped
	OutcomeLost         Outcome = "lost"
)

// StepRecord captures one applied command.
type StepRecord struct {
	RobotID     int
	Index       int    // position of the command in its sequence
	Command     string // "L", "F" or "R"
	FromX       int
	FromY       int
	ToX         int
	ToY         int
	Orientation string // heading after the command
	Outcome     Outcome
}
