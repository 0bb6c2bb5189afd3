package scenario

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/sim"
)

// Plan is a scenario reduced to the raw tokens the core validates.
// Line numbers are zero when the plan did not come from text.
type Plan struct {
	Width    string
	Height   string
	SizeLine int
	Robots   []PlannedRobot
}

// PlannedRobot is one placement and its command sequence.
type PlannedRobot struct {
	X             string
	Y             string
	Orientation   string
	Commands      string
	PlacementLine int
	CommandLine   int
}

// location describes robot i (or the surface when i < 0) for error messages.
func (p *Plan) location(i int) string {
	if i < 0 {
		if p.SizeLine > 0 {
			return fmt.Sprintf("line %d", p.SizeLine)
		}
		return "surface"
	}
	if p.Robots[i].PlacementLine > 0 {
		return fmt.Sprintf("line %d", p.Robots[i].PlacementLine)
	}
	return fmt.Sprintf("agents[%d]", i)
}

func (p *Plan) commandLocation(i int) string {
	if p.Robots[i].CommandLine > 0 {
		return fmt.Sprintf("line %d", p.Robots[i].CommandLine)
	}
	return fmt.Sprintf("agents[%d].commands", i)
}

// Text renders the plan in the batch file format.
func (p *Plan) Text() string {
	var b strings.Builder
	b.WriteString(p.Width + " " + p.Height + "\n")
	for _, r := range p.Robots {
		b.WriteString(r.X + " " + r.Y + " " + r.Orientation + "\n")
		b.WriteString(r.Commands + "\n")
	}
	return b.String()
}

// Result is the final state of one robot. Its JSON form is one element of
// the HTTP response.
type Result struct {
	Final sim.Position `json:"final"`
	Lost  bool         `json:"lost"`
}

// String renders "x y O", plus " LOST" if the robot was lost.
func (r Result) String() string {
	if r.Lost {
		return r.Final.String() + " LOST"
	}
	return r.Final.String()
}

// Outcome is a finished run: the simulation (for statistics and the grid)
// and one result per robot in input order.
type Outcome struct {
	Simulation *sim.Simulation
	Results    []Result
}

// Lines returns the result strings in input order.
func (o *Outcome) Lines() []string {
	lines := make([]string, len(o.Results))
	for i, r := range o.Results {
		lines[i] = r.String()
	}
	return lines
}

// Execute runs a plan on a fresh simulation. The first validation error
// aborts the run and is returned wrapped with its location.
func Execute(p *Plan, opts ...sim.Option) (*Outcome, error) {
	s, err := sim.NewSimulation(p.Width, p.Height, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.location(-1), err)
	}
	out := &Outcome{Simulation: s, Results: make([]Result, 0, len(p.Robots))}
	for i, pr := range p.Robots {
		robot, err := s.Place(pr.X, pr.Y, pr.Orientation)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.location(i), err)
		}
		if err := s.Move(robot, pr.Commands); err != nil {
			return nil, fmt.Errorf("%s: %w", p.commandLocation(i), err)
		}
		out.Results = append(out.Results, Result{Final: robot.Position(), Lost: robot.Lost})
	}
	logrus.Debugf("scenario finished: %d robots, %d lost", len(out.Results), s.Metrics().Lost)
	return out, nil
}

// Run validates and executes a typed scenario.
func (s *Scenario) Run(opts ...sim.Option) (*Outcome, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return Execute(s.Plan(), opts...)
}
