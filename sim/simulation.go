package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/sim/trace"
)

// Simulation owns one Surface and the fleet of robots placed on it, in
// placement order. It is not safe for concurrent use; independent
// simulations share nothing.
type Simulation struct {
	surface *Surface
	robots  []*Robot
	trace   *trace.SimulationTrace
}

var errForeignRobot = errors.New("robot was not placed on this simulation")

// Option configures a Simulation.
type Option func(*Simulation)

// WithTrace records every applied command into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(s *Simulation) { s.trace = st }
}

// NewSimulation validates the raw surface size and returns an empty fleet.
func NewSimulation(rawWidth, rawHeight string, opts ...Option) (*Simulation, error) {
	surface, err := NewSurface(rawWidth, rawHeight)
	if err != nil {
		return nil, err
	}
	s := &Simulation{surface: surface}
	for _, opt := range opts {
		opt(s)
	}
	logrus.Debugf("surface created: %dx%d (%d cells)", surface.Width(), surface.Height(), surface.TotalCells())
	return s, nil
}

// Surface returns the grid shared by the fleet.
func (s *Simulation) Surface() *Surface { return s.surface }

// Robots returns the fleet in placement order.
func (s *Simulation) Robots() []*Robot { return s.robots }

// Trace returns the step trace, or nil when tracing was not configured.
func (s *Simulation) Trace() *trace.SimulationTrace { return s.trace }

// Place validates the raw placement tokens, marks the start cell walked and
// appends the new robot to the fleet. A rejected placement changes nothing.
func (s *Simulation) Place(rawX, rawY, rawOrientation string) (*Robot, error) {
	rawX, rawY, rawOrientation = strings.TrimSpace(rawX), strings.TrimSpace(rawY), strings.TrimSpace(rawOrientation)

	if rawX == "" {
		return nil, &PlacementError{Token: "x", Value: rawX, Reason: "cannot be empty"}
	}
	if rawY == "" {
		return nil, &PlacementError{Token: "y", Value: rawY, Reason: "cannot be empty"}
	}
	if rawOrientation == "" {
		return nil, &PlacementError{Token: "orientation", Value: rawOrientation, Reason: "cannot be empty"}
	}

	x, err := strconv.Atoi(rawX)
	if err != nil {
		return nil, &PlacementError{Token: "x", Value: rawX, Reason: "cannot be parsed into an integer"}
	}
	y, err := strconv.Atoi(rawY)
	if err != nil {
		return nil, &PlacementError{Token: "y", Value: rawY, Reason: "cannot be parsed into an integer"}
	}

	if x > MaxCoordinate {
		return nil, &PlacementError{Token: "x", Value: rawX, Reason: fmt.Sprintf("is above the maximum (%d)", MaxCoordinate)}
	}
	if y > MaxCoordinate {
		return nil, &PlacementError{Token: "y", Value: rawY, Reason: fmt.Sprintf("is above the maximum (%d)", MaxCoordinate)}
	}
	if x < 0 || x > s.surface.Width() {
		return nil, &PlacementError{Token: "x", Value: rawX, Reason: fmt.Sprintf("is outside the surface [0,%d]", s.surface.Width())}
	}
	if y < 0 || y > s.surface.Height() {
		return nil, &PlacementError{Token: "y", Value: rawY, Reason: fmt.Sprintf("is outside the surface [0,%d]", s.surface.Height())}
	}

	orientation, ok := ParseOrientation(rawOrientation)
	if !ok {
		return nil, &PlacementError{Token: "orientation", Value: rawOrientation, Reason: "must be one of N, E, S, W"}
	}

	robot := &Robot{
		ID:          len(s.robots) + 1,
		X:           x,
		Y:           y,
		Orientation: orientation,
	}
	s.surface.MarkWalked(x, y)
	s.robots = append(s.robots, robot)
	logrus.Debugf("robot %d placed at %s", robot.ID, robot.Position())
	return robot, nil
}

// Move runs raw commands for a robot of this fleet. See the package-level Move.
func (s *Simulation) Move(robot *Robot, raw string) error {
	if robot == nil || robot.ID < 1 || robot.ID > len(s.robots) || s.robots[robot.ID-1] != robot {
		return errForeignRobot
	}
	return Move(s.surface, robot, raw, s.trace)
}

// Metrics aggregates fleet and surface statistics.
func (s *Simulation) Metrics() *Metrics {
	m := &Metrics{
		Robots:       len(s.robots),
		TotalCells:   s.surface.TotalCells(),
		WalkedCells:  s.surface.WalkedCells(),
		ScentedCells: s.surface.ScentedCells(),
	}
	for _, r := range s.robots {
		if !r.Lost {
			m.Alive++
		}
		m.TotalMoves += r.MovesMade
	}
	m.Lost = m.Robots - m.Alive
	m.WalkedPercentage = percentage(m.WalkedCells, m.TotalCells)
	return m
}
