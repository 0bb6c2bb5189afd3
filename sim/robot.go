// Defines the Robot struct that models one agent of the fleet.
// Tracks position, heading, loss state and the number of cells advanced.

package sim

import "fmt"

// RobotState represents the lifecycle state of a robot.
type RobotState string

const (
	StateActive RobotState = "active"
	StateLost   RobotState = "lost" // terminal
)

// Position is a grid coordinate plus a heading.
type Position struct {
	X           int         `json:"x" yaml:"x"`
	Y           int         `json:"y" yaml:"y"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d %d %s", p.X, p.Y, p.Orientation)
}

// Robot is created by Simulation.Place and mutated only by Move.
// It holds no reference to the surface it was placed on.
type Robot struct {
	ID          int // 1-based insertion index in the fleet
	X           int
	Y           int
	Orientation Orientation
	Lost        bool
	MovesMade   int // successful forward advances
}

// State returns StateLost once the robot has fallen off the surface.
func (r *Robot) State() RobotState {
	if r.Lost {
		return StateLost
	}
	return StateActive
}

// Position returns the robot's current (or final, if lost) position.
func (r *Robot) Position() Position {
	return Position{X: r.X, Y: r.Y, Orientation: r.Orientation}
}

// String renders "x y O", with a " LOST" suffix if and only if the robot is lost.
func (r *Robot) String() string {
	if r.Lost {
		return r.Position().String() + " LOST"
	}
	return r.Position().String()
}
