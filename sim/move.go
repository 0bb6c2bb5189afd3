package sim

import (
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/sim/trace"
)

// ValidateCommands checks a raw sequence without applying it: at most
// MaxCommandLength characters, each one of L, F, R. Empty is valid.
// Lengths and the Index of a CommandError count characters, not bytes.
func ValidateCommands(raw string) error {
	if n := utf8.RuneCountInString(raw); n > MaxCommandLength {
		return &CommandError{
			Sequence: raw,
			Index:    -1,
			Reason:   fmt.Sprintf("length %d exceeds the maximum (%d)", n, MaxCommandLength),
		}
	}
	i := 0
	for _, r := range raw {
		if r >= utf8.RuneSelf || !Command(r).IsValid() {
			return &CommandError{
				Sequence: raw,
				Index:    i,
				Char:     string(r),
				Reason:   "is not one of L, F, R",
			}
		}
		i++
	}
	return nil
}

// Move runs a command sequence for robot against surface.
//
// The whole sequence is validated first; on a validation error nothing is
// mutated. A robot that is already lost is left untouched. Processing stops
// at the command that loses the robot. st may be nil.
func Move(surface *Surface, robot *Robot, raw string, st *trace.SimulationTrace) error {
	if err := ValidateCommands(raw); err != nil {
		return err
	}
	for i := 0; i < len(raw) && !robot.Lost; i++ {
		rec := step(surface, robot, Command(raw[i]))
		if st.Enabled() {
			rec.RobotID = robot.ID
			rec.Index = i
			st.RecordStep(rec)
		}
	}
	return nil
}

// step applies one validated command and describes what happened.
func step(surface *Surface, robot *Robot, cmd Command) trace.StepRecord {
	rec := trace.StepRecord{
		Command: cmd.String(),
		FromX:   robot.X,
		FromY:   robot.Y,
	}

	switch cmd {
	case TurnLeft:
		robot.Orientation = robot.Orientation.Left()
		rec.Outcome = trace.OutcomeTurned
	case TurnRight:
		robot.Orientation = robot.Orientation.Right()
		rec.Outcome = trace.OutcomeTurned
	case Forward:
		d := forwardDelta[robot.Orientation]
		nx, ny := robot.X+d.dx, robot.Y+d.dy
		switch {
		case surface.InBounds(nx, ny):
			robot.X, robot.Y = nx, ny
			surface.MarkWalked(nx, ny)
			robot.MovesMade++
			rec.Outcome = trace.OutcomeMoved
		case surface.IsScented(robot.X, robot.Y):
			logrus.Tracef("robot %d: scent at (%d,%d) blocks move %s", robot.ID, robot.X, robot.Y, robot.Orientation)
			rec.Outcome = trace.OutcomeScentIgnored
		default:
			surface.MarkScented(robot.X, robot.Y)
			robot.Lost = true
			logrus.Debugf("robot %d lost off (%d,%d) heading %s", robot.ID, robot.X, robot.Y, robot.Orientation)
			rec.Outcome = trace.OutcomeLost
		}
	}

	rec.ToX, rec.ToY = robot.X, robot.Y
	rec.Orientation = robot.Orientation.String()
	return rec
}
