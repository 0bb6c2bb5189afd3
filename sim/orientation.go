package sim

// Orientation is the compass heading of a robot.
type Orientation string

const (
	North Orientation = "N"
	East  Orientation = "E"
	South Orientation = "S"
	West  Orientation = "W"
)

// Command is a single movement instruction.
type Command byte

const (
	TurnLeft  Command = 'L'
	Forward   Command = 'F'
	TurnRight Command = 'R'
)

// delta is the forward step for one orientation.
type delta struct{ dx, dy int }

var (
	// forwardDelta maps each orientation to its single-cell advance.
	forwardDelta = map[Orientation]delta{
		North: {0, 1},
		East:  {1, 0},
		South: {0, -1},
		West:  {-1, 0},
	}

	// Clockwise order N -> E -> S -> W -> N.
	rightOf = map[Orientation]Orientation{North: East, East: South, South: West, West: North}
	leftOf  = map[Orientation]Orientation{North: West, West: South, South: East, East: North}

	validCommands = map[Command]bool{TurnLeft: true, Forward: true, TurnRight: true}
)

// ParseOrientation accepts exactly one of "N", "E", "S", "W".
func ParseOrientation(raw string) (Orientation, bool) {
	o := Orientation(raw)
	_, ok := forwardDelta[o]
	return o, ok
}

// IsValid reports whether o is one of the four compass headings.
func (o Orientation) IsValid() bool {
	_, ok := forwardDelta[o]
	return ok
}

// Right returns the heading after a 90° clockwise turn.
func (o Orientation) Right() Orientation { return rightOf[o] }

// Left returns the heading after a 90° counter-clockwise turn.
func (o Orientation) Left() Orientation { return leftOf[o] }

func (o Orientation) String() string { return string(o) }

// IsValid reports whether c is one of L, F, R.
func (c Command) IsValid() bool { return validCommands[c] }

func (c Command) String() string { return string(c) }
