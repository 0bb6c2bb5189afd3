package sim

import (
	"errors"
	"fmt"
)

// ErrorKind classifies validation failures reported by the core.
type ErrorKind string

const (
	KindInvalidDimension       ErrorKind = "InvalidDimension"
	KindInvalidPlacement       ErrorKind = "InvalidPlacement"
	KindInvalidCommandSequence ErrorKind = "InvalidCommandSequence"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrInvalidDimension       = errors.New("invalid surface dimension")
	ErrInvalidPlacement       = errors.New("invalid robot placement")
	ErrInvalidCommandSequence = errors.New("invalid command sequence")
)

// DimensionError reports a malformed, negative, oversized or degenerate surface size.
type DimensionError struct {
	Token  string // "width" or "height"
	Value  string // raw token as supplied
	Reason string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("surface %s %q: %s", e.Token, e.Value, e.Reason)
}

func (e *DimensionError) Kind() ErrorKind { return KindInvalidDimension }

func (e *DimensionError) Is(target error) bool { return target == ErrInvalidDimension }

// PlacementError reports a malformed coordinate or orientation token, or a
// coordinate outside the surface.
type PlacementError struct {
	Token  string // "x", "y" or "orientation"
	Value  string
	Reason string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("robot %s %q: %s", e.Token, e.Value, e.Reason)
}

func (e *PlacementError) Kind() ErrorKind { return KindInvalidPlacement }

func (e *PlacementError) Is(target error) bool { return target == ErrInvalidPlacement }

// CommandError reports an unrecognized command character or an over-long sequence.
// Index counts characters from 0, or is -1 when the failure concerns the
// sequence as a whole.
type CommandError struct {
	Sequence string
	Index    int
	Char     string
	Reason   string
}

func (e *CommandError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("command sequence: %s", e.Reason)
	}
	return fmt.Sprintf("command %q at index %d: %s", e.Char, e.Index, e.Reason)
}

func (e *CommandError) Kind() ErrorKind { return KindInvalidCommandSequence }

func (e *CommandError) Is(target error) bool { return target == ErrInvalidCommandSequence }

// KindOf returns the ErrorKind carried by err, or "" if err is not a core validation error.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
