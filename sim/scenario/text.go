package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyInput is returned by ParseText when the input has no lines.
var ErrEmptyInput = errors.New("empty input")

// ParseText reads the batch file format: a "width height" line followed by
// alternating "x y orientation" and command lines. Blank lines where a
// placement is expected are skipped; a placement on the last line gets an
// empty command sequence.
func ParseText(r io.Reader) (*Plan, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	size := strings.Fields(lines[0])
	if len(size) != 2 {
		return nil, fmt.Errorf("line 1: two values separated by whitespace were expected, got %d", len(size))
	}
	plan := &Plan{Width: size[0], Height: size[1], SizeLine: 1}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		lineNo := i + 1
		start := strings.Fields(lines[i])
		if len(start) != 3 {
			return nil, fmt.Errorf("line %d: three values separated by whitespace were expected, got %d", lineNo, len(start))
		}
		robot := PlannedRobot{
			X:             start[0],
			Y:             start[1],
			Orientation:   start[2],
			PlacementLine: lineNo,
		}
		if i+1 < len(lines) {
			i++
			robot.Commands = strings.TrimSpace(lines[i])
			robot.CommandLine = i + 1
		}
		plan.Robots = append(plan.Robots, robot)
	}
	return plan, nil
}
