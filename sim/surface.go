// Defines the Surface: the bounded grid robots move on, and its per-cell flags.

package sim

import (
	"strconv"
	"strings"
)

const (
	// MaxCoordinate bounds both surface dimensions and placement coordinates.
	MaxCoordinate = 50
	// MaxCommandLength is the longest accepted command sequence.
	MaxCommandLength = 100
)

// Cell holds the flags of one grid coordinate. Both flags only ever go from false to true.
type Cell struct {
	Walked  bool
	Scented bool
}

// Surface is a (Width+1) x (Height+1) grid, zero-based and inclusive of the maximum index.
type Surface struct {
	width  int
	height int
	cells  [][]Cell // indexed [x][y]
}

// NewSurface validates the raw width/height tokens and allocates a cleared grid.
// Checks run in order: non-empty, integer, not both zero, not negative, not above MaxCoordinate.
func NewSurface(rawWidth, rawHeight string) (*Surface, error) {
	rawWidth, rawHeight = strings.TrimSpace(rawWidth), strings.TrimSpace(rawHeight)

	if rawWidth == "" {
		return nil, &DimensionError{Token: "width", Value: rawWidth, Reason: "cannot be empty"}
	}
	if rawHeight == "" {
		return nil, &DimensionError{Token: "height", Value: rawHeight, Reason: "cannot be empty"}
	}

	width, err := strconv.Atoi(rawWidth)
	if err != nil {
		return nil, &DimensionError{Token: "width", Value: rawWidth, Reason: "cannot be parsed into an integer"}
	}
	height, err := strconv.Atoi(rawHeight)
	if err != nil {
		return nil, &DimensionError{Token: "height", Value: rawHeight, Reason: "cannot be parsed into an integer"}
	}

	if width == 0 && height == 0 {
		return nil, &DimensionError{Token: "height", Value: rawHeight, Reason: "surface cannot be zero both horizontally and vertically"}
	}
	if width < 0 {
		return nil, &DimensionError{Token: "width", Value: rawWidth, Reason: "cannot be negative"}
	}
	if height < 0 {
		return nil, &DimensionError{Token: "height", Value: rawHeight, Reason: "cannot be negative"}
	}
	if width > MaxCoordinate {
		return nil, &DimensionError{Token: "width", Value: rawWidth, Reason: "is above the maximum (" + strconv.Itoa(MaxCoordinate) + ")"}
	}
	if height > MaxCoordinate {
		return nil, &DimensionError{Token: "height", Value: rawHeight, Reason: "is above the maximum (" + strconv.Itoa(MaxCoordinate) + ")"}
	}

	cells := make([][]Cell, width+1)
	for x := range cells {
		cells[x] = make([]Cell, height+1)
	}
	return &Surface{width: width, height: height, cells: cells}, nil
}

// Width is the maximum valid x coordinate.
func (s *Surface) Width() int { return s.width }

// Height is the maximum valid y coordinate.
func (s *Surface) Height() int { return s.height }

// InBounds reports whether (x, y) lies on the surface.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x <= s.width && y >= 0 && y <= s.height
}

// Cell returns a copy of the flags at (x, y). The coordinate must be in bounds.
func (s *Surface) Cell(x, y int) Cell { return s.cells[x][y] }

// MarkWalked flags (x, y) as visited.
func (s *Surface) MarkWalked(x, y int) { s.cells[x][y].Walked = true }

// MarkScented leaves a warning at (x, y) for every robot that comes after.
func (s *Surface) MarkScented(x, y int) { s.cells[x][y].Scented = true }

// IsScented reports whether a robot was already lost from (x, y).
func (s *Surface) IsScented(x, y int) bool { return s.cells[x][y].Scented }

// TotalCells is (Width+1) * (Height+1); always at least 1.
func (s *Surface) TotalCells() int { return (s.width + 1) * (s.height + 1) }

// WalkedCells counts cells any robot has stood on.
func (s *Surface) WalkedCells() int {
	return s.count(func(c Cell) bool { return c.Walked })
}

// ScentedCells counts cells a robot was lost from.
func (s *Surface) ScentedCells() int {
	return s.count(func(c Cell) bool { return c.Scented })
}

func (s *Surface) count(pred func(Cell) bool) int {
	n := 0
	for _, col := range s.cells {
		for _, c := range col {
			if pred(c) {
				n++
			}
		}
	}
	return n
}

// Grid cell glyphs used by String.
const (
	GlyphEmpty   = '.'
	GlyphWalked  = 'W'
	GlyphScented = '!'
)

// Rows returns the grid as glyph rows, top row (y = Height) first.
// A scented cell renders as GlyphScented even if it was also walked.
func (s *Surface) Rows() []string {
	rows := make([]string, 0, s.height+1)
	var b strings.Builder
	for y := s.height; y >= 0; y-- {
		b.Reset()
		for x := 0; x <= s.width; x++ {
			c := s.cells[x][y]
			switch {
			case c.Scented:
				b.WriteByte(GlyphScented)
			case c.Walked:
				b.WriteByte(GlyphWalked)
			default:
				b.WriteByte(GlyphEmpty)
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

// String renders the grid, one line per row, north at the top.
func (s *Surface) String() string {
	return strings.Join(s.Rows(), "\n")
}
