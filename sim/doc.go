// Package sim provides the core state machine of the Martian robots simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - surface.go: the bounded grid and its monotonic walked/scent flags
//   - orientation.go: headings, commands and the rotation/advance tables
//   - move.go: the Active → Lost state machine driven by L/F/R commands
//   - simulation.go: the fleet, placement validation and statistics
//
// # Scent
//
// A robot that steps off the grid is lost and leaves a scent on the cell it
// fell from. A later forward move off the grid from a scented cell is ignored,
// so only the first robot over any given edge cell is lost.
//
// # Architecture
//
// The core is synchronous and holds no global state. Adapters live elsewhere:
//   - sim/scenario/: text and YAML/JSON/TOML scenario parsing and execution
//   - sim/trace/: per-command step recording
//   - internal/server, internal/batch, internal/repl: HTTP, file and console front ends
//
// All validation failures are typed (DimensionError, PlacementError,
// CommandError) and match ErrInvalidDimension, ErrInvalidPlacement and
// ErrInvalidCommandSequence via errors.Is.
package sim
