package scenario

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/sim"
)

// GeneratorConfig describes a family of random scenarios. Zero Width and
// Height draw the size; MaxCommands defaults to MaxCommandLength.
type GeneratorConfig struct {
	Seed        int64
	Width       int
	Height      int
	Robots      int
	MinCommands int
	MaxCommands int
}

var (
	orientations = []sim.Orientation{sim.North, sim.East, sim.South, sim.West}
	commandSet   = []sim.Command{sim.TurnLeft, sim.Forward, sim.TurnRight}
)

// Generate creates a valid scenario. Deterministic given the same config.
func Generate(cfg GeneratorConfig) (*Scenario, error) {
	if cfg.MaxCommands == 0 {
		cfg.MaxCommands = sim.MaxCommandLength
	}
	switch {
	case cfg.Robots < 0:
		return nil, fmt.Errorf("robot count cannot be negative, got %d", cfg.Robots)
	case cfg.Width < 0 || cfg.Width > sim.MaxCoordinate || cfg.Height < 0 || cfg.Height > sim.MaxCoordinate:
		return nil, fmt.Errorf("surface %dx%d outside [0,%d]", cfg.Width, cfg.Height, sim.MaxCoordinate)
	case cfg.MinCommands < 0 || cfg.MinCommands > cfg.MaxCommands || cfg.MaxCommands > sim.MaxCommandLength:
		return nil, fmt.Errorf("command length range [%d,%d] outside [0,%d]", cfg.MinCommands, cfg.MaxCommands, sim.MaxCommandLength)
	}

	rng := sim.NewPartitionedRNG(cfg.Seed)
	logrus.Debugf("generating %d robots with seed %d", cfg.Robots, rng.Seed())
	surfaceRNG := rng.ForSubsystem(sim.SubsystemSurface)
	fleetRNG := rng.ForSubsystem(sim.SubsystemFleet)

	width, height := cfg.Width, cfg.Height
	if width == 0 && height == 0 {
		width = 1 + surfaceRNG.Intn(sim.MaxCoordinate)
		height = 1 + surfaceRNG.Intn(sim.MaxCoordinate)
	}

	sc := &Scenario{
		Surface: &SurfaceSpec{Width: width, Height: height},
		Agents:  make([]AgentSpec, 0, cfg.Robots),
	}
	for i := 0; i < cfg.Robots; i++ {
		sc.Agents = append(sc.Agents, AgentSpec{
			Start: &StartSpec{
				X:           fleetRNG.Intn(width + 1),
				Y:           fleetRNG.Intn(height + 1),
				Orientation: orientations[fleetRNG.Intn(len(orientations))].String(),
			},
			Commands: randomCommands(fleetRNG, cfg.MinCommands, cfg.MaxCommands),
		})
	}
	return sc, nil
}

func randomCommands(rng *rand.Rand, minLen, maxLen int) string {
	n := minLen + rng.Intn(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte(commandSet[rng.Intn(len(commandSet))]))
	}
	return b.String()
}
