// Package scenario loads fleet scenarios from text, YAML, JSON or TOML and
// runs them through the simulation core.
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Scenario is one surface and the robots placed on it, in order.
// Its JSON form is the HTTP request body.
type Scenario struct {
	Surface *SurfaceSpec `json:"surface" yaml:"surface" toml:"surface"`
	Agents  []AgentSpec  `json:"agents" yaml:"agents" toml:"agents"`
}

// SurfaceSpec holds the maximum x and y coordinates of the grid.
type SurfaceSpec struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// AgentSpec is a start position plus a command sequence.
type AgentSpec struct {
	Start    *StartSpec `json:"start" yaml:"start" toml:"start"`
	Commands string     `json:"commands" yaml:"commands" toml:"commands"`
}

// StartSpec is a placement.
type StartSpec struct {
	X           int    `json:"x" yaml:"x" toml:"x"`
	Y           int    `json:"y" yaml:"y" toml:"y"`
	Orientation string `json:"orientation" yaml:"orientation" toml:"orientation"`
}

// Format names a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// FormatFromPath picks a format from the file extension; unknown extensions are text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// LoadScenario reads and parses a scenario file, choosing the decoder by extension.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	format := FormatFromPath(path)
	if format == FormatText {
		plan, err := ParseText(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
		}
		return FromPlan(plan)
	}
	sc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return sc, nil
}

// Decode parses a structured scenario in the given format and validates its shape.
func Decode(r io.Reader, format Format) (*Scenario, error) {
	var sc Scenario
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(&sc); err != nil {
			return nil, err
		}
	case FormatJSON:
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&sc); err != nil {
			return nil, err
		}
		if err := decoder.Decode(&struct{}{}); err != io.EOF {
			return nil, fmt.Errorf("unexpected data after the scenario object")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&sc)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that required sections are present. Value ranges are left
// to the simulation core so that every adapter reports them the same way.
func (s *Scenario) Validate() error {
	if s.Surface == nil {
		return fmt.Errorf("surface is required")
	}
	for i, a := range s.Agents {
		if a.Start == nil {
			return fmt.Errorf("agents[%d]: start is required", i)
		}
	}
	return nil
}

// Plan converts the typed scenario into the raw tokens the core consumes.
func (s *Scenario) Plan() *Plan {
	p := &Plan{
		Width:  strconv.Itoa(s.Surface.Width),
		Height: strconv.Itoa(s.Surface.Height),
		Robots: make([]PlannedRobot, 0, len(s.Agents)),
	}
	for _, a := range s.Agents {
		p.Robots = append(p.Robots, PlannedRobot{
			X:           strconv.Itoa(a.Start.X),
			Y:           strconv.Itoa(a.Start.Y),
			Orientation: a.Start.Orientation,
			Commands:    a.Commands,
		})
	}
	return p
}

// FromPlan builds a typed scenario from raw tokens. Coordinates and sizes
// must be integers; everything else is checked when the scenario runs.
func FromPlan(p *Plan) (*Scenario, error) {
	w, err := strconv.Atoi(p.Width)
	if err != nil {
		return nil, fmt.Errorf("%s: width %q is not an integer", p.location(-1), p.Width)
	}
	h, err := strconv.Atoi(p.Height)
	if err != nil {
		return nil, fmt.Errorf("%s: height %q is not an integer", p.location(-1), p.Height)
	}
	sc := &Scenario{Surface: &SurfaceSpec{Width: w, Height: h}, Agents: make([]AgentSpec, 0, len(p.Robots))}
	for i, r := range p.Robots {
		x, err := strconv.Atoi(r.X)
		if err != nil {
			return nil, fmt.Errorf("%s: x %q is not an integer", p.location(i), r.X)
		}
		y, err := strconv.Atoi(r.Y)
		if err != nil {
			return nil, fmt.Errorf("%s: y %q is not an integer", p.location(i), r.Y)
		}
		sc.Agents = append(sc.Agents, AgentSpec{
			Start:    &StartSpec{X: x, Y: y, Orientation: r.Orientation},
			Commands: r.Commands,
		})
	}
	return sc, nil
}

// Text renders the scenario in the batch file format.
func (s *Scenario) Text() string {
	return s.Plan().Text()
}
