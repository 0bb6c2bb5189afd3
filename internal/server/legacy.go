package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gnzgo/MartianRobots/sim/scenario"
)

// LegacySimulation is the body accepted by POST /MartianSimulation.
type LegacySimulation struct {
	MarsSize      *LegacySize          `json:"marsSize"`
	RobotCommands []LegacyRobotCommand `json:"robotCommands"`
}

// LegacySize holds the maximum x and y coordinates of the surface.
type LegacySize struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LegacyRobotCommand is one placement and its movement commands.
type LegacyRobotCommand struct {
	StartingPosition *LegacyPosition `json:"startingPosition"`
	MovementCommands string          `json:"movementCommands"`
}

// LegacyPosition is a coordinate plus a heading.
type LegacyPosition struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation string `json:"orientation"`
}

// LegacyResult is one element of the POST /MartianSimulation response.
type LegacyResult struct {
	FinalPosition LegacyPosition `json:"finalPosition"`
	Lost          bool           `json:"lost"`
}

// decodeLegacy reads a LegacySimulation strictly and maps it to a Scenario.
func decodeLegacy(r io.Reader) (*scenario.Scenario, error) {
	var body LegacySimulation
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("unexpected data after the request object")
	}
	if body.MarsSize == nil {
		return nil, errors.New("marsSize is required")
	}
	if body.RobotCommands == nil {
		return nil, errors.New("robotCommands is required")
	}

	sc := &scenario.Scenario{
		Surface: &scenario.SurfaceSpec{Width: body.MarsSize.X, Height: body.MarsSize.Y},
		Agents:  make([]scenario.AgentSpec, 0, len(body.RobotCommands)),
	}
	for i, rc := range body.RobotCommands {
		if rc.StartingPosition == nil {
			return nil, fmt.Errorf("robotCommands[%d]: startingPosition is required", i)
		}
		sc.Agents = append(sc.Agents, scenario.AgentSpec{
			Start: &scenario.StartSpec{
				X:           rc.StartingPosition.X,
				Y:           rc.StartingPosition.Y,
				Orientation: rc.StartingPosition.Orientation,
			},
			Commands: rc.MovementCommands,
		})
	}
	return sc, nil
}

// handleLegacySimulate serves the original request and response shapes.
func (s *Server) handleLegacySimulate(c echo.Context) error {
	sc, err := decodeLegacy(c.Request().Body)
	if err != nil {
		return reject(c, err)
	}
	out, err := execute(sc)
	if err != nil {
		return reject(c, err)
	}
	results := make([]LegacyResult, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, LegacyResult{
			FinalPosition: LegacyPosition{
				X:           r.Final.X,
				Y:           r.Final.Y,
				Orientation: r.Final.Orientation.String(),
			},
			Lost: r.Lost,
		})
	}
	return c.JSON(http.StatusOK, results)
}
