// Package repl implements the interactive, line-based simulation session.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/sim"
)

// ErrNoSurface is returned when input ends before a valid surface was given.
var ErrNoSurface = errors.New("input ended before a surface was created")

type palette struct {
	banner lipgloss.Style
	info   lipgloss.Style
	result lipgloss.Style
	fail   lipgloss.Style
	grid   lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{banner: plain, info: plain, result: plain, fail: plain, grid: plain}
	}
	return palette{
		banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		result: lipgloss.NewStyle().Bold(true),
		fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		grid:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Session reads answers from in and writes prompts and results to out.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	styles palette
}

// New creates a session. color enables ANSI styling and should only be set
// when out is a terminal.
func New(in io.Reader, out io.Writer, color bool) *Session {
	return &Session{in: bufio.NewReader(in), out: out, styles: newPalette(color)}
}

// Run drives one session: a surface, then robots until the user declines
// another one or input ends, then the statistics and the explored grid.
func (s *Session) Run() (*sim.Simulation, error) {
	s.println(s.styles.banner.Render("################# Welcome to Mars! ###################"))

	simulation, err := s.askSurface()
	if err != nil {
		return nil, err
	}

	s.println(s.styles.info.Render("Excellent! It's now time to move some little robots around."))
	for {
		if done := s.askRobot(simulation); done {
			break
		}
		s.println(s.styles.info.Render("Do you wish to input another robot? (y/N)"))
		answer, err := s.readLine()
		if err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
			break
		}
	}

	s.summary(simulation)
	return simulation, nil
}

func (s *Session) askSurface() (*sim.Simulation, error) {
	s.println(s.styles.info.Render("Please specify the size of the terrain, in the format 'X Y'."))
	for {
		line, err := s.readLine()
		if err != nil {
			return nil, ErrNoSurface
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			s.fail(fmt.Errorf("two values separated by whitespace were expected, got %d", len(fields)))
			continue
		}
		simulation, err := sim.NewSimulation(fields[0], fields[1])
		if err != nil {
			s.fail(err)
			continue
		}
		return simulation, nil
	}
}

// askRobot places one robot and moves it. It reports true when input ended.
func (s *Session) askRobot(simulation *sim.Simulation) bool {
	s.println("")
	s.println(s.styles.info.Render("Specify the starting coordinates and an orientation (N, S, E, W), e.g. '3 2 S'."))

	var robot *sim.Robot
	for robot == nil {
		line, err := s.readLine()
		if err != nil {
			return true
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			s.fail(fmt.Errorf("three values separated by whitespace were expected, got %d", len(fields)))
			continue
		}
		if robot, err = simulation.Place(fields[0], fields[1], fields[2]); err != nil {
			s.fail(err)
		}
	}

	s.println(s.styles.info.Render("The robot is now placed on Mars. Input a movement sequence of 'L', 'R' and 'F', e.g. 'FFFRLFRLF'."))
	for {
		line, err := s.readLine()
		if err != nil {
			return true
		}
		if err := simulation.Move(robot, strings.TrimSpace(line)); err != nil {
			s.fail(err)
			continue
		}
		break
	}

	s.println(s.styles.info.Render("Movement applied. The final position and orientation are:"))
	s.println(s.styles.result.Render(robot.String()))
	logrus.Debugf("repl: robot %d finished as %s", robot.ID, robot)
	return false
}

func (s *Session) summary(simulation *sim.Simulation) {
	s.println("")
	s.println(s.styles.info.Render("The exploration mission is done! Here's a summary of everything that happened:"))
	s.println("")
	simulation.Metrics().Print(s.out)
	s.println("")
	s.println(s.styles.info.Render(fmt.Sprintf("%c = a robot walked here", sim.GlyphWalked)))
	s.println(s.styles.info.Render(fmt.Sprintf("%c = a robot was lost here", sim.GlyphScented)))
	s.println(s.styles.info.Render(fmt.Sprintf("%c = unexplored", sim.GlyphEmpty)))
	s.println("")
	for _, row := range simulation.Surface().Rows() {
		s.println("    " + s.styles.grid.Render(row))
	}
}

func (s *Session) fail(err error) {
	s.println(s.styles.fail.Render("Oops. That didn't look right. Please try again! " + err.Error()))
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned; io.EOF only once nothing is left.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line) //nolint:errcheck // best-effort terminal output
}
