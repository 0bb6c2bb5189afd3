package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gnzgo/MartianRobots/sim"
	"github.com/gnzgo/MartianRobots/sim/scenario"
	"github.com/gnzgo/MartianRobots/sim/trace"
)

var (
	inputPath    string // Batch text file, "-" for stdin
	scenarioPath string // YAML/JSON/TOML scenario file
	showStats    bool
	showGrid     bool
	showTrace    bool
	outputJSON   bool
)

// runOptions selects the extra sections printed after the result lines.
type runOptions struct {
	Stats bool
	Grid  bool
	Trace bool
	JSON  bool
}

// runCmd executes one scenario and prints a result line per robot
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scenario and print the final robot positions",
	Run: func(cmd *cobra.Command, args []string) {
		plan, err := loadPlan(inputPath, scenarioPath)
		if err != nil {
			logrus.Fatalf("Failed to read scenario: %v", err)
		}
		cfg := loadConfig(cmd)
		opts := runOptions{
			Stats: showStats,
			Grid:  showGrid,
			Trace: traceEnabled(cmd.Flags().Changed("trace"), showTrace, cfg.Trace.Level),
			JSON:  outputJSON,
		}
		if err := runPlan(os.Stdout, plan, opts); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// loadPlan reads exactly one of a text input (path or "-") or a structured scenario.
func loadPlan(input, scenarioFile string) (*scenario.Plan, error) {
	if scenarioFile != "" {
		sc, err := scenario.LoadScenario(scenarioFile)
		if err != nil {
			return nil, err
		}
		return sc.Plan(), nil
	}
	if input == "-" {
		return scenario.ParseText(os.Stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", input, err)
	}
	defer f.Close() //nolint:errcheck // read-only file
	return scenario.ParseText(f)
}

// traceEnabled lets an explicit --trace win over the configured trace.level.
func traceEnabled(flagSet, flag bool, configured string) bool {
	if flagSet {
		return flag
	}
	return trace.TraceLevel(configured) == trace.TraceLevelSteps
}

// runPlan executes plan and writes the requested report to w.
func runPlan(w io.Writer, plan *scenario.Plan, opts runOptions) error {
	level := trace.TraceLevelNone
	if opts.Trace {
		level = trace.TraceLevelSteps
	}
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: level})

	out, err := scenario.Execute(plan, sim.WithTrace(st))
	if err != nil {
		return err
	}

	if opts.JSON {
		data, err := json.MarshalIndent(out.Results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		fmt.Fprintln(w, string(data))
	} else {
		for _, line := range out.Lines() {
			fmt.Fprintln(w, line)
		}
	}

	if opts.Stats {
		fmt.Fprintln(w)
		out.Simulation.Metrics().Print(w)
	}
	if opts.Grid {
		fmt.Fprintln(w)
		fmt.Fprintln(w, out.Simulation.Surface().String())
	}
	if opts.Trace {
		fmt.Fprintln(w)
		printTraceSummary(w, trace.Summarize(st))
	}
	return nil
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Step Trace ===")
	fmt.Fprintf(w, "Commands applied     : %d\n", s.TotalSteps)
	fmt.Fprintf(w, "Turns                : %d\n", s.Turns)
	fmt.Fprintf(w, "Moves                : %d\n", s.Moves)
	fmt.Fprintf(w, "Scent saves          : %d\n", s.ScentSaves)
	fmt.Fprintf(w, "Losses               : %d\n", s.Losses)
	ids := make([]int, 0, len(s.StepsPerRobot))
	for id := range s.StepsPerRobot {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  robot %-3d          : %d commands\n", id, s.StepsPerRobot[id])
	}
}

func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "", "Path to a batch text file (\"-\" for stdin)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML, JSON or TOML scenario file")
	runCmd.Flags().BoolVar(&showStats, "stats", false, "Print fleet statistics")
	runCmd.Flags().BoolVar(&showGrid, "grid", false, "Print the explored grid")
	runCmd.Flags().BoolVar(&showTrace, "trace", false, "Record every command and print a step summary (default from trace.level)")
	runCmd.Flags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
	runCmd.MarkFlagsMutuallyExclusive("input", "scenario")
	runCmd.MarkFlagsOneRequired("input", "scenario")

	rootCmd.AddCommand(runCmd)
}
