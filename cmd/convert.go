package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gnzgo/MartianRobots/sim/scenario"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between the batch text format and scenario files",
	Long:  "Convert batch text inputs to YAML scenarios and scenario files (YAML, JSON, TOML) back to batch text. Output is written to stdout for piping.",
}

// --- martian-robots convert text ---

var textPath string

var convertTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Convert a batch text file to a YAML scenario",
	Run: func(cmd *cobra.Command, args []string) {
		loadConfig(cmd)
		f, err := os.Open(textPath)
		if err != nil {
			logrus.Fatalf("Text conversion failed: %v", err)
		}
		defer f.Close() //nolint:errcheck // read-only file
		if err := textToScenario(os.Stdout, f); err != nil {
			logrus.Fatalf("Text conversion failed: %v", err)
		}
	},
}

// --- martian-robots convert scenario ---

var convertScenarioPath string

var convertScenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Convert a YAML, JSON or TOML scenario to batch text",
	Run: func(cmd *cobra.Command, args []string) {
		loadConfig(cmd)
		sc, err := scenario.LoadScenario(convertScenarioPath)
		if err != nil {
			logrus.Fatalf("Scenario conversion failed: %v", err)
		}
		fmt.Print(sc.Text())
	},
}

// textToScenario parses batch text from r and writes it to w as YAML.
func textToScenario(w io.Writer, r io.Reader) error {
	plan, err := scenario.ParseText(r)
	if err != nil {
		return err
	}
	sc, err := scenario.FromPlan(plan)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	convertTextCmd.Flags().StringVar(&textPath, "file", "", "Path to a batch text file")
	_ = convertTextCmd.MarkFlagRequired("file")

	convertScenarioCmd.Flags().StringVar(&convertScenarioPath, "file", "", "Path to a scenario file")
	_ = convertScenarioCmd.MarkFlagRequired("file")

	convertCmd.AddCommand(convertTextCmd)
	convertCmd.AddCommand(convertScenarioCmd)

	rootCmd.AddCommand(convertCmd)
}
