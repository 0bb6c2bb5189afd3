package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gnzgo/MartianRobots/internal/config"
)

var (
	logLevel   string // Log verbosity level
	configPath string // Optional service configuration file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "martian-robots",
	Short: "Simulator for robots exploring a bounded grid on Mars",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// loadConfig reads --config plus MARS_* overrides. The configured log level
// applies only when --log was not given explicitly.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if !cmd.Flags().Changed("log") {
		setLogLevel(cfg.Log.Level)
	}
	return cfg
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML service configuration file")
}
