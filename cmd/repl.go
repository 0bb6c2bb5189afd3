package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gnzgo/MartianRobots/internal/repl"
)

var noColor bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Place and move robots interactively",
	Run: func(cmd *cobra.Command, args []string) {
		loadConfig(cmd)
		color := !noColor && term.IsTerminal(int(os.Stdout.Fd()))
		if _, err := repl.New(os.Stdin, os.Stdout, color).Run(); err != nil {
			logrus.Fatalf("Session ended: %v", err)
		}
	},
}

func init() {
	replCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.AddCommand(replCmd)
}
