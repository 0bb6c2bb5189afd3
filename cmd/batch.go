package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gnzgo/MartianRobots/internal/batch"
)

var (
	batchIn      string
	batchOut     string
	batchWorkers int
	batchWatch   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every input file of a directory into result files",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		if cmd.Flags().Changed("workers") {
			cfg.Batch.Workers = batchWorkers
		}
		p := batch.NewProcessor(cfg.Batch)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if batchWatch {
			if err := p.Watch(ctx, batchIn, batchOut); err != nil {
				logrus.Fatalf("Watch failed: %v", err)
			}
			return
		}

		report, err := p.ProcessDir(ctx, batchIn, batchOut)
		if err != nil {
			logrus.Fatalf("Batch failed: %v", err)
		}
		if failed := report.Failed(); len(failed) > 0 {
			for _, f := range failed {
				logrus.Errorf("%s: %v", f.Input, f.Err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchIn, "in", "", "Input directory")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "Output directory (created if missing)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "Files processed concurrently (overrides batch.workers)")
	batchCmd.Flags().BoolVar(&batchWatch, "watch", false, "Keep running and process new or changed files")
	_ = batchCmd.MarkFlagRequired("in")
	_ = batchCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(batchCmd)
}
