// Package batch runs every scenario file of a directory and writes one
// result file per input.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gnzgo/MartianRobots/internal/config"
	"github.com/gnzgo/MartianRobots/internal/metrics"
	"github.com/gnzgo/MartianRobots/sim/scenario"
)

// Processor converts input files to output files with a bounded number of workers.
type Processor struct {
	workers int
	pattern string
	suffix  string
	settle  time.Duration
}

// NewProcessor returns a processor for cfg. Zero values fall back to the defaults.
func NewProcessor(cfg config.BatchConfig) *Processor {
	def := config.Default().Batch
	p := &Processor{workers: cfg.Workers, pattern: cfg.Pattern, suffix: cfg.OutputSuffix, settle: cfg.Settle}
	if p.workers < 1 {
		p.workers = def.Workers
	}
	if p.pattern == "" {
		p.pattern = def.Pattern
	}
	if p.suffix == "" {
		p.suffix = def.OutputSuffix
	}
	if p.settle <= 0 {
		p.settle = def.Settle
	}
	return p
}

// FileResult is the outcome of one input file.
type FileResult struct {
	Input   string
	Output  string // empty unless the file was written
	Robots  int
	Skipped bool // empty input
	Err     error
}

// Report summarizes one ProcessDir run. Files are in input name order.
type Report struct {
	RunID string
	Files []FileResult
}

// Failed returns the files that could not be processed.
func (r *Report) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Written counts output files produced.
func (r *Report) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Output != "" {
			n++
		}
	}
	return n
}

// OutputName maps "name.ext" to "name<suffix>".
func (p *Processor) OutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + p.suffix
}

// matches reports whether name is an input file. Outputs are never inputs,
// which matters when the input and output directories are the same.
func (p *Processor) matches(name string) bool {
	base := filepath.Base(name)
	if strings.HasSuffix(base, p.suffix) {
		return false
	}
	ok, _ := filepath.Match(p.pattern, base)
	return ok
}

// ProcessDir processes every matching file of inDir into outDir. outDir is
// created if missing. A failing file is recorded in the report and does
// not stop the others; the returned error covers directory-level problems
// and cancellation only.
func (p *Processor) ProcessDir(ctx context.Context, inDir, outDir string) (*Report, error) {
	info, err := os.Stat(inDir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", inDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	candidates, err := filepath.Glob(filepath.Join(inDir, p.pattern))
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", p.pattern, err)
	}
	var inputs []string
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.Mode().IsRegular() && p.matches(c) {
			inputs = append(inputs, c)
		}
	}

	report := &Report{RunID: uuid.NewString(), Files: make([]FileResult, len(inputs))}
	log := logrus.WithField("run_id", report.RunID)
	log.Infof("processing %d files from %s with %d workers", len(inputs), inDir, p.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Files[i] = p.ProcessFile(in, outDir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for _, f := range report.Failed() {
		log.Warnf("%s: %v", f.Input, f.Err)
	}
	log.Infof("wrote %d files, %d failed", report.Written(), len(report.Failed()))
	return report, nil
}

// ProcessFile runs one input file and writes its results to outDir.
func (p *Processor) ProcessFile(input, outDir string) FileResult {
	res := FileResult{Input: input}

	data, err := os.ReadFile(input)
	if err != nil {
		res.Err = fmt.Errorf("reading input: %w", err)
		return res
	}
	plan, err := scenario.ParseText(bytes.NewReader(data))
	if errors.Is(err, scenario.ErrEmptyInput) {
		res.Skipped = true
		return res
	}
	if err != nil {
		metrics.ObserveError(err)
		res.Err = err
		return res
	}
	out, err := scenario.Execute(plan)
	if err != nil {
		metrics.ObserveError(err)
		res.Err = err
		return res
	}
	metrics.ObserveSimulation(metrics.SourceBatch, out.Simulation)

	path := filepath.Join(outDir, p.OutputName(input))
	if err := os.WriteFile(path, []byte(strings.Join(out.Lines(), "\n")), 0o644); err != nil {
		res.Err = fmt.Errorf("writing output: %w", err)
		return res
	}
	res.Output = path
	res.Robots = len(out.Results)
	return res
}
