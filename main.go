package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/pflag"

	"q.log/bigm/config"
	"q.log/bigm/instance"
	"q.log/bigm/instance/mps"
	"q.log/bigm/logging"
	"q.log/bigm/model"
	"q.log/bigm/report"
	"q.log/bigm/simplex"
)

type job struct {
	name    string
	problem *model.Problem
}

type result struct {
	job
	solution *simplex.Solution
	err      error
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("bigm", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "configuration file")
	example := fs.Bool("example", false, "solve the built-in production plan example")
	showCanonical := fs.Bool("canonical", false, "print the canonical form of each problem")
	showTrace := fs.Bool("trace", false, "print the solver trace of each problem")
	config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: bigm [flags] problem.{yaml,json,toml,mps}...\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger, closer := logging.New(cfg.Logging())
	defer closer.Close()

	jobs, err := loadJobs(fs.Args(), *example)
	if err != nil {
		logger.Error("load problems", "err", err)
		return 2
	}
	if len(jobs) == 0 {
		fs.Usage()
		return 2
	}

	results := solveAll(jobs, cfg, logger)

	out := io.Writer(os.Stdout)
	if cfg.Report.Output != "" {
		f, err := os.Create(cfg.Report.Output)
		if err != nil {
			logger.Error("create report", "err", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	code := 0
	for i, r := range results {
		if err := writeResult(out, r, cfg, *showCanonical, *showTrace); err != nil {
			logger.Error("write report", "problem", r.name, "err", err)
			code = 1
			continue
		}
		if cfg.Report.Plot != "" && r.solution != nil {
			path := plotPath(cfg.Report.Plot, i, len(results))
			if err := report.PlotObjective(r.solution.History, path); err != nil {
				logger.Error("plot", "problem", r.name, "err", err)
				code = 1
			}
		}
		if r.err != nil || r.solution.Err() != nil {
			code = 1
		}
	}
	return code
}

func loadJobs(paths []string, example bool) ([]job, error) {
	var jobs []job
	if example {
		jobs = append(jobs, job{name: "example", problem: instance.Example()})
	}
	for _, path := range paths {
		var (
			p   *model.Problem
			err error
		)
		if instance.IsMPS(path) {
			p, err = mps.Read(path)
		} else {
			p, err = instance.Load(path)
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{name: path, problem: p})
	}
	return jobs, nil
}

// solveAll solves every job on a bounded pool and returns results in job order.
func solveAll(jobs []job, cfg *config.Config, logger *slog.Logger) []result {
	results := make([]result, len(jobs))
	p := pool.New().WithMaxGoroutines(cfg.Workers)
	for i, j := range jobs {
		p.Go(func() {
			l := logger.With("problem", j.name)
			opts := append(cfg.SolverOptions(), simplex.WithLogger(l))
			sol, err := simplex.Solve(j.problem, opts...)
			if err == nil {
				l.Info("solved", "status", sol.Status.String(), "iterations", sol.Iterations, "value", sol.OptimalValue)
			}
			results[i] = result{job: j, solution: sol, err: err}
		})
	}
	p.Wait()
	return results
}

func writeResult(w io.Writer, r result, cfg *config.Config, showCanonical, showTrace bool) error {
	if r.err != nil {
		_, err := fmt.Fprintf(w, "== %s\n%v\n\n", r.name, r.err)
		return err
	}
	places := cfg.Report.Precision

	if cfg.Report.Format == "csv" {
		return errors.Wrap(report.WriteCSV(w, r.problem, r.solution, places), r.name)
	}

	if _, err := fmt.Fprintf(w, "== %s\n", r.name); err != nil {
		return err
	}
	if showCanonical && r.solution.Canonical != nil {
		if err := report.WriteCanonical(w, r.solution.Canonical); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if err := report.WriteTableaux(w, r.solution.History, places); err != nil {
		return err
	}
	if err := report.WriteSummary(w, r.problem, r.solution, places); err != nil {
		return err
	}
	if showTrace {
		fmt.Fprint(w, "\n", r.solution.Trace.String())
	}
	_, err := fmt.Fprintln(w)
	return err
}

// plotPath numbers the chart file when several problems are solved.
func plotPath(path string, i, n int) string {
	if n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}
