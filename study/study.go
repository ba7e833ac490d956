// Package study runs mesh-refinement convergence studies of the LTES models:
// energy conservation and solve time per level, and the error of the fluid
// and PCM temperatures against the finest level.
package study

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ltes/calculator"
	"ltes/mesh"
	"ltes/parameter"
	"ltes/solution"
	"ltes/solver"
)

var ErrLevels = errors.New("invalid refinement levels")

// Config describes a refinement study.
type Config struct {
	MinLevel int
	MaxLevel int
	EndTime  float64
	Outputs  int // output intervals per solve

	Params *parameter.Values
	Models []string

	Solver       string
	SolverConfig solver.Config
	Workers      int

	// comparison grid
	GridX, GridR, GridT int
}

// DefaultConfig is levels 0 to 4 of Nallusamy2007 with h = 1000 W.m-2.K-1
// over 10000 s.
func DefaultConfig() Config {
	p, _ := parameter.Get("Nallusamy2007")
	p.HeatTransferCoefficient = 1000
	return Config{
		MinLevel:     0,
		MaxLevel:     4,
		EndTime:      10000,
		Outputs:      100,
		Params:       p,
		Models:       calculator.Names(),
		Solver:       solver.ExplicitName,
		SolverConfig: solver.DefaultConfig(),
		Workers:      4,
		GridX:        50,
		GridR:        50,
		GridT:        100,
	}
}

// Points returns the capsule and pipe mesh points of a refinement level.
func Points(level int) (capsule, pipe int) {
	f := math.Pow(2, float64(level))
	return int(math.Floor(10 * f)), int(math.Floor(20 * f))
}

// Run is one solve of the study.
type Run struct {
	Model                 string             `csv:"Model"`
	Level                 int                `csv:"Level"`
	CapsulePoints         int                `csv:"Capsule points"`
	PipePoints            int                `csv:"Pipe points"`
	Refinement            float64            `csv:"Mesh refinement factor"`
	MeanConservationError float64            `csv:"Relative error in energy conservation [%]"`
	SolveTime             float64            `csv:"Solve time [s]"`
	FluidError            float64            `csv:"HTF temperature relative error"`
	PCMError              float64            `csv:"PCM temperature relative error"`
	Solution              *solution.Solution `csv:"-"`
}

// Result holds the runs of every model, ordered by level.
type Result struct {
	Levels []int
	Models []string
	Runs   map[string][]*Run
}

// Refinement lists the mesh refinement factors 2^level.
func (r *Result) Refinement() []float64 {
	out := make([]float64, len(r.Levels))
	for i, l := range r.Levels {
		out[i] = math.Pow(2, float64(l))
	}
	return out
}

// ConservationErrors returns the mean relative conservation error per level.
func (r *Result) ConservationErrors(model string) []float64 {
	return r.column(model, func(run *Run) float64 { return run.MeanConservationError })
}

// SolveTimes returns the solve time in seconds per level.
func (r *Result) SolveTimes(model string) []float64 {
	return r.column(model, func(run *Run) float64 { return run.SolveTime })
}

// FluidErrors returns the HTF temperature error of every level but the
// finest.
func (r *Result) FluidErrors(model string) []float64 {
	v := r.column(model, func(run *Run) float64 { return run.FluidError })
	return v[:len(v)-1]
}

// PCMErrors returns the PCM temperature error of every level but the finest.
func (r *Result) PCMErrors(model string) []float64 {
	v := r.column(model, func(run *Run) float64 { return run.PCMError })
	return v[:len(v)-1]
}

func (r *Result) column(model string, f func(*Run) float64) []float64 {
	runs := r.Runs[model]
	out := make([]float64, len(runs))
	for i, run := range runs {
		out[i] = f(run)
	}
	return out
}

// RelativeL2 is sqrt(mean((a-b)²) / mean(b²)).
func RelativeL2(a, b []float64) float64 {
	return floats.Distance(a, b, 2) / floats.Norm(b, 2)
}

// Execute solves every model on every level and measures the errors.
func Execute(ctx context.Context, c Config) (*Result, error) {
	if c.MinLevel < 0 || c.MaxLevel <= c.MinLevel {
		return nil, fmt.Errorf("%w: [%d, %d] needs at least two levels", ErrLevels, c.MinLevel, c.MaxLevel)
	}
	if c.Params == nil {
		return nil, fmt.Errorf("study: %w", parameter.ErrMissingParameter)
	}
	s, err := solver.New(c.Solver, c.SolverConfig)
	if err != nil {
		return nil, err
	}

	res := &Result{Models: c.Models, Runs: make(map[string][]*Run)}
	for l := c.MinLevel; l <= c.MaxLevel; l++ {
		res.Levels = append(res.Levels, l)
	}
	times := solver.Times(c.EndTime, c.Outputs)
	for _, l := range res.Levels {
		for _, name := range c.Models {
			run, err := solve(ctx, c, s, name, l, times)
			if err != nil {
				return nil, err
			}
			res.Runs[name] = append(res.Runs[name], run)
		}
	}
	if err := res.compare(c); err != nil {
		return nil, err
	}
	return res, nil
}

func solve(ctx context.Context, c Config, s solver.Solver, name string, level int, times []float64) (*Run, error) {
	nr, nx := Points(level)
	msh, err := mesh.New(c.Params.CapsuleRadius, c.Params.PipeLength, nr, nx)
	if err != nil {
		return nil, err
	}
	m, err := calculator.New(name, c.Params.Clone(), msh, c.Workers)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	sol, err := s.Solve(ctx, m, times)
	if err != nil {
		return nil, fmt.Errorf("%s model, level %d: %w", name, level, err)
	}
	rel, err := sol.Scalar(solution.RelativeConservationError)
	if err != nil {
		return nil, err
	}
	run := &Run{
		Model:                 name,
		Level:                 level,
		CapsulePoints:         nr,
		PipePoints:            nx,
		Refinement:            math.Pow(2, float64(level)),
		MeanConservationError: stat.Mean(rel, nil),
		SolveTime:             sol.SolveTime.Seconds(),
		Solution:              sol,
	}
	log.WithFields(log.Fields{
		"model":      name,
		"level":      level,
		"solve time": sol.SolveTime.Round(time.Millisecond),
		"error [%]":  run.MeanConservationError,
	}).Info("refinement level solved")
	return run, nil
}

// compare samples every solution on a common grid and measures it against
// the finest level of the same model.
func (r *Result) compare(c Config) error {
	p := c.Params
	xs := floats.Span(make([]float64, c.GridX), 0, p.PipeLength)
	rs := floats.Span(make([]float64, c.GridR), 0, p.CapsuleRadius)
	ts := floats.Span(make([]float64, c.GridT), 0, c.EndTime)
	for _, name := range r.Models {
		runs := r.Runs[name]
		finest := runs[len(runs)-1].Solution
		fluidRef, err := finest.FluidTemperatureGrid(ts, xs)
		if err != nil {
			return err
		}
		pcmRef, err := finest.PCMTemperatureGrid(ts, xs, rs)
		if err != nil {
			return err
		}
		for _, run := range runs[:len(runs)-1] {
			fluid, err := run.Solution.FluidTemperatureGrid(ts, xs)
			if err != nil {
				return err
			}
			pcm, err := run.Solution.PCMTemperatureGrid(ts, xs, rs)
			if err != nil {
				return err
			}
			run.FluidError = RelativeL2(fluid, fluidRef)
			run.PCMError = RelativeL2(pcm, pcmRef)
		}
	}
	return nil
}

// WriteCSV writes one row per run.
func (r *Result) WriteCSV(path string) error {
	var rows []*Run
	for _, l := range r.Levels {
		for _, name := range r.Models {
			for _, run := range r.Runs[name] {
				if run.Level == l {
					rows = append(rows, run)
				}
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads the rows written by WriteCSV. Solutions are not restored.
func ReadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rows []*Run
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	res := &Result{Runs: make(map[string][]*Run)}
	seen := make(map[int]bool)
	for _, run := range rows {
		if _, ok := res.Runs[run.Model]; !ok {
			res.Models = append(res.Models, run.Model)
		}
		res.Runs[run.Model] = append(res.Runs[run.Model], run)
		if !seen[run.Level] {
			seen[run.Level] = true
			res.Levels = append(res.Levels, run.Level)
		}
	}
	return res, nil
}
