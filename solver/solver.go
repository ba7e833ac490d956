// Package solver integrates the LTES models in time.
package solver

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"ltes/calculator"
	"ltes/solution"
)

var (
	ErrUnknownSolver = errors.New("unknown solver")
	ErrBadTimes      = errors.New("output times must be increasing")
)

// Solver names accepted by New.
const (
	ExplicitName = "explicit"
	DopriName    = "dopri"
)

// Observer is called with every stored output. y must not be retained.
type Observer func(t float64, y []float64)

// Solver integrates a model from its initial state, storing the state at
// each output time. The first output time is the initial time.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m calculator.Model, times []float64) (*solution.Solution, error)
}

// Config holds the settings shared by the solvers.
type Config struct {
	CFL      float64 // fraction of the stable explicit step
	RelError float64
	AbsError float64
	Observer Observer
}

func DefaultConfig() Config {
	return Config{CFL: 0.9, RelError: 1e-6, AbsError: 1e-6}
}

// New selects a solver by name.
func New(name string, c Config) (Solver, error) {
	switch name {
	case ExplicitName:
		return &Explicit{CFL: c.CFL, Observer: c.Observer}, nil
	case DopriName:
		return &Dopri{RelError: c.RelError, AbsError: c.AbsError, Observer: c.Observer}, nil
	}
	return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownSolver, name, ExplicitName, DopriName)
}

// Names lists the solver names accepted by New.
func Names() []string {
	return []string{ExplicitName, DopriName}
}

// Times returns n+1 equally spaced output times on [0, end].
func Times(end float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	return floats.Span(make([]float64, n+1), 0, end)
}

func checkTimes(times []float64) error {
	if len(times) == 0 {
		return fmt.Errorf("%w: no times given", ErrBadTimes)
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return fmt.Errorf("%w: t[%d]=%g after t[%d]=%g", ErrBadTimes, i, times[i], i-1, times[i-1])
		}
	}
	return nil
}

func notify(o Observer, t float64, y []float64) {
	if o != nil {
		o(t, y)
	}
}
