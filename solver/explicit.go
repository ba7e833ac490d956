package solver

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"ltes/calculator"
	"ltes/solution"
)

// Explicit is forward Euler at a fixed fraction of the stable time step,
// shortened where needed to land on the output times.
type Explicit struct {
	CFL      float64
	Observer Observer
}

func (e *Explicit) Name() string { return ExplicitName }

func (e *Explicit) Solve(ctx context.Context, m calculator.Model, times []float64) (*solution.Solution, error) {
	if err := checkTimes(times); err != nil {
		return nil, err
	}
	cfl := e.CFL
	if cfl <= 0 || cfl > 1 {
		return nil, fmt.Errorf("explicit solver: CFL %g not in (0, 1]", cfl)
	}
	y, err := m.Initial()
	if err != nil {
		return nil, err
	}
	dt := cfl * m.StableTimeStep()
	log.WithFields(log.Fields{
		"model": m.Name(),
		"dt":    dt,
		"end":   times[len(times)-1],
	}).Debug("explicit solve")

	start := time.Now()
	sol := solution.New(m, e.Name())
	dy := make([]float64, len(y))
	t := times[0]
	sol.Append(t, y)
	notify(e.Observer, t, y)

	steps := 0
	for _, next := range times[1:] {
	LOOP:
		for t < next {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("explicit solver stopped at t=%g: %w", t, ctx.Err())
			default:
			}
			h := dt
			last := t+h >= next
			if last {
				h = next - t
			}
			m.Derivative(t, y, dy)
			floats.AddScaled(y, h, dy)
			steps++
			if last {
				break LOOP
			}
			t += h
		}
		t = next
		sol.Append(t, y)
		notify(e.Observer, t, y)
	}
	sol.SolveTime = time.Since(start)
	log.WithFields(log.Fields{
		"model": m.Name(),
		"steps": steps,
		"time":  sol.SolveTime,
	}).Info("explicit solve finished")
	return sol, nil
}
