package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/ready-steady/ode/dopri"
	log "github.com/sirupsen/logrus"

	"ltes/calculator"
	"ltes/solution"
)

// Dopri is the adaptive Dormand–Prince 5(4) method. It is restarted on every
// output interval so that cancellation and observers take effect between
// outputs.
type Dopri struct {
	RelError float64
	AbsError float64
	Observer Observer
}

func (d *Dopri) Name() string { return DopriName }

func (d *Dopri) Solve(ctx context.Context, m calculator.Model, times []float64) (*solution.Solution, error) {
	if err := checkTimes(times); err != nil {
		return nil, err
	}
	config := dopri.DefaultConfig()
	if d.RelError > 0 {
		config.RelError = d.RelError
	}
	if d.AbsError > 0 {
		config.AbsError = d.AbsError
	}
	integrator, err := dopri.New(config)
	if err != nil {
		return nil, fmt.Errorf("dopri solver: %w", err)
	}
	y, err := m.Initial()
	if err != nil {
		return nil, err
	}
	n := len(y)

	start := time.Now()
	sol := solution.New(m, d.Name())
	sol.Append(times[0], y)
	notify(d.Observer, times[0], y)
	for k := 1; k < len(times); k++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("dopri solver stopped at t=%g: %w", times[k-1], ctx.Err())
		default:
		}
		values, _, err := integrator.Compute(m.Derivative, y, times[k-1:k+1])
		if err != nil {
			return nil, fmt.Errorf("dopri solver at t=%g: %w", times[k-1], err)
		}
		if len(values) < n || len(values)%n != 0 {
			return nil, fmt.Errorf("dopri solver: got %d values for %d unknowns", len(values), n)
		}
		y = values[len(values)-n:]
		sol.Append(times[k], y)
		notify(d.Observer, times[k], y)
	}
	sol.SolveTime = time.Since(start)
	log.WithFields(log.Fields{
		"model": m.Name(),
		"time":  sol.SolveTime,
	}).Info("dopri solve finished")
	return sol, nil
}
