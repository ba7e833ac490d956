package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"ltes/calculator"
	"ltes/mesh"
	"ltes/solution"
	"ltes/solver"
)

func addRunFlags(c *cobra.Command) {
	c.Flags().StringP("set", "p", "", "parameter set")
	c.Flags().String("params", "", "JSON file of parameter values applied on top of the set")
	c.Flags().IntP("r", "r", 0, "capsule mesh points")
	c.Flags().IntP("x", "x", 0, "pipe mesh points")
	c.Flags().Float64P("end", "t", 0, "end time [s]")
	c.Flags().IntP("outputs", "n", 0, "number of output intervals")
	c.Flags().StringP("solver", "s", "", "time integrator: explicit or dopri")
	c.Flags().Float64("cfl", 0, "fraction of the stable explicit time step")
	c.Flags().IntP("workers", "w", 0, "goroutines evaluating the pipe cells")
}

// applyRunFlags copies the flags set on the command line over the
// configuration.
func applyRunFlags(c *cobra.Command) {
	f := c.Flags()
	if f.Changed("set") {
		cfg.ParameterSet, _ = f.GetString("set")
	}
	if f.Changed("params") {
		cfg.ParameterFile, _ = f.GetString("params")
	}
	if f.Changed("r") {
		cfg.CapsulePoints, _ = f.GetInt("r")
	}
	if f.Changed("x") {
		cfg.PipePoints, _ = f.GetInt("x")
	}
	if f.Changed("end") {
		cfg.EndTime, _ = f.GetFloat64("end")
	}
	if f.Changed("outputs") {
		cfg.Outputs, _ = f.GetInt("outputs")
	}
	if f.Changed("solver") {
		cfg.Solver, _ = f.GetString("solver")
	}
	if f.Changed("cfl") {
		cfg.CFL, _ = f.GetFloat64("cfl")
	}
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
}

// solveModel runs the named model with the current configuration. The
// returned solution keeps the model; closing it is left to the caller.
func solveModel(ctx context.Context, name string) (*solution.Solution, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	msh, err := mesh.New(p.CapsuleRadius, p.PipeLength, cfg.CapsulePoints, cfg.PipePoints)
	if err != nil {
		return nil, err
	}
	m, err := calculator.New(name, p, msh, cfg.Workers)
	if err != nil {
		return nil, err
	}
	s, err := solver.New(cfg.Solver, cfg.SolverConfig())
	if err != nil {
		m.Close()
		return nil, err
	}
	sol, err := s.Solve(ctx, m, solver.Times(cfg.EndTime, cfg.Outputs))
	if err != nil {
		m.Close()
		return nil, err
	}
	return sol, nil
}
