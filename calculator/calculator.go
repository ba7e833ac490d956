// Package calculator holds the semi-discrete LTES models: the heat transfer
// fluid advected along the pipe, coupled through a Robin condition to the
// enthalpy equation inside spherical PCM capsules.
package calculator

import (
	"errors"
	"fmt"

	"ltes/mesh"
	"ltes/parameter"
)

var ErrUnknownModel = errors.New("unknown model")

// Model names accepted by New.
const (
	FullName    = "full"
	ReducedName = "reduced"
)

// Model is a system of ODEs dy/dt = f(t, y). The PCM temperature, algebraic
// in enthalpy, is substituted rather than carried as a state.
type Model interface {
	Name() string
	Params() *parameter.Values
	Mesh() *mesh.Mesh

	Size() int
	Initial() ([]float64, error)
	State(y []float64) State
	Derivative(t float64, y, dy []float64)

	// StableTimeStep is the largest stable forward-Euler step, s.
	StableTimeStep() float64

	Surface(y []float64) (temperature, flux []float64)
	Energy(y []float64) (fluid, pcm float64)
	InitialEnergy() float64

	Close()
}

// State is a set of views into a state vector. For the reduced model every
// row of Enthalpy aliases the same x-averaged capsule profile.
type State struct {
	Fluid    []float64   // HTF temperature per pipe cell, K
	Enthalpy [][]float64 // PCM enthalpy [pipe cell][capsule cell], J.m-3
	Stored   float64     // stored energy per unit area, J.m-2
}

// New builds a model by name. workers bounds the goroutines used to evaluate
// the pipe cells.
func New(name string, p *parameter.Values, m *mesh.Mesh, workers int) (Model, error) {
	var (
		model Model
		err   error
	)
	switch name {
	case FullName:
		model, err = NewFull(p, m, workers)
	case ReducedName:
		model, err = NewReduced(p, m, workers)
	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownModel, name, FullName, ReducedName)
	}
	if err != nil {
		return nil, err
	}
	return model, nil
}

// Names lists the model names accepted by New.
func Names() []string {
	return []string{ReducedName, FullName}
}
