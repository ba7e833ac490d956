// Package mesh builds the two uniform one-dimensional finite-volume meshes of
// the packed bed: the radial capsule mesh and the axial pipe mesh.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrTooFewPoints = errors.New("a sub-mesh needs at least 2 cells")

// Default numbers of cells.
const (
	DefaultCapsulePoints = 40
	DefaultPipePoints    = 80
)

type CoordSys int

const (
	Cartesian CoordSys = iota
	SphericalPolar
)

func (c CoordSys) String() string {
	if c == SphericalPolar {
		return "spherical polar"
	}
	return "cartesian"
}

// SubMesh is a uniform cell-centred mesh on [Min, Max].
type SubMesh struct {
	Coord    CoordSys
	Min, Max float64
	Step     float64
	Nodes    []float64 // cell centres
	Edges    []float64 // len(Nodes)+1
	Volumes  []float64 // cell measure in the metric of Coord
	Areas    []float64 // face measure at each edge
}

// NewSubMesh builds n uniform cells on [min, max].
func NewSubMesh(coord CoordSys, min, max float64, n int) (*SubMesh, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}
	if max <= min {
		return nil, fmt.Errorf("empty domain [%g, %g]", min, max)
	}
	m := &SubMesh{
		Coord:   coord,
		Min:     min,
		Max:     max,
		Step:    (max - min) / float64(n),
		Nodes:   make([]float64, n),
		Edges:   make([]float64, n+1),
		Volumes: make([]float64, n),
		Areas:   make([]float64, n+1),
	}
	floats.Span(m.Edges, min, max)
	for i, e := range m.Edges {
		m.Areas[i] = m.area(e)
	}
	for i := range m.Nodes {
		m.Nodes[i] = (m.Edges[i] + m.Edges[i+1]) / 2
		m.Volumes[i] = m.volume(m.Edges[i], m.Edges[i+1])
	}
	return m, nil
}

func (m *SubMesh) area(r float64) float64 {
	if m.Coord == SphericalPolar {
		return 4 * math.Pi * r * r
	}
	return 1
}

func (m *SubMesh) volume(a, b float64) float64 {
	if m.Coord == SphericalPolar {
		return 4 * math.Pi / 3 * (b*b*b - a*a*a)
	}
	return b - a
}

// Len is the number of cells.
func (m *SubMesh) Len() int {
	return len(m.Nodes)
}

// TotalVolume is the measure of the whole domain.
func (m *SubMesh) TotalVolume() float64 {
	return m.volume(m.Min, m.Max)
}

// Integrate sums a cell-centred field weighted by the cell measure.
func (m *SubMesh) Integrate(f []float64) float64 {
	return floats.Dot(f, m.Volumes)
}

// Average is Integrate divided by the domain measure.
func (m *SubMesh) Average(f []float64) float64 {
	return m.Integrate(f) / m.TotalVolume()
}

// Mesh couples the capsule mesh (primary) with the pipe mesh (secondary).
type Mesh struct {
	Capsule *SubMesh
	Pipe    *SubMesh
}

// New builds the capsule mesh on [0, radius] and the pipe mesh on [0, length].
func New(radius, length float64, capsulePoints, pipePoints int) (*Mesh, error) {
	capsule, err := NewSubMesh(SphericalPolar, 0, radius, capsulePoints)
	if err != nil {
		return nil, fmt.Errorf("capsule mesh: %w", err)
	}
	pipe, err := NewSubMesh(Cartesian, 0, length, pipePoints)
	if err != nil {
		return nil, fmt.Errorf("pipe mesh: %w", err)
	}
	return &Mesh{Capsule: capsule, Pipe: pipe}, nil
}
