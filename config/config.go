// Package config loads the ini configuration of the ltes commands.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"ltes/calculator"
	"ltes/deque"
	"ltes/mesh"
	"ltes/parameter"
	"ltes/solver"
	"ltes/study"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "conf/config.ini"

type Config struct {
	// simulation
	Model         string
	ParameterSet  string
	ParameterFile string
	EndTime       float64
	Outputs       int
	Workers       int

	// mesh
	CapsulePoints int
	PipePoints    int

	// solver
	Solver   string
	CFL      float64
	RelError float64
	AbsError float64

	// refinement
	MinLevel                int
	MaxLevel                int
	RefinementSet           string
	HeatTransferCoefficient float64
	GridX, GridR, GridT     int

	// output
	OutputDir string
	Format    string
	DPI       int
	LogLevel  string

	// server
	Addr        string
	History     int
	HistoryKind string

	// canonical parameter name -> value
	Parameters map[string]float64
}

// Load reads the file at path. Missing keys take their defaults.
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return loadCfg(file)
}

// Default is the configuration with every key at its default.
func Default() *Config {
	c, _ := loadCfg(ini.Empty())
	return c
}

func loadCfg(file *ini.File) (*Config, error) {
	sim := file.Section("simulation")
	msh := file.Section("mesh")
	sol := file.Section("solver")
	ref := file.Section("refinement")
	out := file.Section("output")
	srv := file.Section("server")
	defaults := solver.DefaultConfig()

	c := &Config{
		Model:         sim.Key("model").MustString(calculator.FullName),
		ParameterSet:  sim.Key("parameter_set").MustString(parameter.DefaultSet),
		ParameterFile: sim.Key("parameter_file").String(),
		EndTime:       sim.Key("end_time").MustFloat64(10000),
		Outputs:       sim.Key("outputs").MustInt(100),
		Workers:       sim.Key("workers").MustInt(4),

		CapsulePoints: msh.Key("capsule_points").MustInt(mesh.DefaultCapsulePoints),
		PipePoints:    msh.Key("pipe_points").MustInt(mesh.DefaultPipePoints),

		Solver:   sol.Key("name").MustString(solver.ExplicitName),
		CFL:      sol.Key("cfl").MustFloat64(defaults.CFL),
		RelError: sol.Key("rel_error").MustFloat64(defaults.RelError),
		AbsError: sol.Key("abs_error").MustFloat64(defaults.AbsError),

		MinLevel:                ref.Key("min_level").MustInt(0),
		MaxLevel:                ref.Key("max_level").MustInt(4),
		RefinementSet:           ref.Key("parameter_set").MustString("Nallusamy2007"),
		HeatTransferCoefficient: ref.Key("heat_transfer_coefficient").MustFloat64(1000),
		GridX:                   ref.Key("grid_x").MustInt(50),
		GridR:                   ref.Key("grid_r").MustInt(50),
		GridT:                   ref.Key("grid_t").MustInt(100),

		OutputDir: out.Key("dir").MustString("figures"),
		Format:    out.Key("format").MustString("paper"),
		DPI:       out.Key("dpi").MustInt(300),
		LogLevel:  out.Key("log_level").MustString("info"),

		Addr:        srv.Key("addr").MustString(":9000"),
		History:     srv.Key("history").MustInt(200),
		HistoryKind: srv.Key("history_kind").MustString(deque.ArrayKind),

		Parameters: make(map[string]float64),
	}
	for _, key := range file.Section("parameters").Keys() {
		v, err := key.Float64()
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key.Name(), err)
		}
		c.Parameters[key.Name()] = v
	}
	return c, nil
}

// Params builds the simulation parameters: the named set, then the
// parameter file, then the [parameters] overrides.
func (c *Config) Params() (*parameter.Values, error) {
	p, err := parameter.Get(c.ParameterSet)
	if err != nil {
		return nil, err
	}
	if c.ParameterFile != "" {
		if p, err = parameter.LoadFile(c.ParameterFile, p); err != nil {
			return nil, err
		}
	}
	if err := parameter.Apply(p, c.Parameters); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Config) SolverConfig() solver.Config {
	return solver.Config{CFL: c.CFL, RelError: c.RelError, AbsError: c.AbsError}
}

// Study builds the refinement study settings.
func (c *Config) Study() (study.Config, error) {
	s := study.DefaultConfig()
	p, err := parameter.Get(c.RefinementSet)
	if err != nil {
		return s, err
	}
	p.HeatTransferCoefficient = c.HeatTransferCoefficient
	if err := parameter.Apply(p, c.Parameters); err != nil {
		return s, err
	}
	s.Params = p
	s.MinLevel, s.MaxLevel = c.MinLevel, c.MaxLevel
	s.EndTime = c.EndTime
	s.Outputs = c.Outputs
	s.Solver = c.Solver
	s.SolverConfig = c.SolverConfig()
	s.Workers = c.Workers
	s.GridX, s.GridR, s.GridT = c.GridX, c.GridR, c.GridT
	return s, nil
}
