package model

// Msg is the message exchanged with a monitoring client.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Message types.
const (
	MsgEnv      = "env"
	MsgEnvSet   = "envSet"
	MsgStart    = "start"
	MsgStarted  = "started"
	MsgSnapshot = "snapshot"
	MsgFinished = "finished"
	MsgStop     = "stop"
	MsgStopped  = "stopped"
	MsgHistory  = "history"
	MsgError    = "error"
)

// Env describes one simulation run requested by a client.
type Env struct {
	Model         string             `json:"model"`
	ParameterSet  string             `json:"parameter_set"`
	Overrides     map[string]float64 `json:"overrides"`
	CapsulePoints int                `json:"capsule_points"`
	PipePoints    int                `json:"pipe_points"`
	EndTime       float64            `json:"end_time"`
	Outputs       int                `json:"outputs"`
	Solver        string             `json:"solver"`
}

// Snapshot holds the output variables of a solution at one time. Pipe
// quantities are indexed by pipe cell, capsule quantities by capsule cell.
type Snapshot struct {
	Time float64   `json:"time"`
	X    []float64 `json:"x"`
	R    []float64 `json:"r"`

	FluidTemperature           []float64   `json:"fluid_temperature"`
	PCMTemperature             [][]float64 `json:"pcm_temperature"`
	PCMEnthalpy                [][]float64 `json:"pcm_enthalpy"`
	AveragedPCMTemperature     []float64   `json:"averaged_pcm_temperature"`
	AveragedPCMEnthalpy        []float64   `json:"averaged_pcm_enthalpy"`
	SurfaceTemperature         []float64   `json:"surface_temperature"`
	AveragedSurfaceTemperature float64     `json:"averaged_surface_temperature"`
	Phase                      [][]float64 `json:"phase"`
	AveragedPhase              []float64   `json:"averaged_phase"`
	StateOfCharge              []float64   `json:"state_of_charge"`
	AveragedStateOfCharge      float64     `json:"averaged_state_of_charge"`
	LiquidFraction             []float64   `json:"liquid_fraction"`
	InletTemperature           float64     `json:"inlet_temperature"`
	OutletTemperature          float64     `json:"outlet_temperature"`
	Flux                       []float64   `json:"flux"`
	AveragedFlux               float64     `json:"averaged_flux"`

	// per unit cross-section, J.m-2
	PCMEnergy                 float64 `json:"pcm_energy"`
	FluidEnergy               float64 `json:"fluid_energy"`
	TotalEnergy               float64 `json:"total_energy"`
	EnergyVariation           float64 `json:"energy_variation"`
	StoredEnergy              float64 `json:"stored_energy"`
	ConservationError         float64 `json:"conservation_error"`
	RelativeConservationError float64 `json:"relative_conservation_error"`
}

// Summary is the light-weight part of a snapshot streamed to clients.
type Summary struct {
	Time                      float64   `json:"time"`
	OutletTemperature         float64   `json:"outlet_temperature"`
	AveragedStateOfCharge     float64   `json:"averaged_state_of_charge"`
	StoredEnergy              float64   `json:"stored_energy"`
	RelativeConservationError float64   `json:"relative_conservation_error"`
	X                         []float64 `json:"x"`
	FluidTemperature          []float64 `json:"fluid_temperature"`
	SurfaceTemperature        []float64 `json:"surface_temperature"`
	StateOfCharge             []float64 `json:"state_of_charge"`
}

// Summarize drops the two-dimensional fields.
func (s *Snapshot) Summarize() Summary {
	return Summary{
		Time:                      s.Time,
		OutletTemperature:         s.OutletTemperature,
		AveragedStateOfCharge:     s.AveragedStateOfCharge,
		StoredEnergy:              s.StoredEnergy,
		RelativeConservationError: s.RelativeConservationError,
		X:                         s.X,
		FluidTemperature:          s.FluidTemperature,
		SurfaceTemperature:        s.SurfaceTemperature,
		StateOfCharge:             s.StateOfCharge,
	}
}
