package terrain

import "fmt"

// Pipeline is the explicit per-run context threaded through the stages:
// build -> plan -> simulate. It replaces any notion of a process-wide
// singleton; every run constructs its own value and hands it by reference to
// whoever needs the results. Stages run synchronously and to completion, and
// nothing here is safe for concurrent use: the model is single writer per
// phase, readers only afterwards.
type Pipeline struct {
	Builder BuilderConfig
	Sim     SimConfig

	Grid *Grid
	Plan Plan
	sim  *Simulator

	// DegenerateRange records the recovered min==max normalization
	// fallback from Initialize so drivers can surface it as a warning.
	DegenerateRange bool
}

// NewPipeline returns a pipeline with the given stage configs.
func NewPipeline(builder BuilderConfig, sim SimConfig) *Pipeline {
	return &Pipeline{Builder: builder, Sim: sim}
}

// Run executes the full pipeline over a decoded input: grid construction,
// infrastructure placement, moisture initialization, and steps simulation
// ticks. Fatal input errors propagate unmodified.
func (p *Pipeline) Run(in *Input, steps int) error {
	g, err := BuildGrid(in, p.Builder)
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}
	p.Grid = g
	p.Plan = PlanInfrastructure(g)

	p.sim = NewSimulator(p.Sim, p.Plan)
	p.DegenerateRange = p.sim.Initialize(g)

	for i := 0; i < steps; i++ {
		if err := p.sim.Step(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Field returns a copy of the final moisture field, or nil if Run has not
// completed grid construction.
func (p *Pipeline) Field() []float64 {
	if p.sim == nil {
		return nil
	}
	return p.sim.Field()
}
