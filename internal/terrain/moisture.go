package terrain

// SimConfig fixes the moisture dynamics for a run.
type SimConfig struct {
	// EvaporationRate is subtracted from every cell each step.
	EvaporationRate float64
	// IrrigationRate is added to every cell within Radius of each
	// irrigation point each step.
	IrrigationRate float64
	// DrainageRate is subtracted analogously around drainage points.
	DrainageRate float64
	// Radius is the half-width of the square neighborhood an
	// infrastructure point influences, clipped to grid bounds.
	Radius int
}

// DefaultSimConfig mirrors the field-trial tuning: slow ambient drying with
// noticeably stronger local infrastructure effects.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		EvaporationRate: 0.002,
		IrrigationRate:  0.01,
		DrainageRate:    0.01,
		Radius:          3,
	}
}

// Initial moisture mapping: lower terrain starts wetter, in [0.1, 0.8].
const (
	initialMoistureSpan = 0.7
	initialMoistureBase = 0.1
)

// Simulator owns and evolves the soil-moisture field. The field is mutated
// strictly in place across Step calls and only ever leaves the simulator as a
// copy, so no caller can reach simulator-internal state. The simulator keeps
// no history; callers wanting a trajectory snapshot Field between steps.
type Simulator struct {
	cfg   SimConfig
	plan  Plan
	rows  int
	cols  int
	field []float64
	ready bool
}

// NewSimulator builds a simulator over its own copy of the infrastructure
// plan. Initialize must be called before Step.
func NewSimulator(cfg SimConfig, plan Plan) *Simulator {
	return &Simulator{cfg: cfg, plan: plan.Clone()}
}

// Initialize derives the starting moisture field from the grid: elevation is
// normalized to [0,1] and mapped so the lowest terrain starts at 0.8 and the
// highest at 0.1. The returned flag reports a degenerate elevation range
// (max == min), in which case the division is skipped and raw elevation is
// used directly; the caller surfaces the condition as a warning. Raw
// elevations outside [0,1] on that path would otherwise escape the moisture
// bounds, so the initial field is clamped to [0,1] like every Step result.
func (s *Simulator) Initialize(g *Grid) (degenerate bool) {
	min, max := g.MinMax()
	span := max - min
	degenerate = span == 0

	s.rows, s.cols = g.Rows, g.Cols
	s.field = make([]float64, len(g.Elev))
	for i, v := range g.Elev {
		norm := v
		if !degenerate {
			norm = (v - min) / span
		}
		m := (1-norm)*initialMoistureSpan + initialMoistureBase
		if m < 0 {
			m = 0
		} else if m > 1 {
			m = 1
		}
		s.field[i] = m
	}
	s.ready = true
	return degenerate
}

// Step advances the field by one discrete tick: ambient evaporation
// everywhere, then the accumulated irrigation and drainage neighborhood
// effects, then a single clamp to [0,1].
//
// Neighborhood deltas are accumulated into a separate buffer and the clamp
// happens once after everything is applied, so the result is independent of
// point iteration order. Repeated steps are not guaranteed to settle;
// monotonic drift under biased rates is accepted model behavior.
func (s *Simulator) Step() error {
	if !s.ready {
		return ErrNotInitialized
	}

	deltas := make([]float64, len(s.field))
	for _, p := range s.plan.Irrigation {
		s.spread(deltas, p, s.cfg.IrrigationRate)
	}
	for _, p := range s.plan.Drainage {
		s.spread(deltas, p, -s.cfg.DrainageRate)
	}

	for i := range s.field {
		v := s.field[i] - s.cfg.EvaporationRate + deltas[i]
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		s.field[i] = v
	}
	return nil
}

// spread adds amount to every cell of the square neighborhood around p,
// clipped to the grid bounds. Overlapping neighborhoods accumulate.
func (s *Simulator) spread(deltas []float64, p Point, amount float64) {
	r0, r1 := p.Row-s.cfg.Radius, p.Row+s.cfg.Radius
	c0, c1 := p.Col-s.cfg.Radius, p.Col+s.cfg.Radius
	if r0 < 0 {
		r0 = 0
	}
	if c0 < 0 {
		c0 = 0
	}
	if r1 >= s.rows {
		r1 = s.rows - 1
	}
	if c1 >= s.cols {
		c1 = s.cols - 1
	}
	for r := r0; r <= r1; r++ {
		row := deltas[r*s.cols : r*s.cols+s.cols]
		for c := c0; c <= c1; c++ {
			row[c] += amount
		}
	}
}

// Field returns a copy of the current moisture field (row-major, rows x cols
// of the grid passed to Initialize). Returns nil before Initialize.
func (s *Simulator) Field() []float64 {
	if !s.ready {
		return nil
	}
	return append([]float64(nil), s.field...)
}

// Shape returns the field dimensions set by Initialize.
func (s *Simulator) Shape() (rows, cols int) { return s.rows, s.cols }
