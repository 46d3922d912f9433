package relay

// SoilModel tracks a single scalar soil-water content between aggregation
// windows: temperature-driven evaporation plus a blend toward the measured
// soil-moisture sensor when one reported. Not safe for concurrent use; only
// the processing loop touches it.
type SoilModel struct {
	EvaporationRate float64
	RainFactor      float64

	content float64
}

// Model and blending constants from the field tuning.
const (
	defaultSoilContent     = 0.3
	defaultEvaporationRate = 0.001
	defaultRainFactor      = 0.05
	fallbackTemperature    = 20.0
	modelBlendWeight       = 0.8 // model share; remainder comes from the sensor
)

// NewSoilModel returns a model at the default 30% water content.
func NewSoilModel() *SoilModel {
	return &SoilModel{
		EvaporationRate: defaultEvaporationRate,
		RainFactor:      defaultRainFactor,
		content:         defaultSoilContent,
	}
}

// Predict advances the water content for one window: evaporation scales with
// the window's average temperature, and a reported soil-moisture measurement
// (percent) corrects the estimate. The result is clamped to [0,1].
func (m *SoilModel) Predict(window map[string]Stats) float64 {
	temp := fallbackTemperature
	if s, ok := window[SensorTemperature]; ok {
		temp = s.Avg
	}
	m.content -= m.EvaporationRate * (temp / 10.0)

	if s, ok := window[SensorSoilMoisture]; ok {
		measured := s.Avg / 100.0
		m.content = m.content*modelBlendWeight + measured*(1-modelBlendWeight)
	}

	if m.content < 0 {
		m.content = 0
	} else if m.content > 1 {
		m.content = 1
	}
	return m.content
}

// Params exposes the model parameters for payload reporting.
func (m *SoilModel) Params() map[string]float64 {
	return map[string]float64{
		"evaporation_rate": m.EvaporationRate,
		"rain_factor":      m.RainFactor,
	}
}
