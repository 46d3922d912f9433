package relay

import "time"

// Sensor types carried on the raw MQTT topics, as topic suffixes.
const (
	SensorTemperature  = "temperature"
	SensorHumidity     = "humidity"
	SensorSoilMoisture = "soil_moisture"
)

// SensorTypes lists every accepted raw sensor feed.
var SensorTypes = []string{SensorTemperature, SensorHumidity, SensorSoilMoisture}

// Reading is one raw sensor message payload.
type Reading struct {
	Value float64 `json:"value"`
}

// Stats summarizes one aggregation window for a single sensor type.
type Stats struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Predictions carries the model output attached to each payload.
type Predictions struct {
	CurrentSoilMoisture float64   `json:"current_soil_moisture"`
	Next24h             []float64 `json:"next_24h"`
}

// Payload is the aggregated packet the edge bridge sends to the cloud hub
// once per window.
type Payload struct {
	Timestamp       time.Time          `json:"timestamp"`
	Source          string             `json:"source"`
	RunID           string             `json:"run_id"`
	AggregatedData  map[string]Stats   `json:"aggregated_data"`
	ModelParameters map[string]float64 `json:"model_parameters"`
	Predictions     Predictions        `json:"predictions"`
}
