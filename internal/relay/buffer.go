package relay

import "sync"

// DefaultBufferSize bounds each per-sensor buffer; the oldest reading is
// dropped once the bound is hit.
const DefaultBufferSize = 100

// Buffer accumulates raw readings per sensor type between aggregation
// windows. Safe for concurrent use: MQTT handlers Add while the processing
// loop Aggregates.
type Buffer struct {
	mu      sync.Mutex
	maxSize int
	buffers map[string][]float64
}

// NewBuffer returns a buffer holding at most maxSize readings per sensor
// type (DefaultBufferSize if maxSize <= 0).
func NewBuffer(maxSize int) *Buffer {
	if maxSize <= 0 {
		maxSize = DefaultBufferSize
	}
	b := &Buffer{maxSize: maxSize, buffers: make(map[string][]float64, len(SensorTypes))}
	for _, s := range SensorTypes {
		b.buffers[s] = nil
	}
	return b
}

// Add records a reading. Unknown sensor types are ignored.
func (b *Buffer) Add(sensorType string, value float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.buffers[sensorType]
	if !ok {
		return
	}
	if len(buf) >= b.maxSize {
		buf = buf[1:]
	}
	b.buffers[sensorType] = append(buf, value)
}

// Aggregate drains every buffer and returns avg/min/max per sensor type that
// had data. Drained buffers do not contribute to the next window.
func (b *Buffer) Aggregate() map[string]Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]Stats)
	for sensor, buf := range b.buffers {
		if len(buf) == 0 {
			continue
		}
		s := Stats{Min: buf[0], Max: buf[0]}
		var sum float64
		for _, v := range buf {
			sum += v
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		s.Avg = sum / float64(len(buf))
		out[sensor] = s
		b.buffers[sensor] = nil
	}
	return out
}
