package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Mewyer/innagrika/internal/forecast"
)

// EdgeConfig fixes an edge bridge for its lifetime.
type EdgeConfig struct {
	Broker      string        // MQTT broker URL, e.g. tcp://test.mosquitto.org:1883
	TopicPrefix string        // raw topics are <prefix>/<sensor>, e.g. innagrika/field/raw
	CloudURL    string        // WebSocket endpoint of the hub, e.g. ws://localhost:8000/ws/edge-data
	Source      string        // source identifier stamped on every payload
	Window      time.Duration // aggregation window
	BufferSize  int           // per-sensor buffer bound; 0 means DefaultBufferSize
}

// Edge subscribes to the raw field sensor topics, aggregates readings per
// window, runs the soil model and drydown forecast, and publishes the
// resulting payload to the cloud hub. The WebSocket link reconnects with a
// fixed pause; a window whose publish fails is dropped, not retried.
type Edge struct {
	cfg   EdgeConfig
	buf   *Buffer
	model *SoilModel
	runID string

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewEdge builds an edge bridge. The run ID is freshly generated and stamped
// on every payload of this process lifetime.
func NewEdge(cfg EdgeConfig) *Edge {
	if cfg.Window <= 0 {
		cfg.Window = 10 * time.Second
	}
	return &Edge{
		cfg:   cfg,
		buf:   NewBuffer(cfg.BufferSize),
		model: NewSoilModel(),
		runID: uuid.NewString(),
	}
}

// Run connects to the broker and processes windows until ctx is cancelled.
func (e *Edge) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(e.cfg.Broker).
		SetClientID("innagrika-edge-" + e.runID[:8]).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c mqtt.Client) {
			log.Printf("relay: connected to MQTT broker %s", e.cfg.Broker)
			for _, sensor := range SensorTypes {
				topic := e.cfg.TopicPrefix + "/" + sensor
				if token := c.Subscribe(topic, 0, e.onMessage); token.Wait() && token.Error() != nil {
					log.Printf("relay: subscribe %s failed: %v", topic, token.Error())
					continue
				}
				log.Printf("relay: subscribed to %s", topic)
			}
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("relay: MQTT connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	ticker := time.NewTicker(e.cfg.Window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.closeConn()
			return ctx.Err()
		case <-ticker.C:
			e.processWindow()
		}
	}
}

// onMessage parses a raw reading off its topic. The sensor type is the last
// topic segment.
func (e *Edge) onMessage(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	sensor := parts[len(parts)-1]

	var r Reading
	if err := json.Unmarshal(msg.Payload(), &r); err != nil {
		log.Printf("relay: bad payload on %s: %v", msg.Topic(), err)
		return
	}
	e.buf.Add(sensor, r.Value)
}

func (e *Edge) processWindow() {
	window := e.buf.Aggregate()
	if len(window) == 0 {
		log.Printf("relay: no new data this window")
		return
	}

	moisture := e.model.Predict(window)
	payload := Payload{
		Timestamp:       time.Now().UTC(),
		Source:          e.cfg.Source,
		RunID:           e.runID,
		AggregatedData:  window,
		ModelParameters: e.model.Params(),
		Predictions: Predictions{
			CurrentSoilMoisture: moisture,
			Next24h:             forecast.Drydown(moisture, forecast.DefaultSteps, forecast.DefaultRate),
		},
	}

	if err := e.publish(payload); err != nil {
		log.Printf("relay: publish failed, window dropped: %v", err)
	}
}

func (e *Edge) publish(p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.conn == nil {
		conn, _, err := websocket.DefaultDialer.Dial(e.cfg.CloudURL, nil)
		if err != nil {
			return fmt.Errorf("dial cloud %s: %w", e.cfg.CloudURL, err)
		}
		log.Printf("relay: connected to cloud hub %s", e.cfg.CloudURL)
		e.conn = conn
	}

	_ = e.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := e.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		// Drop the link; the next window redials.
		e.conn.Close()
		e.conn = nil
		return err
	}
	return nil
}

func (e *Edge) closeConn() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.conn != nil {
		e.conn.Close()
		e.conn = nil
	}
}
