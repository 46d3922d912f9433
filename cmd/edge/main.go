// Command edge bridges raw field sensor telemetry to the cloud hub: it
// subscribes to the MQTT topics, aggregates each window, runs the soil model
// and forecast, and publishes the payload over WebSocket.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mewyer/innagrika/internal/relay"
)

var (
	broker      = flag.String("broker", "tcp://test.mosquitto.org:1883", "MQTT broker URL")
	topicPrefix = flag.String("topic-prefix", "innagrika/field/raw", "Raw sensor topic prefix")
	cloudURL    = flag.String("cloud", "ws://localhost:8000/ws/edge-data", "Cloud hub WebSocket endpoint")
	source      = flag.String("source", "edge-01", "Source identifier stamped on payloads")
	window      = flag.Duration("window", 10*time.Second, "Aggregation window")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	edge := relay.NewEdge(relay.EdgeConfig{
		Broker:      *broker,
		TopicPrefix: *topicPrefix,
		CloudURL:    *cloudURL,
		Source:      *source,
		Window:      *window,
	})

	log.Printf("edge: starting (broker=%s cloud=%s window=%s)", *broker, *cloudURL, *window)
	if err := edge.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("edge: %v", err)
	}
	log.Printf("edge: stopped")
}
