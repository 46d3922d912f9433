// Command cloud runs the relay hub: it accepts the edge feed on
// /ws/edge-data and fans every payload out to viewer clients on /ws/client.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mewyer/innagrika/internal/relay"
)

var listen = flag.String("listen", ":8000", "HTTP listen address")

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := relay.NewHub()
	mux := http.NewServeMux()
	hub.Routes(mux)

	srv := &http.Server{Addr: *listen, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("cloud: listening on %s", *listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("cloud: %v", err)
	}
	log.Printf("cloud: stopped")
}
