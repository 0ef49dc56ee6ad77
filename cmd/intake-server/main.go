// Command intake-server exposes the intake templates and the conditional
// form engine over HTTP: descriptor with live visibility, validation, and
// submission to the processing webhook.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tramita/go-intake/pkg/submit"
)

func main() {
	var (
		addr       = flag.String("addr", envOr("INTAKE_ADDR", ":8080"), "listen address")
		webhookURL = flag.String("webhook", os.Getenv("INTAKE_WEBHOOK_URL"), "processing webhook URL (empty: submission disabled)")
	)
	flag.Parse()

	var sink submit.Sink
	if *webhookURL != "" {
		webhook, err := submit.NewWebhook(*webhookURL)
		if err != nil {
			log.Fatal(err)
		}
		sink = webhook
	}

	server, err := NewServer(sink)
	if err != nil {
		log.Fatal(err)
	}

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
