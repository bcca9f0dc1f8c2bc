package main

import (
	"context"
	"log"

	"ticket-intel-be/internal/bootstrap"
	"ticket-intel-be/internal/config"
	"ticket-intel-be/internal/server"
	"ticket-intel-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()
	if err := cfg.ValidateGateway(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: starting review audit consumer...")
		if err := container.AuditService.Consume(context.Background()); err != nil {
			log.Printf("Background audit consumer error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
