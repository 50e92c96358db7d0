package main

import (
	"context"
	"log"

	"iomd-notebook-be/internal/bootstrap"
	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/server"
	"iomd-notebook-be/internal/tracer"
	"iomd-notebook-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap application: %v", err)
	}

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Refresh Consumer...")
		if err := container.RefreshService.Consume(context.Background()); err != nil {
			log.Printf("Background Refresh Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
