package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/measured-tracker/measured-backend/config"
	"github.com/measured-tracker/measured-backend/internal/bootstrap"
	"github.com/measured-tracker/measured-backend/internal/db"
	"github.com/measured-tracker/measured-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Schema must be in place before any traffic is served.
	if err := db.Migrate(postgres.URL(&cfg.Database)); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "measured-api",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		DB:             conn,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
