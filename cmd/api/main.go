package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"socialnetwork/cmd/app"
	"socialnetwork/internal/config"
	handlers "socialnetwork/internal/handler"
	"socialnetwork/internal/web"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.Session.SecretKey == "" {
		log.Fatal("SESSION_SECRET_KEY is not set in the environment or .env file")
	}

	db, redisClient, services := app.App(cfg)
	defer db.CloseDB()
	if redisClient != nil {
		defer redisClient.Close()
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	handler := handlers.NewHandlers(services, renderer, cfg)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(handler, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on %s (database %s)", addr, cfg.DB.DbNAME)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
