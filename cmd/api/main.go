package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/platform/config"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/router"
)

func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("no se pudo conectar a postgres", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
	}

	r := router.NewRouter(router.Options{
		DB:         db,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
		BcryptCost: cfg.BcryptCost,
		Log:        log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
	log.Info("server stopped", nil)
}
