package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/popcornroulette/api/internal/api"
	"github.com/popcornroulette/api/internal/config"
	"github.com/popcornroulette/api/internal/database"
	"github.com/popcornroulette/api/internal/logger"
	"github.com/popcornroulette/api/internal/repository"
	"github.com/popcornroulette/api/internal/shutdown"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg := config.Get()
	log := logger.AppLogger()

	if err := database.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := repository.NewMovieRepository(database.Get())
	server := api.NewServer(repo)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: server.Router(),
	}

	handler := shutdown.New(15 * time.Second)
	handler.Register(func(ctx context.Context) error {
		return database.Close()
	})
	handler.Register(func(ctx context.Context) error {
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.WithFields(map[string]interface{}{
			"port": cfg.API.Port,
		}).Info("starting API server")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("API server terminated", err)
			handler.TriggerShutdown()
		}
	}()

	handler.Wait()
	log.Info("server stopped")

	return nil
}
