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

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sudoBrandino/claude-hive/internal/config"
	"github.com/sudoBrandino/claude-hive/internal/event"
	"github.com/sudoBrandino/claude-hive/internal/hive"
	"github.com/sudoBrandino/claude-hive/internal/mock"
	"github.com/sudoBrandino/claude-hive/internal/ws"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
		staticDir  string
		mockMode   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the hive server",
		Long:  "Run the event ingestion, session tracking, and WebSocket broadcast server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			return runServe(cfg, staticDir, mockMode)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override server port")
	cmd.Flags().StringVar(&staticDir, "static", "", "Serve a dashboard build from this directory")
	cmd.Flags().BoolVar(&mockMode, "mock", false, "Generate synthetic hook events for dashboard development")

	return cmd
}

func runServe(cfg *config.Config, staticDir string, mockMode bool) error {
	engine := hive.New(cfg.Hive.MaxEvents)
	hub := ws.NewHub(engine, cfg.Hive.SendBuffer, cfg.Hive.InitEvents)
	server := ws.NewServer(engine, hub, staticDir)

	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if mockMode {
		log.Println("Mock mode: generating synthetic hook events")
		gen := mock.NewGenerator(func(ev event.Event) { hub.Ingest(ev) }, 0)
		gen.Start(ctx)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Hive listening on %s", httpServer.Addr)
		log.Printf("  Events:    POST http://localhost:%d/events", cfg.Server.Port)
		log.Printf("  Live feed: ws://localhost:%d/ws", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
