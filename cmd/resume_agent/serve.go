package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/ingestion"
	"github.com/jonathan/resume-extractor/internal/jobqueue"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/scraper"
	"github.com/jonathan/resume-extractor/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that accepts resume uploads, scrapes job postings and
generates patch plans. Records are kept in PostgreSQL when DATABASE_URL is set
and in memory otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if servePort > 0 {
		cfg.Port = servePort
	}
	logger.Init(cfg.Log)

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	var store jobqueue.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		migrateCtx, migrateCancel := context.WithTimeout(ctx, 30*time.Second)
		err = database.Migrate(migrateCtx)
		migrateCancel()
		if err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		store = database
	} else {
		logger.Warn().Msg("DATABASE_URL not set, records are kept in memory")
		store = jobqueue.NewMemoryStore()
	}

	metrics := observability.NewMetrics()
	extractor, err := newExtractor(cfg, metrics)
	if err != nil {
		return err
	}

	queue := jobqueue.New(store, extractor, scraper.Scrape,
		jobqueue.WithWorkers(cfg.Workers),
		jobqueue.WithMetrics(metrics),
	)
	queue.Start(ctx)

	srv, err := server.New(server.Config{
		Port:    cfg.Port,
		Store:   store,
		Queue:   queue,
		Uploads: ingestion.NewStore(cfg.UploadDir, cfg.MaxUploadBytes),
		Metrics: metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
