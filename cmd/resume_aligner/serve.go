package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-aligner/internal/config"
	"github.com/jonathan/resume-aligner/internal/db"
	"github.com/jonathan/resume-aligner/internal/queue"
	"github.com/jonathan/resume-aligner/internal/server"
	"github.com/jonathan/resume-aligner/internal/server/ratelimit"
	"github.com/jonathan/resume-aligner/internal/storage"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: "Start an HTTP server exposing the parse, align, optimize, report and export endpoints. " +
			"DATABASE_URL enables saved profiles; GEMINI_API_KEY enables model-based job description extraction.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine, err := cfg.Engine()
			if err != nil {
				return err
			}
			store, err := storage.New(ctx, cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			parser, closeParser, err := newJobParser(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeParser()

			opts := server.Options{
				Config:    cfg,
				Engine:    engine,
				Store:     store,
				JobParser: parser,
				RateLimit: ratelimit.LoadConfig(),
				Logger:    logger,
			}

			if cfg.DatabaseURL != "" {
				database, err := db.Connect(ctx, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer database.Close()
				if err := database.Migrate(ctx); err != nil {
					return err
				}
				opts.Profiles = database
			}

			if cfg.Auth.Required || len(cfg.Auth.Clients) > 0 {
				jwtCfg, err := config.NewJWTConfig()
				if err != nil {
					return err
				}
				secrets, err := config.NewSecretConfig()
				if err != nil {
					return err
				}
				opts.JWT = server.NewJWTService(jwtCfg)
				opts.Secrets = secrets
			}

			srv, err := server.New(opts)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			defer srv.Close()
			return srv.Start(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on (overrides config)")
	return cmd
}

func newWorkerCmd(root *rootOptions) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume alignment requests from RabbitMQ",
		Long:  "Run the queue worker pool: requests are read from the configured queue and results published to the results exchange.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			if url != "" {
				cfg.Queue.URL = url
			}
			engine, err := cfg.Engine()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting worker", "queue", cfg.Queue.Queue, "workers", cfg.Queue.Workers)
			return queue.NewWorker(cfg.Queue, engine, logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&url, "amqp-url", "", "RabbitMQ URL (overrides RABBITMQ_URL)")
	return cmd
}
