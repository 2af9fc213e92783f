package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubworks/clubd/internal/auth"
	"github.com/clubworks/clubd/internal/backup"
	"github.com/clubworks/clubd/internal/blob"
	"github.com/clubworks/clubd/internal/config"
	"github.com/clubworks/clubd/internal/events"
	"github.com/clubworks/clubd/internal/lifecycle"
	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/server"
	"github.com/clubworks/clubd/internal/store/postgres"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the clubd HTTP server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't build an API client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		blobs, err := blob.NewS3Store(cmd.Context(), cfg.S3Bucket, cfg.S3Prefix, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			store.Close()
			return err
		}

		policy := model.DefaultPolicy()
		if cfg.PolicyFile != "" {
			policy, err = model.LoadPolicy(cfg.PolicyFile)
			if err != nil {
				store.Close()
				return err
			}
			logger.Info("policy loaded", "file", cfg.PolicyFile)
		}

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (CLUBD_NATS_URL not set)")
		}

		resolver := auth.NewStoreResolver(store.Users())
		manager := lifecycle.New(lifecycle.Config{
			Events:       store.Events(),
			Resolver:     resolver,
			Blobs:        blobs,
			Publisher:    publisher,
			Policy:       policy,
			Logger:       logger,
			DefaultImage: cfg.DefaultImageURL,
		})

		srv := server.New(manager, resolver, store.Users(), logger)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: srv.NewHTTPHandler(),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the backup scheduler if any destinations are configured.
		var scheduler *backup.Scheduler
		if cfg.BackupInterval > 0 {
			var dests []backup.Destination

			if cfg.BackupS3Bucket != "" {
				s3Dest, err := backup.NewS3Destination(
					context.Background(),
					cfg.BackupS3Bucket,
					cfg.BackupS3Key,
					cfg.S3Region,
					cfg.S3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 backup destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("backup S3 destination enabled", "bucket", cfg.BackupS3Bucket, "key", cfg.BackupS3Key)
				}
			}

			if cfg.BackupGitRepo != "" {
				gitDest := backup.NewGitDestination(cfg.BackupGitRepo, cfg.BackupGitFile, cfg.BackupGitBranch)
				dests = append(dests, gitDest)
				logger.Info("backup git destination enabled", "repo", cfg.BackupGitRepo, "file", cfg.BackupGitFile)
			}

			if len(dests) > 0 {
				scheduler = backup.NewScheduler(store, dests, cfg.BackupInterval, logger)
				scheduler.Start()
				logger.Info("backup scheduler started", "interval", cfg.BackupInterval)
			}
		}

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("backup scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
