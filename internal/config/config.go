package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // CLUBD_DATABASE_URL (required)
	HTTPAddr    string // CLUBD_HTTP_ADDR (default ":8080")
	NATSURL     string // CLUBD_NATS_URL (optional, empty = no events)
	PolicyFile  string // CLUBD_POLICY_FILE (optional TOML file with field bounds)

	// Blob store settings
	S3Bucket   string // CLUBD_S3_BUCKET (required; image uploads go here)
	S3Region   string // CLUBD_S3_REGION (default "us-east-1")
	S3Endpoint string // CLUBD_S3_ENDPOINT (custom endpoint for MinIO)
	S3Prefix   string // CLUBD_S3_PREFIX (default "events")

	// DefaultImageURL overrides the built-in sentinel for events without an
	// uploaded image.
	DefaultImageURL string // CLUBD_DEFAULT_IMAGE_URL (optional)

	// Backup settings. Backups run only when BackupInterval is set and at
	// least one destination is configured.
	BackupInterval  time.Duration // CLUBD_BACKUP_INTERVAL (e.g. "1h"; 0 = disabled)
	BackupS3Bucket  string        // CLUBD_BACKUP_S3_BUCKET
	BackupS3Key     string        // CLUBD_BACKUP_S3_KEY (default "club.jsonl")
	BackupGitRepo   string        // CLUBD_BACKUP_GIT_REPO (path to a local clone)
	BackupGitFile   string        // CLUBD_BACKUP_GIT_FILE (default "club.jsonl")
	BackupGitBranch string        // CLUBD_BACKUP_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:     os.Getenv("CLUBD_DATABASE_URL"),
		HTTPAddr:        envOrDefault("CLUBD_HTTP_ADDR", ":8080"),
		NATSURL:         os.Getenv("CLUBD_NATS_URL"),
		PolicyFile:      os.Getenv("CLUBD_POLICY_FILE"),
		S3Bucket:        os.Getenv("CLUBD_S3_BUCKET"),
		S3Region:        envOrDefault("CLUBD_S3_REGION", "us-east-1"),
		S3Endpoint:      os.Getenv("CLUBD_S3_ENDPOINT"),
		S3Prefix:        envOrDefault("CLUBD_S3_PREFIX", "events"),
		DefaultImageURL: os.Getenv("CLUBD_DEFAULT_IMAGE_URL"),
		BackupS3Bucket:  os.Getenv("CLUBD_BACKUP_S3_BUCKET"),
		BackupS3Key:     envOrDefault("CLUBD_BACKUP_S3_KEY", "club.jsonl"),
		BackupGitRepo:   os.Getenv("CLUBD_BACKUP_GIT_REPO"),
		BackupGitFile:   envOrDefault("CLUBD_BACKUP_GIT_FILE", "club.jsonl"),
		BackupGitBranch: envOrDefault("CLUBD_BACKUP_GIT_BRANCH", "main"),
	}
	if v := os.Getenv("CLUBD_BACKUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CLUBD_BACKUP_INTERVAL: %w", err)
		}
		c.BackupInterval = d
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("CLUBD_DATABASE_URL is required")
	}
	if c.S3Bucket == "" {
		return nil, fmt.Errorf("CLUBD_S3_BUCKET is required")
	}
	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
