package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"copiadora_xpto/internal/adapter/persistence/repository"
	"copiadora_xpto/internal/domain/analytics"
	"copiadora_xpto/internal/infrastructure/storage"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
	DriverMinio    = "minio"
)

// Config is the process configuration, read once at startup.
type Config struct {
	HTTPPort         int
	StorageDriver    string
	ImageStoreDriver string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	Tables             repository.Tables

	Minio storage.MinioConfig

	JWTSecret string
	StatsMode analytics.Mode
	Location  *time.Location
}

// Load reads the environment and validates it.
//
// Supported env vars (local-friendly):
//   - HTTP_PORT (default: 8080)
//   - STORAGE_DRIVER dynamodb|memory (default: dynamodb)
//   - AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, DYNAMODB_ENDPOINT
//   - SERVICES_TABLE, STEPS_TABLE, IMAGES_TABLE, CATEGORIES_TABLE,
//     CLIENTS_TABLE, COPY_MACHINES_TABLE, DASHBOARD_STATS_TABLE
//   - IMAGE_STORE_DRIVER minio|memory (default: minio)
//   - MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, MINIO_BUCKET, MINIO_REGION, MINIO_USE_SSL
//   - JWT_SECRET (required)
//   - STATS_MODE latest_step|service_status (default: latest_step)
//   - APP_TIMEZONE (default: Local)
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(get("HTTP_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid HTTP_PORT %q", getenv("HTTP_PORT"))
	}

	defaults := repository.DefaultTables()
	cfg := Config{
		HTTPPort:           port,
		StorageDriver:      strings.ToLower(get("STORAGE_DRIVER", DriverDynamoDB)),
		ImageStoreDriver:   strings.ToLower(get("IMAGE_STORE_DRIVER", DriverMinio)),
		AWSRegion:          get("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     get("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: get("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   get("DYNAMODB_ENDPOINT", ""),
		Tables: repository.Tables{
			Services:       get("SERVICES_TABLE", defaults.Services),
			Steps:          get("STEPS_TABLE", defaults.Steps),
			Images:         get("IMAGES_TABLE", defaults.Images),
			Categories:     get("CATEGORIES_TABLE", defaults.Categories),
			Clients:        get("CLIENTS_TABLE", defaults.Clients),
			CopyMachines:   get("COPY_MACHINES_TABLE", defaults.CopyMachines),
			DashboardStats: get("DASHBOARD_STATS_TABLE", defaults.DashboardStats),
		},
		Minio: storage.MinioConfig{
			Endpoint:  get("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: get("MINIO_ACCESS_KEY", ""),
			SecretKey: get("MINIO_SECRET_KEY", ""),
			Bucket:    get("MINIO_BUCKET", "step-images"),
			Region:    get("MINIO_REGION", ""),
		},
		JWTSecret: getenv("JWT_SECRET"),
	}

	switch cfg.StorageDriver {
	case DriverDynamoDB, DriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q (want dynamodb or memory)", cfg.StorageDriver)
	}
	switch cfg.ImageStoreDriver {
	case DriverMinio:
		if err := cfg.Minio.Validate(); err != nil {
			return Config{}, err
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid IMAGE_STORE_DRIVER %q (want minio or memory)", cfg.ImageStoreDriver)
	}

	useSSL, err := strconv.ParseBool(get("MINIO_USE_SSL", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid MINIO_USE_SSL %q", getenv("MINIO_USE_SSL"))
	}
	cfg.Minio.UseSSL = useSSL

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.StatsMode, err = analytics.ParseMode(get("STATS_MODE", string(analytics.ModeLatestStep)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STATS_MODE: %w", err)
	}

	cfg.Location, err = time.LoadLocation(get("APP_TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	return cfg, nil
}
