package config

import (
	"testing"
	"time"

	"copiadora_xpto/internal/domain/analytics"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{
		"JWT_SECRET":         "s3cret",
		"IMAGE_STORE_DRIVER": "memory",
	}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.StorageDriver != DriverDynamoDB || cfg.ImageStoreDriver != DriverMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Tables.Steps != "steps" || cfg.Tables.DashboardStats != "dashboard_stats" {
		t.Fatalf("unexpected tables: %+v", cfg.Tables)
	}
	if cfg.StatsMode != analytics.ModeLatestStep {
		t.Fatalf("expected latest_step mode, got %s", cfg.StatsMode)
	}
	if cfg.Location != time.Local {
		t.Fatalf("expected Local timezone, got %v", cfg.Location)
	}
	if cfg.Minio.Bucket != "step-images" {
		t.Fatalf("expected default bucket, got %q", cfg.Minio.Bucket)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{
		"JWT_SECRET":       "s3cret",
		"HTTP_PORT":        "9090",
		"STORAGE_DRIVER":   "MEMORY",
		"STEPS_TABLE":      "dev_steps",
		"MINIO_ACCESS_KEY": "minio",
		"MINIO_SECRET_KEY": "minio123",
		"MINIO_USE_SSL":    "true",
		"STATS_MODE":       "service_status",
		"APP_TIMEZONE":     "America/Sao_Paulo",
	}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.HTTPPort != 9090 || cfg.StorageDriver != DriverMemory || cfg.Tables.Steps != "dev_steps" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.Minio.UseSSL || cfg.StatsMode != analytics.ModeServiceStatus {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Location.String() != "America/Sao_Paulo" {
		t.Fatalf("unexpected location %v", cfg.Location)
	}
}

func TestLoad_Invalid(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"JWT_SECRET": "s3cret", "IMAGE_STORE_DRIVER": "memory"}
	}
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing secret", "JWT_SECRET", ""},
		{"bad port", "HTTP_PORT", "http"},
		{"port out of range", "HTTP_PORT", "70000"},
		{"bad storage driver", "STORAGE_DRIVER", "postgres"},
		{"bad image driver", "IMAGE_STORE_DRIVER", "s3"},
		{"minio without credentials", "IMAGE_STORE_DRIVER", "minio"},
		{"bad ssl flag", "MINIO_USE_SSL", "maybe"},
		{"bad stats mode", "STATS_MODE", "average"},
		{"bad timezone", "APP_TIMEZONE", "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := base()
			env[tt.key] = tt.val
			if _, err := load(envFrom(env)); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
