package config_test

import (
	"testing"
	"time"

	"notevault/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET_KEY", "test_secret_key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AuthMode != config.PerRouteRequiredAuth {
		t.Errorf("Expected per-route auth by default, got %q", cfg.AuthMode)
	}
	if cfg.Media.Driver != config.MediaDriverLocal {
		t.Errorf("Expected local media driver by default, got %q", cfg.Media.Driver)
	}
	if cfg.Database.DatabaseName != "notevault" {
		t.Errorf("Expected default database name, got %q", cfg.Database.DatabaseName)
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("Expected 1h token expiration, got %v", cfg.JWT.Expiration)
	}
}

func TestLoadAuthModes(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected config.AuthMode
		wantErr  bool
	}{
		{"Per Route", "per-route", config.PerRouteRequiredAuth, false},
		{"Global Optional", "global-optional", config.GlobalOptionalAuth, false},
		{"Unknown", "sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GO_ENV", "test")
			t.Setenv("JWT_SECRET_KEY", "test_secret_key")
			t.Setenv("AUTH_MODE", tt.value)

			cfg, err := config.Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for auth mode %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.AuthMode != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, cfg.AuthMode)
			}
		})
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET_KEY", "")

	if _, err := config.Load(); err == nil {
		t.Error("Expected error when JWT_SECRET_KEY is unset")
	}
}

func TestLoadS3RequiresBucket(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET_KEY", "test_secret_key")
	t.Setenv("MEDIA_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "")

	if _, err := config.Load(); err == nil {
		t.Error("Expected error for s3 driver without bucket")
	}
}
