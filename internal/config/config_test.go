package config

import (
	"errors"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DB_NAME", "ACCESS_TOKEN_TTL", "LIVE_SEARCH_TTL", "ALLOW_PASSWORD_SIGNUP", "DEFAULT_LAT", "BANNER_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.DBName != "jakca" {
		t.Fatalf("expected default db name, got %q", cfg.DBName)
	}
	if cfg.AccessTokenTTL != 20*time.Minute {
		t.Fatalf("expected 20m access ttl, got %s", cfg.AccessTokenTTL)
	}
	if cfg.LiveSearchTTL != 5*time.Minute {
		t.Fatalf("expected 5m live search ttl, got %s", cfg.LiveSearchTTL)
	}
	if cfg.AllowPasswordSignup {
		t.Fatalf("password signup should be disabled by default")
	}
	if cfg.DefaultLat != 37.5017 {
		t.Fatalf("unexpected default lat %v", cfg.DefaultLat)
	}
	if cfg.BannerProvider != "static" {
		t.Fatalf("unexpected banner provider %q", cfg.BannerProvider)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LIVE_SEARCH_TTL", "2")
	t.Setenv("ALLOW_PASSWORD_SIGNUP", "true")
	t.Setenv("DEFAULT_LNG", "126.9780")
	t.Setenv("REFRESH_TOKEN_TTL", "-3")

	cfg := FromEnv()
	if cfg.LiveSearchTTL != 2*time.Minute {
		t.Fatalf("expected 2m, got %s", cfg.LiveSearchTTL)
	}
	if !cfg.AllowPasswordSignup {
		t.Fatalf("expected password signup enabled")
	}
	if cfg.DefaultLng != 126.978 {
		t.Fatalf("unexpected lng %v", cfg.DefaultLng)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("invalid ttl should fall back to default, got %s", cfg.RefreshTokenTTL)
	}
}

func TestValidate(t *testing.T) {
	err := Config{}.Validate(true)
	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingError, got %v", err)
	}
	if len(missing.Keys) != 2 {
		t.Fatalf("expected two missing keys, got %v", missing.Keys)
	}

	if err := (Config{MongoURI: "mongodb://localhost"}).Validate(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
