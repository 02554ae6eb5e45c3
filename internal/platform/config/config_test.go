package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":5000" {
		t.Errorf("Addr: got %q, want %q", cfg.Addr, ":5000")
	}
	if cfg.JWTTTL != 0 {
		t.Errorf("JWTTTL default: got %v, want 0 (no expiry)", cfg.JWTTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel: got %v, want info", cfg.LogLevel)
	}
	if cfg.KafkaEnabled || cfg.RedisEnabled || cfg.TracingEnabled {
		t.Error("optional integrations must default to disabled")
	}
	if cfg.LinkServiceKey != "" {
		t.Errorf("LinkServiceKey default: got %q, want empty", cfg.LinkServiceKey)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":8088")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "12h")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LINK_SERVICE_KEY", "svc-key")

	cfg := Load()

	if cfg.Addr != ":8088" {
		t.Errorf("Addr: got %q, want %q", cfg.Addr, ":8088")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel: got %v, want debug", cfg.LogLevel)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret: got %q", cfg.JWTSecret)
	}
	if cfg.JWTTTL != 12*time.Hour {
		t.Errorf("JWTTTL: got %v, want 12h", cfg.JWTTTL)
	}
	if !cfg.KafkaEnabled || len(cfg.KafkaBrokers) != 2 {
		t.Errorf("kafka config: got enabled=%v brokers=%v", cfg.KafkaEnabled, cfg.KafkaBrokers)
	}
	if cfg.LinkServiceKey != "svc-key" {
		t.Errorf("LinkServiceKey: got %q", cfg.LinkServiceKey)
	}
}
