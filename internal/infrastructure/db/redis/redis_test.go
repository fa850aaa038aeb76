package redis

import (
	"testing"

	"github.com/registryhq/birth-registry/internal/infrastructure/config"
)

func TestWithDefaults_EmptyAddr(t *testing.T) {
	cfg := withDefaults(config.RedisConfig{})
	if cfg.Addr != defaultAddr {
		t.Fatalf("expected default addr %q, got %q", defaultAddr, cfg.Addr)
	}
}

func TestWithDefaults_KeepsConfiguredAddr(t *testing.T) {
	cfg := withDefaults(config.RedisConfig{Addr: "cache:6380", DB: 2})
	if cfg.Addr != "cache:6380" || cfg.DB != 2 {
		t.Fatalf("expected configured values kept, got %+v", cfg)
	}
}
