package mongo

import (
	"testing"

	"github.com/registryhq/birth-registry/internal/infrastructure/config"
)

func TestWithDefaults_EmptyDatabase(t *testing.T) {
	cfg := withDefaults(config.MongoConfig{URI: "mongodb://localhost:27017"})
	if cfg.Database != defaultDatabase {
		t.Fatalf("expected default database %q, got %q", defaultDatabase, cfg.Database)
	}
}

func TestWithDefaults_KeepsConfiguredDatabase(t *testing.T) {
	cfg := withDefaults(config.MongoConfig{URI: "mongodb://localhost:27017", Database: "registry_test"})
	if cfg.Database != "registry_test" {
		t.Fatalf("expected configured database kept, got %q", cfg.Database)
	}
}
