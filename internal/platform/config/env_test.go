package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	DBPath string `env:"SPRITEBANK_TEST_DB_PATH" envDefault:"catalog.db"`
	Limit  int    `env:"SPRITEBANK_TEST_LIMIT" envDefault:"25"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "catalog.db" {
		t.Fatalf("expected default db path catalog.db, got %q", cfg.DBPath)
	}
	if cfg.Limit != 25 {
		t.Fatalf("expected default limit 25, got %d", cfg.Limit)
	}
}

func TestParseEnvOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SPRITEBANK_TEST_DB_PATH", "/var/lib/spritebank/catalog.db")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "/var/lib/spritebank/catalog.db" {
		t.Fatalf("expected override, got %q", cfg.DBPath)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SPRITEBANK_TEST_LIMIT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
