package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("AUTH_SESSION_TTL_HOURS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != StorageMemory {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, StorageMemory)
	}
	if got := cfg.Auth.SessionTTL(); got != 24*time.Hour {
		t.Errorf("SessionTTL() = %v, want 24h", got)
	}
	if cfg.Contact.DefaultSubject != "Contact Form Submission" {
		t.Errorf("Contact.DefaultSubject = %q", cfg.Contact.DefaultSubject)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "floppy")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for unknown backend")
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error without POSTGRES_DSN")
	}
}

func TestAppConfig_Addr(t *testing.T) {
	a := AppConfig{Host: "127.0.0.1", Port: "9000"}
	if got := a.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestAuthConfig_SessionTTLFallback(t *testing.T) {
	a := AuthConfig{SessionTTLHours: 0}
	if got := a.SessionTTL(); got != 24*time.Hour {
		t.Errorf("SessionTTL() = %v, want 24h", got)
	}
	a.SessionTTLHours = 2
	if got := a.SessionTTL(); got != 2*time.Hour {
		t.Errorf("SessionTTL() = %v, want 2h", got)
	}
}
