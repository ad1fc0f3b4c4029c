package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIMETABLE_HTTP_PORT", "")
	t.Setenv("TIMETABLE_SQLITE_DSN", "")
	t.Setenv("TIMETABLE_ROOMS_CSV", "")
	t.Setenv("TIMETABLE_SESSIONS_CSV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:timetable.db?_foreign_keys=on" {
		t.Errorf("unexpected default DSN %q", cfg.SQLiteDSN)
	}
	if cfg.RoomsCSV != "" || cfg.SessionsCSV != "" {
		t.Errorf("expected empty CSV paths, got %q %q", cfg.RoomsCSV, cfg.SessionsCSV)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TIMETABLE_HTTP_PORT", "9090")
	t.Setenv("TIMETABLE_SQLITE_DSN", "file:other.db")
	t.Setenv("TIMETABLE_ROOMS_CSV", "/data/rooms.csv")
	t.Setenv("TIMETABLE_SESSIONS_CSV", "/data/sessions.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:other.db" {
		t.Errorf("expected overridden DSN, got %q", cfg.SQLiteDSN)
	}
	if cfg.RoomsCSV != "/data/rooms.csv" || cfg.SessionsCSV != "/data/sessions.csv" {
		t.Errorf("unexpected CSV paths: %q %q", cfg.RoomsCSV, cfg.SessionsCSV)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	for _, value := range []string{"not-a-port", "0", "-1"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("TIMETABLE_HTTP_PORT", value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected an error for invalid port")
			}
			if !strings.Contains(err.Error(), "TIMETABLE_HTTP_PORT") {
				t.Fatalf("expected the variable named in the error, got %v", err)
			}
		})
	}
}
