// Package config loads service configuration from the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration for the timetable service.
type Config struct {
	HTTPPort    int
	SQLiteDSN   string
	RoomsCSV    string
	SessionsCSV string
}

// Load parses configuration values from the current process environment.
// Optional fields fall back to defaults; invalid values are collected and
// reported together so an operator sees every problem at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		SQLiteDSN: "file:timetable.db?_foreign_keys=on",
	}

	invalid := make([]string, 0, 1)

	if portValue := strings.TrimSpace(os.Getenv("TIMETABLE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "TIMETABLE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("TIMETABLE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	cfg.RoomsCSV = strings.TrimSpace(os.Getenv("TIMETABLE_ROOMS_CSV"))
	cfg.SessionsCSV = strings.TrimSpace(os.Getenv("TIMETABLE_SESSIONS_CSV"))

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
