package utils

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	port         string
	databasePath string
	calendarName string

	location *time.Location

	metricCollectionInterval time.Duration
}

// Read the config from the environment, exit if any value is invalid
func NewConfig() *Config {
	config, err := NewConfigFromLookup(os.LookupEnv)
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	return config
}

// Read the config through the given lookup function, os.LookupEnv in
// production
func NewConfigFromLookup(lookup func(string) (string, bool)) (*Config, error) {
	getenv := func(key string) string {
		value, _ := lookup(key)
		return value
	}
	var errs []error

	config := &Config{
		port: func() string {
			port := getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		databasePath: func() string {
			databasePath := getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./sqlite.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return filepath.Clean(databasePath)
		}(),

		calendarName: func() string {
			calendarName := getenv("CALENDAR_NAME")
			if calendarName == "" {
				calendarName = "towcal"
			}
			slog.Debug("env", "CALENDAR_NAME", calendarName)
			return calendarName
		}(),

		location: func() *time.Location {
			timezoneStr := getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					errs = append(errs, fmt.Errorf("invalid TIMEZONE %q: %w", timezoneStr, err))
					return time.Local
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		metricCollectionInterval: func() time.Duration {
			interval := getenv("METRIC_COLLECTION_INTERVAL")
			if interval == "" {
				interval = "10s"
			}
			duration, err := time.ParseDuration(interval)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid METRIC_COLLECTION_INTERVAL %q: %w", interval, err))
				return 0
			}
			if duration <= 0 {
				errs = append(errs, fmt.Errorf("METRIC_COLLECTION_INTERVAL must be positive, got %s", duration))
				return 0
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", interval, "duration", duration)
			return duration
		}(),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("NewConfigFromLookup: %w", errs[0])
	}
	return config, nil
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DATABASE_PATH env, default to ./sqlite.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get CALENDAR_NAME env, default to towcal
func (c *Config) GetCalendarName() string {
	return c.calendarName
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get METRIC_COLLECTION_INTERVAL env, default to 10s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
