// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strings"

	"weightcheck/internal/diagnostic"
)

// Config represents the complete application configuration
type Config struct {
	Data        DataConfig
	Diagnostics DiagnosticsConfig
	LogLevel    string
}

// DataConfig holds input file settings
type DataConfig struct {
	DatasetFile string // CSV or XLSX with survey responses
	TargetFile  string // CSV or XLSX with flat (variable, level, proportion) rows
	SheetName   string // Excel sheet to read, defaults to Sheet1
}

// DiagnosticsConfig holds diagnostic computation settings
type DiagnosticsConfig struct {
	// WeightCandidates is the ordered list of column names searched when no
	// explicit weight vector is given.
	WeightCandidates []string
}

// Load reads configuration from environment variables, applying defaults
func Load() *Config {
	return &Config{
		Data: DataConfig{
			DatasetFile: getEnv("DATASET_FILE", ""),
			TargetFile:  getEnv("TARGET_FILE", ""),
			SheetName:   getEnv("SHEET_NAME", "Sheet1"),
		},
		Diagnostics: DiagnosticsConfig{
			WeightCandidates: weightCandidates(),
		},
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
}

// weightCandidates parses WEIGHT_COLUMN_CANDIDATES as a comma-separated
// ordered list, falling back to the harvesting convention.
func weightCandidates() []string {
	raw := os.Getenv("WEIGHT_COLUMN_CANDIDATES")
	if raw == "" {
		return diagnostic.DefaultWeightCandidates()
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return diagnostic.DefaultWeightCandidates()
	}
	return names
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
