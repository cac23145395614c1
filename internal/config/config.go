package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded from the environment and
// optionally overridden by CLI flags.
type Config struct {
	// Batch mode
	InputDir  string
	OutputDir string

	// Worker pool (document granularity)
	WorkerCount int

	// HTTP mode
	Port           string
	APIKey         string
	MaxUploadBytes int64

	// Detection
	MinHeadingScore    float64
	MaxHeadingsPerPage int
	PatternsFile       string
}

func Load() Config {
	cfg := Config{
		InputDir:  envOr("INPUT_DIR", "input"),
		OutputDir: envOr("OUTPUT_DIR", "output"),

		WorkerCount: envInt("WORKER_COUNT", 4),

		Port:           envOr("PORT", "8091"),
		APIKey:         os.Getenv("API_KEY"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MinHeadingScore:    envFloat("MIN_HEADING_SCORE", 0.35),
		MaxHeadingsPerPage: envInt("MAX_HEADINGS_PER_PAGE", 10),
		PatternsFile:       os.Getenv("PATTERNS_FILE"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MinHeadingScore <= 0 || cfg.MinHeadingScore > 1 {
		cfg.MinHeadingScore = 0.35
	}
	if cfg.MaxHeadingsPerPage <= 0 {
		cfg.MaxHeadingsPerPage = 10
	}

	return cfg
}

func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
