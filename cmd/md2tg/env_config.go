package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-md2tg/internal/config"
)

// envPrefix starts every variable md2tg reads.
const envPrefix = "MD2TG_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2TG_CONFIG: config file name or path
	MaxLength  int    // MD2TG_MAX_LENGTH: maximum chunk length
	LengthUnit string // MD2TG_LENGTH_UNIT: runes or utf16
	Workers    int    // MD2TG_WORKERS: parallel workers
	OutputDir  string // MD2TG_OUTPUT_DIR: chunk file directory
}

// knownEnvVars lists valid MD2TG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2TG_CONFIG":      true,
	"MD2TG_MAX_LENGTH":  true,
	"MD2TG_LENGTH_UNIT": true,
	"MD2TG_WORKERS":     true,
	"MD2TG_OUTPUT_DIR":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed or non-positive numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2TG_CONFIG"),
		LengthUnit: os.Getenv("MD2TG_LENGTH_UNIT"),
		OutputDir:  os.Getenv("MD2TG_OUTPUT_DIR"),
		MaxLength:  positiveEnvInt("MD2TG_MAX_LENGTH"),
		Workers:    positiveEnvInt("MD2TG_WORKERS"),
	}
	return cfg
}

func positiveEnvInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// warnUnknownEnvVars prints a warning for each unrecognized MD2TG_* variable.
// Helps catch typos like MD2TG_MAXLENGTH instead of MD2TG_MAX_LENGTH.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with environment values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.MaxLength > 0 {
		cfg.Message.MaxLength = env.MaxLength
	}
	if env.LengthUnit != "" {
		cfg.Message.LengthUnit = env.LengthUnit
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
