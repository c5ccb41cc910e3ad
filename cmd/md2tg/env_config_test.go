package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-md2tg/internal/config"
)

// Tests in this file use t.Setenv and cannot run in parallel.

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MD2TG_CONFIG", "bot")
	t.Setenv("MD2TG_MAX_LENGTH", "2048")
	t.Setenv("MD2TG_LENGTH_UNIT", "utf16")
	t.Setenv("MD2TG_WORKERS", "4")
	t.Setenv("MD2TG_OUTPUT_DIR", "out")

	got := loadEnvConfig()
	want := envConfig{ConfigPath: "bot", MaxLength: 2048, LengthUnit: "utf16", Workers: 4, OutputDir: "out"}
	if *got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
	}
}

func TestLoadEnvConfig_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "lots"},
		{"zero", "0"},
		{"negative", "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MD2TG_MAX_LENGTH", tt.value)
			t.Setenv("MD2TG_WORKERS", tt.value)

			got := loadEnvConfig()
			if got.MaxLength != 0 || got.Workers != 0 {
				t.Errorf("loadEnvConfig() = %+v, want numbers ignored", *got)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MD2TG_MAX_LENGTH", "10")
	t.Setenv("MD2TG_MAXLEN", "10")
	t.Setenv("MD2TG_OUTPUTDIR", "x")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if strings.Contains(out, "MD2TG_MAX_LENGTH ") {
		t.Errorf("warned about known variable: %q", out)
	}
	maxlen := strings.Index(out, "MD2TG_MAXLEN")
	outdir := strings.Index(out, "MD2TG_OUTPUTDIR")
	if maxlen < 0 || outdir < 0 {
		t.Fatalf("warnings = %q, want both unknown variables", out)
	}
	if maxlen > outdir {
		t.Errorf("warnings = %q, want sorted order", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Message.MaxLength = 100
	cfg.Message.LengthUnit = "runes"
	cfg.Output.DefaultDir = "from-file"

	applyEnvConfig(&envConfig{MaxLength: 50, LengthUnit: "utf16", OutputDir: "from-env"}, cfg)

	if cfg.Message.MaxLength != 50 {
		t.Errorf("MaxLength = %d, want 50", cfg.Message.MaxLength)
	}
	if cfg.Message.LengthUnit != "utf16" {
		t.Errorf("LengthUnit = %q, want utf16", cfg.Message.LengthUnit)
	}
	if cfg.Output.DefaultDir != "from-env" {
		t.Errorf("DefaultDir = %q, want from-env", cfg.Output.DefaultDir)
	}

	applyEnvConfig(&envConfig{}, cfg)
	if cfg.Message.MaxLength != 50 || cfg.Output.DefaultDir != "from-env" {
		t.Errorf("empty env changed config: %+v", cfg)
	}
}
