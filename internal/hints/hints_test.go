package hints

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", ".config", "go-md2tg", "bot.yaml")

	tests := []struct {
		name     string
		searched []string
		want     string
		notWant  string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"bot.yaml", "bot.yml", userPath},
			want:     "or create " + userPath,
		},
		{
			name:     "no user path",
			searched: []string{"bot.yaml", "bot.yml"},
			want:     "use --config",
			notWant:  "or create",
		},
		{
			name: "nil paths",
			want: "use --config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.searched)
			if !strings.HasPrefix(got, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hint %q should contain %q", got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("hint %q should not contain %q", got, tt.notWant)
			}
		})
	}
}

func TestForMaxLength(t *testing.T) {
	t.Parallel()

	got := ForMaxLength(4096)
	if !strings.Contains(got, "4096 characters") {
		t.Errorf("ForMaxLength() = %q, want limit mentioned", got)
	}
	if strings.Count(got, "hint:") != 1 {
		t.Errorf("ForMaxLength() = %q, want a single hint line", got)
	}
	if !strings.Contains(got, "; ") {
		t.Errorf("ForMaxLength() = %q, want joined hints", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"output directory", ForOutputDirectory, "writable"},
		{"length unit", ForLengthUnit, "utf16"},
		{"input extension", ForInputExtension, "stdin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.fn()
			if !strings.HasPrefix(got, "\n  hint: ") || !strings.Contains(got, tt.want) {
				t.Errorf("hint = %q, want prefix and %q", got, tt.want)
			}
		})
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}
