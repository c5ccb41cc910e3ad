// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strconv"
	"strings"
)

// userConfigMarker identifies the per-user config location in searched paths.
const userConfigMarker = "go-md2tg"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMaxLength returns hints for an invalid message length.
func ForMaxLength(limit int) string {
	return formatHints([]string{
		"use a positive --max-length",
		"Telegram accepts at most " + strconv.Itoa(limit) + " characters per message",
	})
}

// ForLengthUnit returns hints for an unknown length unit.
func ForLengthUnit() string {
	return format("use --length-unit runes or --length-unit utf16 (as counted by Telegram)")
}

// ForInputExtension returns hints for inputs that are not Markdown files.
func ForInputExtension() string {
	return format("rename the file to .md or .markdown, or pipe it through stdin")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
