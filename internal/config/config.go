package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-md2tg/internal/fileutil"
	"github.com/alnah/go-md2tg/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxGlyphLength     = 32       // style glyphs, in characters
	MaxSeparatorLength = 100      // chunk separator, in characters
	MaxPathLength      = 4096     // output directory
	MaxMessageLength   = 1 << 16  // upper bound of message.maxLength
	MaxInputSizeLimit  = 64 << 20 // upper bound of message.maxInputSize
)

// DefaultSeparator separates chunks printed to stdout.
const DefaultSeparator = "\n---8<---\n"

// appDir is the directory name under the user config directory.
const appDir = "go-md2tg"

// Config holds all configuration for conversion and output.
type Config struct {
	Message MessageConfig `yaml:"message"`
	Style   StyleConfig   `yaml:"style"`
	Output  OutputConfig  `yaml:"output"`
}

// MessageConfig defines message size options.
type MessageConfig struct {
	MaxLength    int    `yaml:"maxLength"`    // 0 = 4096
	LengthUnit   string `yaml:"lengthUnit"`   // "runes" or "utf16" (default: runes)
	MaxInputSize int    `yaml:"maxInputSize"` // bytes, 0 = 1 MiB
}

// StyleConfig defines the glyphs for constructs MarkdownV2 cannot express.
// Empty fields keep the default glyph.
type StyleConfig struct {
	H1Marker    string `yaml:"h1Marker"`
	H2Marker    string `yaml:"h2Marker"`
	Checked     string `yaml:"checked"`
	Unchecked   string `yaml:"unchecked"`
	Rule        string `yaml:"rule"`
	ImageMarker string `yaml:"imageMarker"`
	EmojiScheme string `yaml:"emojiScheme"`
}

// OutputConfig defines where chunks go.
type OutputConfig struct {
	Separator  string `yaml:"separator"`  // Empty = DefaultSeparator
	DefaultDir string `yaml:"defaultDir"` // Empty = stdout
}

// Validate checks ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Message.MaxLength < 0 || c.Message.MaxLength > MaxMessageLength {
		return fmt.Errorf("%w: message.maxLength must be between 1 and %d, got %d",
			ErrInvalidValue, MaxMessageLength, c.Message.MaxLength)
	}
	switch strings.ToLower(c.Message.LengthUnit) {
	case "", "runes", "utf16":
	default:
		return fmt.Errorf("%w: message.lengthUnit %q (must be runes or utf16)", ErrInvalidValue, c.Message.LengthUnit)
	}
	if c.Message.MaxInputSize < 0 || c.Message.MaxInputSize > MaxInputSizeLimit {
		return fmt.Errorf("%w: message.maxInputSize must be between 1 and %d, got %d",
			ErrInvalidValue, MaxInputSizeLimit, c.Message.MaxInputSize)
	}

	glyphs := []struct {
		name  string
		value string
	}{
		{"style.h1Marker", c.Style.H1Marker},
		{"style.h2Marker", c.Style.H2Marker},
		{"style.checked", c.Style.Checked},
		{"style.unchecked", c.Style.Unchecked},
		{"style.rule", c.Style.Rule},
		{"style.imageMarker", c.Style.ImageMarker},
		{"style.emojiScheme", c.Style.EmojiScheme},
	}
	for _, g := range glyphs {
		if err := validateFieldLength(g.name, g.value, MaxGlyphLength); err != nil {
			return err
		}
		if strings.ContainsAny(g.value, "\r\n") {
			return fmt.Errorf("%w: %s must be a single line", ErrInvalidValue, g.name)
		}
	}

	if err := validateFieldLength("output.separator", c.Output.Separator, MaxSeparatorLength); err != nil {
		return err
	}
	return validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length
// in characters.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if n := utf8.RuneCountInString(value); n > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, n, maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every field uses its default.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Separator: DefaultSeparator},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Unknown keys are rejected.
func LoadConfig(nameOrPath string) (*Config, error) {
	return load(nameOrPath, yamlutil.Strict)
}

// LoadConfigLenient is LoadConfig for files that also carry keys for other
// tools: unknown keys are ignored. Known keys are still validated.
func LoadConfigLenient(nameOrPath string) (*Config, error) {
	return load(nameOrPath, yamlutil.Lenient)
}

func load(nameOrPath string, mode yamlutil.Mode) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Unmarshal(data, cfg, mode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Output.Separator == "" {
		cfg.Output.Separator = DefaultSeparator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML, in the layout LoadConfig reads.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths returns the files a config name resolves to, in lookup order:
// name.yaml and name.yml in the current directory, then in
// ~/.config/go-md2tg/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
