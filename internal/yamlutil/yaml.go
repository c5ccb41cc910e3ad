// Package yamlutil wraps YAML parsing behind a size guard so callers never
// depend on the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input, in bytes.
const MaxInputSize = 1 << 20

var (
	ErrEmptyData      = errors.New("yamlutil: empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Mode selects how keys without a destination field are handled.
type Mode int

const (
	// Strict rejects unknown keys. Duplicate keys are always rejected.
	Strict Mode = iota
	// Lenient ignores unknown keys, so files shared with other tools load.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

func (m Mode) decodeOptions() []yaml.DecodeOption {
	if m == Lenient {
		return nil
	}
	return []yaml.DecodeOption{yaml.Strict()}
}

// Unmarshal decodes data into v. Input larger than MaxInputSize is refused
// before parsing.
func Unmarshal(data []byte, v any, mode Mode) error {
	switch {
	case len(data) == 0:
		return ErrEmptyData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, mode.decodeOptions()...); err != nil {
		return fmt.Errorf("yamlutil: %s decode: %w", mode, err)
	}
	return nil
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
