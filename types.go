package md2tg

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-md2tg/internal/pipeline"
)

// LengthUnit selects how message length is measured.
type LengthUnit = pipeline.LengthUnit

// Length units.
const (
	LengthRunes = pipeline.LengthRunes // Unicode code points (default)
	LengthUTF16 = pipeline.LengthUTF16 // UTF-16 code units, as counted by Telegram
)

// Default limits.
const (
	DefaultMaxLength    = pipeline.DefaultMaxLength
	DefaultMaxInputSize = pipeline.DefaultMaxInputSize
)

// ParseLengthUnit parses "runes" or "utf16". The empty string selects runes.
func ParseLengthUnit(s string) (LengthUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "runes", "rune":
		return LengthRunes, nil
	case "utf16", "utf-16":
		return LengthUTF16, nil
	default:
		return LengthRunes, fmt.Errorf("%w: %q (must be runes or utf16)", ErrInvalidLengthUnit, s)
	}
}

// MaxGlyphLength bounds every Style field, in characters.
const MaxGlyphLength = 32

// Style holds the glyphs inserted for constructs MarkdownV2 cannot express.
// Empty fields use the default glyph.
type Style struct {
	H1Marker    string // prefix of level 1 headings, default "🔴 "
	H2Marker    string // prefix of level 2 headings, default "🟠 "
	Checked     string // checked task item, default "✅ "
	Unchecked   string // unchecked task item, default "⬜ "
	Rule        string // thematic break, default "⎯⎯⎯"
	ImageMarker string // prefix of image link text, default "🖼 "
	EmojiScheme string // URL prefix of custom emoji images, default "tg://emoji"
}

// DefaultStyle returns the default glyph set.
func DefaultStyle() Style {
	d := pipeline.DefaultStyle()
	return Style(d)
}

// Validate checks that every glyph is a single line of at most
// MaxGlyphLength characters.
func (s *Style) Validate() error {
	if s == nil {
		return nil
	}
	fields := []struct {
		name  string
		value string
	}{
		{"h1Marker", s.H1Marker},
		{"h2Marker", s.H2Marker},
		{"checked", s.Checked},
		{"unchecked", s.Unchecked},
		{"rule", s.Rule},
		{"imageMarker", s.ImageMarker},
		{"emojiScheme", s.EmojiScheme},
	}
	for _, f := range fields {
		if n := utf8.RuneCountInString(f.value); n > MaxGlyphLength {
			return fmt.Errorf("%w: %s is %d characters (max %d)", ErrInvalidStyle, f.name, n, MaxGlyphLength)
		}
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidStyle, f.name)
		}
	}
	return nil
}

// withDefaults fills empty fields from DefaultStyle.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&s.H1Marker, d.H1Marker)
	fill(&s.H2Marker, d.H2Marker)
	fill(&s.Checked, d.Checked)
	fill(&s.Unchecked, d.Unchecked)
	fill(&s.Rule, d.Rule)
	fill(&s.ImageMarker, d.ImageMarker)
	fill(&s.EmojiScheme, d.EmojiScheme)
	return s
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	maxLength    int
	maxInputSize int
	unit         LengthUnit
	style        Style
	throttle     *Throttle
}

// WithMaxLength sets the maximum chunk length.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithMaxLength(n int) Option {
	if n <= 0 {
		panic("md2tg: WithMaxLength length must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxLength = n
	}
}

// WithMaxInputSize sets the input size guard in bytes. Longer input is
// truncated before conversion.
// Panics if n <= 0.
func WithMaxInputSize(n int) Option {
	if n <= 0 {
		panic("md2tg: WithMaxInputSize size must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxInputSize = n
	}
}

// WithLengthUnit sets how chunk length is measured.
// Panics on an unknown unit.
func WithLengthUnit(u LengthUnit) Option {
	if u != LengthRunes && u != LengthUTF16 {
		panic("md2tg: WithLengthUnit unknown unit")
	}
	return func(c *Converter) {
		c.cfg.unit = u
	}
}

// WithStyle sets the glyphs used for headings, task items, rules and images.
// Empty fields keep their default. NewConverter validates the style.
func WithStyle(s Style) Option {
	return func(c *Converter) {
		c.cfg.style = s.withDefaults()
	}
}

// WithThrottle makes Deliver wait at least interval between two requests.
// Panics if interval < 0.
func WithThrottle(interval time.Duration) Option {
	if interval < 0 {
		panic("md2tg: WithThrottle interval must not be negative")
	}
	return func(c *Converter) {
		c.cfg.throttle = &Throttle{Interval: interval}
	}
}

// WithSharedThrottle makes Deliver wait on t, which may be shared with
// other converters sending to the same chat.
func WithSharedThrottle(t *Throttle) Option {
	return func(c *Converter) {
		c.cfg.throttle = t
	}
}
