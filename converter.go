package md2tg

import (
	"context"
	"fmt"
	"sync"

	"github.com/alnah/go-md2tg/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.InputPreprocessor)(nil)
	_ Transport                     = TransportFunc(nil)
)

// Converter orchestrates the Markdown-to-MarkdownV2 pipeline.
// Create with NewConverter; a Converter is safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	transpiler   *pipeline.Transpiler
	splitter     *pipeline.Splitter
	plain        *pipeline.PlainRenderer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithMaxLength, WithStyle).
// Returns error if the style is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			maxLength:    DefaultMaxLength,
			maxInputSize: DefaultMaxInputSize,
			unit:         LengthRunes,
			style:        DefaultStyle(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.style.Validate(); err != nil {
		return nil, err
	}

	splitter, err := pipeline.NewSplitter(c.cfg.maxLength, c.cfg.unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLength, c.cfg.maxLength)
	}

	style := pipeline.Style(c.cfg.style)
	c.preprocessor = &pipeline.InputPreprocessor{MaxInputSize: c.cfg.maxInputSize}
	c.transpiler = pipeline.NewTranspiler(style)
	c.splitter = splitter
	c.plain = pipeline.NewPlainRenderer(style)
	return c, nil
}

// MaxLength returns the maximum chunk length.
func (c *Converter) MaxLength() int {
	return c.cfg.maxLength
}

// LengthUnit returns the unit chunk lengths are measured in.
func (c *Converter) LengthUnit() LengthUnit {
	return c.cfg.unit
}

// Convert transpiles markdown into MarkdownV2.
func (c *Converter) Convert(markdown string) string {
	content := c.preprocessor.PreprocessMarkdown(context.Background(), markdown)
	return c.transpiler.Convert(content)
}

// Split divides MarkdownV2 text into balanced chunks of at most MaxLength.
func (c *Converter) Split(text string) []string {
	return c.splitter.Split(text)
}

// Render converts markdown and splits the result.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Render(markdown string) (chunks []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	return c.Split(c.Convert(markdown)), nil
}

// PlainText renders markdown without any markup, for messages sent with no
// parse mode.
func (c *Converter) PlainText(markdown string) string {
	content := c.preprocessor.PreprocessMarkdown(context.Background(), markdown)
	return c.plain.Render(content)
}

// PlainChunks renders markdown as plain text and splits it into chunks of
// at most MaxLength, for messages sent with ParseModeNone.
func (c *Converter) PlainChunks(markdown string) []string {
	return c.splitter.SplitText(c.PlainText(markdown))
}

// defaultConverter backs the package-level helpers.
var defaultConverter = sync.OnceValue(func() *Converter {
	c, err := NewConverter()
	if err != nil {
		panic(err) // default configuration is always valid
	}
	return c
})

// Convert transpiles markdown into MarkdownV2 with the default style.
func Convert(markdown string) string {
	return defaultConverter().Convert(markdown)
}

// Split divides MarkdownV2 text into balanced chunks of at most maxLength
// code points. It fails only when maxLength is not positive.
func Split(text string, maxLength int) ([]string, error) {
	s, err := pipeline.NewSplitter(maxLength, LengthRunes)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLength, maxLength)
	}
	return s.Split(text), nil
}

// PlainText renders markdown without any markup.
func PlainText(markdown string) string {
	return defaultConverter().PlainText(markdown)
}

// IsBalanced reports whether a MarkdownV2 fragment leaves no delimiter open.
func IsBalanced(text string) bool {
	return pipeline.IsBalanced(text)
}

// Escape backslash-escapes every MarkdownV2 reserved character in text.
func Escape(text string) string {
	return pipeline.Escape(text)
}

// EscapeOutsideMarkup escapes the reserved characters of text that already
// holds MarkdownV2 markup, leaving the markup spans untouched.
func EscapeOutsideMarkup(text string) string {
	return pipeline.EscapeOutsideMarkup(text)
}
