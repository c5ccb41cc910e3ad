package pipeline

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxInputSize is the input size guard, in bytes.
const DefaultMaxInputSize = 1 << 20

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress runs of blank lines to a single one
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// placeholderRemover deletes placeholder code points from input text.
var placeholderRemover = strings.NewReplacer(placeholderOpen, "", placeholderClose, "")

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// InputPreprocessor prepares raw model output for transpiling.
type InputPreprocessor struct {
	// MaxInputSize bounds the input in bytes. Zero means DefaultMaxInputSize.
	MaxInputSize int
}

// PreprocessMarkdown truncates oversized input, normalizes line endings and
// Unicode composition, and removes placeholder code points.
func (p *InputPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	limit := p.MaxInputSize
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	content = Truncate(content, limit)
	return Normalize(content)
}

// Normalize converts line endings to \n, applies Unicode NFC, removes
// placeholder code points, and compresses runs of blank lines outside
// fenced code.
func Normalize(content string) string {
	content = normalizeLineEndings(content)
	content = norm.NFC.String(content)
	content = stripPlaceholders(content)
	return compressBlankLines(content)
}

// Truncate cuts content to at most limit bytes without splitting a rune.
func Truncate(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one outside fenced
// code blocks. Fenced bodies are kept as written.
func compressBlankLines(content string) string {
	if !strings.Contains(content, "\n\n\n") {
		return content
	}
	var fences []Span
	for _, sp := range Blocks(content) {
		if sp.Kind == SpanFencedCode {
			fences = append(fences, sp)
		}
	}
	return rewriteSpans(content, fences,
		func(s string) string { return multipleBlankLines.ReplaceAllString(s, "\n\n") },
		func(_ Span, raw string) string { return raw },
	)
}

func stripPlaceholders(content string) string {
	if !strings.Contains(content, placeholderOpen) && !strings.Contains(content, placeholderClose) {
		return content
	}
	return placeholderRemover.Replace(content)
}
