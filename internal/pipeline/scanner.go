package pipeline

import "strings"

// noMoreMatches tells the scan loop that a pattern cannot match anywhere
// after the current offset.
const noMoreMatches = -2

// Placeholder delimiters for sealed fragments. Both are Private Use Area
// code points, so no Markdown construct and no reserved character can
// match them.
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
)

// Pattern describes one span construct recognized by a Scanner.
// Delimited patterns match Open, then the nearest unescaped Close.
// Opaque patterns hide their content from every other pattern.
type Pattern struct {
	Kind       SpanKind
	Open       string
	Close      string
	SingleLine bool
	Opaque     bool

	match func(text string, i int, skip []Span) int
}

// Dialect patterns, as they appear in converted MarkdownV2 text.
var (
	FencedCodePattern    = Pattern{Kind: SpanFencedCode, Open: "```", Close: "```", Opaque: true}
	InlineCodePattern    = Pattern{Kind: SpanInlineCode, Open: "`", Close: "`", Opaque: true}
	SpoilerPattern       = Pattern{Kind: SpanSpoiler, Open: "||", Close: "||", SingleLine: true}
	StrikethroughPattern = Pattern{Kind: SpanStrikethrough, Open: "~", Close: "~", SingleLine: true}
	BoldPattern          = Pattern{Kind: SpanBold, Open: "*", Close: "*", SingleLine: true}
	ItalicPattern        = Pattern{Kind: SpanItalic, Open: "_", Close: "_", SingleLine: true}
	LinkPattern          = Pattern{Kind: SpanLink, match: matchDialectTextLink}
	ImagePattern         = Pattern{Kind: SpanImage, match: matchDialectImage}
)

// DialectPatterns returns the span patterns of MarkdownV2 text.
func DialectPatterns() []Pattern {
	return []Pattern{
		FencedCodePattern,
		InlineCodePattern,
		SpoilerPattern,
		StrikethroughPattern,
		BoldPattern,
		ItalicPattern,
		LinkPattern,
		ImagePattern,
	}
}

// Scanner locates atomic markup regions for a fixed set of patterns.
// A Scanner is immutable and safe for concurrent use.
type Scanner struct {
	opaque   []Pattern
	patterns []Pattern
}

// NewScanner creates a Scanner for the given patterns. Opaque patterns are
// resolved first, in the order given.
func NewScanner(patterns ...Pattern) *Scanner {
	s := &Scanner{}
	for _, p := range patterns {
		if p.Opaque {
			s.opaque = append(s.opaque, p)
		} else {
			s.patterns = append(s.patterns, p)
		}
	}
	return s
}

// NewDialectScanner creates a Scanner for MarkdownV2 text.
func NewDialectScanner() *Scanner {
	return NewScanner(DialectPatterns()...)
}

var dialectScanner = NewDialectScanner()

// Spans returns the merged span list of text: every pattern is matched
// greedily leftmost-first on its own, then overlapping matches are unioned
// (see MergeSpans). Escaped characters never open or close a span.
func (s *Scanner) Spans(text string) []Span {
	var opaque []Span
	for _, p := range s.opaque {
		opaque = MergeSpans(append(opaque, scanPattern(text, p, opaque)...))
	}

	spans := append([]Span(nil), opaque...)
	for _, p := range s.patterns {
		spans = append(spans, scanPattern(text, p, opaque)...)
	}
	return MergeSpans(spans)
}

// scanPattern collects the non-overlapping matches of p, skipping over the
// given opaque regions.
func scanPattern(text string, p Pattern, skip []Span) []Span {
	var found []Span
	for i := 0; i < len(text); {
		if r, ok := spanAt(skip, i); ok {
			i = r.End
			continue
		}
		if text[i] == '\\' {
			i += 2
			continue
		}
		end := p.matchAt(text, i, skip)
		if end == noMoreMatches {
			break
		}
		if end > i {
			found = append(found, Span{Kind: p.Kind, Start: i, End: end})
			i = end
			continue
		}
		i++
	}
	return found
}

// matchAt returns the end offset of a match of p starting at i, -1 when p
// does not match there, or noMoreMatches.
func (p Pattern) matchAt(text string, i int, skip []Span) int {
	if p.match != nil {
		return p.match(text, i, skip)
	}
	if !strings.HasPrefix(text[i:], p.Open) {
		return -1
	}
	j := findClose(text, i+len(p.Open), p.Close, p.SingleLine, skip)
	if j < 0 {
		if p.Opaque {
			return noMoreMatches
		}
		return -1
	}
	return j + len(p.Close)
}

// findClose returns the offset of the first unescaped occurrence of delim at
// or after from, jumping over skip regions. With singleLine set the search
// stops at the first newline.
func findClose(text string, from int, delim string, singleLine bool, skip []Span) int {
	for j := from; j < len(text); j++ {
		if r, ok := spanAt(skip, j); ok {
			j = r.End - 1
			continue
		}
		c := text[j]
		if c == '\\' {
			j++
			continue
		}
		if singleLine && c == '\n' {
			return -1
		}
		if strings.HasPrefix(text[j:], delim) {
			return j
		}
	}
	return -1
}

// matchDialectLink matches [text](url) on a single line.
func matchDialectLink(text string, i int, skip []Span) int {
	if text[i] != '[' {
		return -1
	}
	k := findClose(text, i+1, "]", true, skip)
	if k < 0 || k+1 >= len(text) || text[k+1] != '(' {
		return -1
	}
	end := findClose(text, k+2, ")", true, nil)
	if end < 0 {
		return -1
	}
	return end + 1
}

// matchDialectTextLink matches a link that is not the tail of an image.
func matchDialectTextLink(text string, i int, skip []Span) int {
	if i > 0 && text[i-1] == '!' && (i < 2 || text[i-2] != '\\') {
		return -1
	}
	return matchDialectLink(text, i, skip)
}

// matchDialectImage matches ![alt](url), the custom emoji form.
func matchDialectImage(text string, i int, skip []Span) int {
	if text[i] != '!' || i+1 >= len(text) {
		return -1
	}
	return matchDialectLink(text, i+1, skip)
}
