package pipeline

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultMaxLength is Telegram's message length limit.
const DefaultMaxLength = 4096

// ErrInvalidMaxLength indicates a non-positive maximum chunk length.
var ErrInvalidMaxLength = errors.New("max length must be positive")

// LengthUnit selects how chunk length is measured.
type LengthUnit int

// Length units.
const (
	LengthRunes LengthUnit = iota // Unicode code points
	LengthUTF16                   // UTF-16 code units, as counted by Telegram
)

func (u LengthUnit) String() string {
	if u == LengthUTF16 {
		return "utf16"
	}
	return "runes"
}

// Measure returns the length of s in unit u.
func (u LengthUnit) Measure(s string) int {
	if u != LengthUTF16 {
		return utf8.RuneCountInString(s)
	}
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// token is an indivisible piece of text during splitting: a merged span,
// an escape pair, or a single rune.
type token struct {
	text  string
	size  int
	kind  SpanKind // zero for escape pairs and runes
	space bool     // whitespace rune
	nl    bool     // newline rune
}

// Splitter partitions MarkdownV2 text into balanced chunks of bounded
// length. A Splitter is immutable and safe for concurrent use.
type Splitter struct {
	maxLength int
	unit      LengthUnit
	scanner   *Scanner
}

// NewSplitter creates a Splitter. maxLength must be positive.
func NewSplitter(maxLength int, unit LengthUnit) (*Splitter, error) {
	if maxLength <= 0 {
		return nil, ErrInvalidMaxLength
	}
	return &Splitter{maxLength: maxLength, unit: unit, scanner: dialectScanner}, nil
}

// Split returns the chunks of text in order. Markup spans are never cut,
// except spans longer than the limit: fenced code is then re-fenced piece
// by piece and anything else is split as plain text. Chunk boundaries
// prefer the last newline, then the last whitespace. Every chunk is
// balanced; a chunk that is not is degraded to fully escaped plain text.
//
// A chunk may exceed the limit only when the limit is smaller than a
// single escape pair.
func (s *Splitter) Split(text string) []string {
	if s.unit.Measure(text) <= s.maxLength {
		return s.finalize(text)
	}

	var (
		chunks []string
		cur    []token
		size   int
	)
	flush := func(toks []token) {
		if len(toks) > 0 {
			chunks = append(chunks, s.finalize(joinTokens(toks))...)
		}
	}

	for _, tok := range s.tokenize(text) {
		if size+tok.size <= s.maxLength {
			cur = append(cur, tok)
			size += tok.size
			continue
		}
		if len(cur) > 0 {
			k := cutIndex(cur)
			flush(cur[:k])
			cur = append(cur[:0:0], cur[k:]...)
			size = tokensSize(cur)
			if size+tok.size <= s.maxLength {
				cur = append(cur, tok)
				size += tok.size
				continue
			}
			flush(cur)
			cur, size = nil, 0
		}
		if tok.size <= s.maxLength {
			cur = append(cur, tok)
			size = tok.size
			continue
		}
		for _, piece := range s.splitOversized(tok) {
			chunks = append(chunks, s.finalize(piece)...)
		}
	}
	flush(cur)
	return chunks
}

// SplitText splits text that carries no markup, cutting at the last
// whitespace that keeps each piece within the limit.
func (s *Splitter) SplitText(text string) []string {
	if s.unit.Measure(text) <= s.maxLength {
		return []string{text}
	}
	return s.splitPlain(text)
}

// tokenize views text as a sequence of tokens.
func (s *Splitter) tokenize(text string) []token {
	spans := s.scanner.Spans(text)
	toks := make([]token, 0, len(text))
	for i := 0; i < len(text); {
		if sp, ok := spanAt(spans, i); ok && sp.Start == i {
			raw := text[sp.Start:sp.End]
			toks = append(toks, token{text: raw, size: s.unit.Measure(raw), kind: sp.Kind})
			i = sp.End
			continue
		}
		n := escapeUnitLen(text, i)
		r, _ := utf8.DecodeRuneInString(text[i:])
		raw := text[i : i+n]
		toks = append(toks, token{
			text:  raw,
			size:  s.unit.Measure(raw),
			space: n == utf8.RuneLen(r) && unicode.IsSpace(r),
			nl:    r == '\n',
		})
		i += n
	}
	return toks
}

// escapeUnitLen returns the byte length of the unit at i: an escape pair or
// one rune.
func escapeUnitLen(text string, i int) int {
	if text[i] == '\\' && i+1 < len(text) {
		_, n := utf8.DecodeRuneInString(text[i+1:])
		return 1 + n
	}
	_, n := utf8.DecodeRuneInString(text[i:])
	return n
}

// cutIndex returns how many tokens of a full chunk to emit: up to the last
// newline when it lies in the second half, else up to the last whitespace,
// else all of them.
func cutIndex(toks []token) int {
	lastNL, lastSpace := -1, -1
	for i, t := range toks {
		if t.nl {
			lastNL = i
		}
		if t.space {
			lastSpace = i
		}
	}
	switch {
	case lastNL >= 0 && lastNL >= len(toks)/2:
		return lastNL + 1
	case lastSpace >= 0:
		return lastSpace + 1
	default:
		return len(toks)
	}
}

func joinTokens(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}

func tokensSize(toks []token) int {
	n := 0
	for _, t := range toks {
		n += t.size
	}
	return n
}

// splitOversized splits a token longer than the limit.
func (s *Splitter) splitOversized(tok token) []string {
	if tok.kind == SpanFencedCode {
		if pieces, ok := s.splitFence(tok.text); ok {
			return pieces
		}
	}
	return s.splitPlain(tok.text)
}

// splitFence splits a fenced code block into pieces that each carry the
// opening line and a closing fence.
func (s *Splitter) splitFence(raw string) ([]string, bool) {
	nl := strings.IndexByte(raw, '\n')
	if nl < 0 || !strings.HasSuffix(raw, "```") || nl+1 > len(raw)-3 {
		return nil, false
	}
	header := raw[:nl+1]
	const footer = "\n```"
	body := strings.TrimSuffix(raw[nl+1:len(raw)-3], "\n")

	// The body budget must hold at least one escape pair.
	budget := s.maxLength - s.unit.Measure(header) - s.unit.Measure(footer)
	if budget < 2 {
		return nil, false
	}
	bodySplitter := &Splitter{maxLength: budget, unit: s.unit}
	var pieces []string
	for _, part := range bodySplitter.splitPlain(body) {
		piece := header + strings.TrimSuffix(part, "\n") + footer
		if s.unit.Measure(piece) > s.maxLength {
			return nil, false
		}
		pieces = append(pieces, piece)
	}
	return pieces, true
}

// splitPlain splits text into pieces no longer than the limit, cutting at
// the last whitespace when there is one and never inside an escape pair.
func (s *Splitter) splitPlain(text string) []string {
	var pieces []string
	for text != "" {
		end, lastSpace, size := 0, 0, 0
		for end < len(text) {
			n := escapeUnitLen(text, end)
			w := s.unit.Measure(text[end : end+n])
			if size+w > s.maxLength && end > 0 {
				break
			}
			size += w
			if r, _ := utf8.DecodeRuneInString(text[end:]); n == utf8.RuneLen(r) && unicode.IsSpace(r) {
				lastSpace = end + n
			}
			end += n
		}
		if end < len(text) && lastSpace > 0 {
			end = lastSpace
		}
		pieces = append(pieces, text[:end])
		text = text[end:]
	}
	return pieces
}

// finalize balance-checks a chunk and degrades it when needed.
func (s *Splitter) finalize(chunk string) []string {
	if IsBalanced(chunk) {
		return []string{chunk}
	}
	plain := Escape(Unescape(chunk))
	if s.unit.Measure(plain) <= s.maxLength {
		return []string{plain}
	}
	return s.splitPlain(plain)
}
