package pipeline

import "strings"

// ReservedChars lists every character MarkdownV2 requires to be escaped in
// plain text. The backslash is included so escaping plain text twice stays
// consistent instead of producing dangling escapes.
const ReservedChars = "_*[]()~`>#+-=|{}.!\\"

// isReserved reports whether c must be escaped in MarkdownV2 plain text.
func isReserved(c byte) bool {
	return strings.IndexByte(ReservedChars, c) >= 0
}

// isASCIIPunct reports whether c may follow a backslash as a Markdown escape.
func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// Escape backslash-escapes every reserved character in text.
func Escape(text string) string {
	return escapeSet(text, isReserved)
}

// EscapeCode escapes text for the body of an inline code span, where only
// backticks and backslashes are significant.
func EscapeCode(text string) string {
	return escapeSet(text, func(c byte) bool { return c == '`' || c == '\\' })
}

// EscapeLinkURL escapes text for the destination part of an inline link,
// where only closing parentheses and backslashes are significant.
func EscapeLinkURL(text string) string {
	return escapeSet(text, func(c byte) bool { return c == ')' || c == '\\' })
}

func escapeSet(text string, reserved func(byte) bool) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if reserved(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unescape removes one level of backslash escaping: every backslash that
// precedes an ASCII punctuation character is dropped. Other backslashes are
// kept as written.
func Unescape(text string) string {
	if strings.IndexByte(text, '\\') < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) && isASCIIPunct(text[i+1]) {
			b.WriteByte(text[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapeOutsideSpans escapes reserved characters only in the parts of text
// not covered by spans. Span bytes are copied verbatim. spans must be sorted
// and disjoint, as returned by MergeSpans.
func EscapeOutsideSpans(text string, spans []Span) string {
	return rewriteSpans(text, spans, Escape, func(_ Span, raw string) string { return raw })
}

// rewriteSpans rebuilds text by passing the gaps between spans through plain
// and every span through span.
func rewriteSpans(text string, spans []Span, plain func(string) string, span func(Span, string) string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	last := 0
	for _, s := range spans {
		if s.Start < last || s.End > len(text) {
			continue
		}
		b.WriteString(plain(text[last:s.Start]))
		b.WriteString(span(s, text[s.Start:s.End]))
		last = s.End
	}
	b.WriteString(plain(text[last:]))
	return b.String()
}

// EscapeOutsideMarkup escapes the reserved characters of text that lie
// outside every MarkdownV2 span.
func EscapeOutsideMarkup(text string) string {
	return EscapeOutsideSpans(text, dialectScanner.Spans(text))
}
