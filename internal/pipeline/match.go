package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is one source construct found by NextInline.
// Start/End bound the whole construct, InnerStart/InnerEnd its content
// (the text of a link, the alt of an image, the body of code or math).
type Match struct {
	Kind       SpanKind
	Start      int
	End        int
	InnerStart int
	InnerEnd   int
	URL        string
	Display    bool // \[...\] rather than \(...\)
}

// Inner returns the content of m within line.
func (m Match) Inner(line string) string {
	return line[m.InnerStart:m.InnerEnd]
}

// emphasisDelims lists source emphasis delimiters, longest first so that a
// double delimiter wins over its single form at the same offset.
var emphasisDelims = []struct {
	delim string
	kind  SpanKind
}{
	{"||", SpanSpoiler},
	{"~~", SpanStrikethrough},
	{"**", SpanBold},
	{"__", SpanBold},
	{"~", SpanStrikethrough},
	{"*", SpanItalic},
	{"_", SpanItalic},
}

// NextInline returns the leftmost source inline construct in line at or
// after from. At one offset the priority is code, image, link, math, then
// emphasis (spoiler, strikethrough, bold, italic).
func NextInline(line string, from int) (Match, bool) {
	for i := from; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if m, ok := matchMath(line, i); ok {
				return m, true
			}
			i++
		case '`':
			m, ok, run := matchCodeSpan(line, i)
			if ok {
				return m, true
			}
			i += run - 1
		case '!':
			if m, ok := matchLink(line, i+1); ok {
				m.Kind = SpanImage
				m.Start = i
				return m, true
			}
		case '[':
			if m, ok := matchLink(line, i); ok && m.InnerEnd > m.InnerStart {
				return m, true
			}
		case '|', '~', '*', '_':
			if m, ok := matchEmphasis(line, i); ok {
				return m, true
			}
		}
	}
	return Match{}, false
}

// matchCodeSpan matches a run of n backticks closed by a run of exactly n.
// run is the length of the opening run, so callers can step over it.
func matchCodeSpan(line string, i int) (m Match, ok bool, run int) {
	n := backtickRun(line, i)
	for j := i + n; j < len(line); {
		if line[j] != '`' {
			j++
			continue
		}
		k := backtickRun(line, j)
		if k == n {
			return Match{Kind: SpanInlineCode, Start: i, End: j + k, InnerStart: i + n, InnerEnd: j}, true, n
		}
		j += k
	}
	return Match{}, false, n
}

func backtickRun(line string, i int) int {
	n := 0
	for i+n < len(line) && line[i+n] == '`' {
		n++
	}
	return n
}

// matchLink matches [text](url) at i. Brackets in the text and parentheses
// in the destination may nest.
func matchLink(line string, i int) (Match, bool) {
	if i >= len(line) || line[i] != '[' {
		return Match{}, false
	}
	textEnd := matchBalanced(line, i, '[', ']')
	if textEnd < 0 || textEnd+1 >= len(line) || line[textEnd+1] != '(' {
		return Match{}, false
	}
	urlEnd := matchBalanced(line, textEnd+1, '(', ')')
	if urlEnd < 0 {
		return Match{}, false
	}
	url := strings.TrimSpace(line[textEnd+2 : urlEnd])
	if k := strings.IndexAny(url, " \t"); k >= 0 {
		url = url[:k] // drop the optional link title
	}
	url = strings.TrimSuffix(strings.TrimPrefix(url, "<"), ">")
	if url == "" {
		return Match{}, false
	}
	return Match{
		Kind:       SpanLink,
		Start:      i,
		End:        urlEnd + 1,
		InnerStart: i + 1,
		InnerEnd:   textEnd,
		URL:        url,
	}, true
}

// matchBalanced returns the offset of the closer matching the opener at i.
func matchBalanced(line string, i int, open, close byte) int {
	depth := 0
	for j := i; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// matchMath matches \(...\) and \[...\] on one line.
func matchMath(line string, i int) (Match, bool) {
	if i+1 >= len(line) {
		return Match{}, false
	}
	var closer string
	switch line[i+1] {
	case '(':
		closer = `\)`
	case '[':
		closer = `\]`
	default:
		return Match{}, false
	}
	j := strings.Index(line[i+2:], closer)
	if j <= 0 {
		return Match{}, false
	}
	j += i + 2
	return Match{
		Kind:       SpanMath,
		Start:      i,
		End:        j + 2,
		InnerStart: i + 2,
		InnerEnd:   j,
		Display:    line[i+1] == '[',
	}, true
}

// matchEmphasis matches the first emphasis delimiter form that opens at i
// and has a valid closer on the line.
func matchEmphasis(line string, i int) (Match, bool) {
	for _, e := range emphasisDelims {
		if !strings.HasPrefix(line[i:], e.delim) {
			continue
		}
		if !canOpen(line, i, e.delim) {
			continue
		}
		if j := findEmphasisClose(line, i+len(e.delim), e.delim); j >= 0 {
			return Match{
				Kind:       e.kind,
				Start:      i,
				End:        j + len(e.delim),
				InnerStart: i + len(e.delim),
				InnerEnd:   j,
			}, true
		}
	}
	return Match{}, false
}

// canOpen applies simplified GFM flanking rules to an opening delimiter:
// content must start right after it, a single delimiter must not be part of
// a longer run, and underscores never open inside a word.
func canOpen(line string, i int, delim string) bool {
	after := i + len(delim)
	if after >= len(line) || isSpaceByte(line[after]) {
		return false
	}
	if len(delim) == 1 && line[after] == delim[0] {
		return false
	}
	if delim[0] == '_' && i > 0 && isWordBefore(line, i) {
		return false
	}
	return true
}

// findEmphasisClose finds the closing delimiter for content starting at from.
// Code spans inside the content are stepped over as a whole.
func findEmphasisClose(line string, from int, delim string) int {
	for j := from; j < len(line); j++ {
		c := line[j]
		if c == '\\' {
			j++
			continue
		}
		if c == '`' {
			if m, ok, run := matchCodeSpan(line, j); ok {
				j = m.End - 1
			} else {
				j += run - 1
			}
			continue
		}
		if !strings.HasPrefix(line[j:], delim) || j == from {
			continue
		}
		if isSpaceByte(line[j-1]) {
			continue
		}
		end := j + len(delim)
		if len(delim) == 1 && (line[j-1] == delim[0] || (end < len(line) && line[end] == delim[0])) {
			continue
		}
		if delim[0] == '_' && end < len(line) && isWordAfter(line, end) {
			continue
		}
		return j
	}
	return -1
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordBefore(line string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(line[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordAfter(line string, i int) bool {
	r, _ := utf8.DecodeRuneInString(line[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
