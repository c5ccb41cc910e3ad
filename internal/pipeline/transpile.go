package pipeline

import (
	"strconv"
	"strings"
)

// Default style glyphs.
const (
	DefaultH1Marker    = "🔴 "
	DefaultH2Marker    = "🟠 "
	DefaultChecked     = "✅ "
	DefaultUnchecked   = "⬜ "
	DefaultRule        = "⎯⎯⎯"
	DefaultImageMarker = "🖼 "
	DefaultEmojiScheme = "tg://emoji"
)

// Style holds the glyphs inserted for constructs MarkdownV2 cannot express.
// Glyphs are plain text and are escaped on output.
type Style struct {
	H1Marker    string // prefix of level 1 headings
	H2Marker    string // prefix of level 2 headings
	Checked     string // replaces "- [x]"
	Unchecked   string // replaces "- [ ]"
	Rule        string // replaces a thematic break
	ImageMarker string // prepended to the alt text of image links
	EmojiScheme string // image URLs with this prefix pass through as custom emoji
}

// DefaultStyle returns the default glyph set.
func DefaultStyle() Style {
	return Style{
		H1Marker:    DefaultH1Marker,
		H2Marker:    DefaultH2Marker,
		Checked:     DefaultChecked,
		Unchecked:   DefaultUnchecked,
		Rule:        DefaultRule,
		ImageMarker: DefaultImageMarker,
		EmojiScheme: DefaultEmojiScheme,
	}
}

// dialectDelims maps emphasis kinds to their MarkdownV2 delimiter.
var dialectDelims = map[SpanKind]string{
	SpanBold:          "*",
	SpanItalic:        "_",
	SpanStrikethrough: "~",
	SpanSpoiler:       "||",
}

// Transpiler rewrites GitHub-flavored Markdown into Telegram MarkdownV2.
// A Transpiler is immutable and safe for concurrent use.
type Transpiler struct {
	style  Style
	tables *TableExtractor
}

// NewTranspiler creates a Transpiler using the given glyphs.
func NewTranspiler(style Style) *Transpiler {
	return &Transpiler{style: style, tables: NewTableExtractor()}
}

// Convert transpiles markdown. Constructs are rendered block by block, then
// inline, each into a sealed fragment that later matching cannot see. A
// final pass escapes every remaining reserved character and expands the
// fragments. Unterminated markup is escaped as plain text.
func (t *Transpiler) Convert(markdown string) string {
	if markdown == "" {
		return ""
	}
	d := &document{t: t}
	return d.resolve(d.render(stripPlaceholders(markdown)))
}

// kindSet is a bit set of span kinds already open around some content.
type kindSet uint32

func (s kindSet) has(k SpanKind) bool      { return s&(1<<k) != 0 }
func (s kindSet) with(k SpanKind) kindSet { return s | 1<<k }

// document holds the sealed fragments of one conversion.
type document struct {
	t         *Transpiler
	fragments []string
}

// seal stores a rendered fragment and returns its placeholder.
func (d *document) seal(fragment string) string {
	n := len(d.fragments)
	d.fragments = append(d.fragments, fragment)
	return placeholderOpen + strconv.Itoa(n) + placeholderClose
}

// resolve escapes the text outside placeholders and expands them.
func (d *document) resolve(s string) string {
	escaped := EscapeOutsideSpans(s, sealedSpans(s))
	return rewriteSpans(escaped, sealedSpans(escaped), verbatim, d.expand)
}

func verbatim(s string) string { return s }

func (d *document) expand(_ Span, raw string) string {
	n, err := strconv.Atoi(raw[len(placeholderOpen) : len(raw)-len(placeholderClose)])
	if err != nil || n < 0 || n >= len(d.fragments) {
		return ""
	}
	return d.fragments[n]
}

// sealedSpans locates the placeholders in s.
func sealedSpans(s string) []Span {
	var spans []Span
	for i := 0; i < len(s); {
		k := strings.Index(s[i:], placeholderOpen)
		if k < 0 {
			break
		}
		start := i + k
		end := strings.Index(s[start:], placeholderClose)
		if end < 0 {
			break
		}
		end += start + len(placeholderClose)
		spans = append(spans, Span{Kind: SpanSealed, Start: start, End: end})
		i = end
	}
	return spans
}

// render replaces every block construct of text with a sealed fragment and
// renders the remaining lines inline.
func (d *document) render(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, blk := range Blocks(text) {
		b.WriteString(d.renderLines(text[last:blk.Start]))
		b.WriteString(d.seal(d.renderBlock(blk.Kind, text[blk.Start:blk.End])))
		last = blk.End
		if blk.Kind == SpanHeading && strings.HasPrefix(text[last:], "\n") {
			last++ // the fragment carries its own line break
		}
	}
	b.WriteString(d.renderLines(text[last:]))
	return b.String()
}

// renderLines renders inline markup line by line.
func (d *document) renderLines(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = d.renderInline(line, 0)
	}
	return strings.Join(lines, "\n")
}

// inline renders line and returns final MarkdownV2 text.
func (d *document) inline(line string, active kindSet) string {
	return d.resolve(d.renderInline(line, active))
}

// renderInline seals every inline construct of line. Source backslash
// escapes in the plain parts are removed; the final pass escapes again.
func (d *document) renderInline(line string, active kindSet) string {
	var b strings.Builder
	last := 0
	for {
		m, ok := NextInline(line, last)
		if !ok {
			break
		}
		b.WriteString(Unescape(line[last:m.Start]))
		b.WriteString(d.seal(d.renderMatch(line, m, active)))
		last = m.End
	}
	b.WriteString(Unescape(line[last:]))
	return b.String()
}

func (d *document) renderMatch(line string, m Match, active kindSet) string {
	inner := m.Inner(line)
	style := d.t.style
	switch m.Kind {
	case SpanInlineCode:
		return "`" + EscapeCode(inner) + "`"
	case SpanMath:
		body := SubstituteLatex(strings.TrimSpace(inner))
		if m.Display {
			return fenced(Escape(body))
		}
		return "`" + EscapeCode(body) + "`"
	case SpanImage:
		if style.EmojiScheme != "" && strings.HasPrefix(m.URL, style.EmojiScheme) {
			return "![" + d.inline(inner, active.with(SpanLink)) + "](" + EscapeLinkURL(m.URL) + ")"
		}
		alt := Escape(style.ImageMarker) + d.inline(inner, active.with(SpanLink))
		if active.has(SpanLink) {
			return alt
		}
		return "[" + alt + "](" + EscapeLinkURL(m.URL) + ")"
	case SpanLink:
		text := d.inline(inner, active.with(SpanLink))
		if active.has(SpanLink) {
			return text
		}
		return "[" + text + "](" + EscapeLinkURL(m.URL) + ")"
	default:
		delim := dialectDelims[m.Kind]
		if active.has(m.Kind) {
			return d.inline(inner, active)
		}
		return delim + d.inline(inner, active.with(m.Kind)) + delim
	}
}

// renderBlock renders one block construct to final MarkdownV2 text.
func (d *document) renderBlock(kind SpanKind, raw string) string {
	style := d.t.style
	switch kind {
	case SpanFencedCode:
		return fenced(Escape(innerLines(raw)))
	case SpanMath:
		return fenced(Escape(SubstituteLatex(innerLines(raw))))
	case SpanHeading:
		return d.renderHeading(raw)
	case SpanTable:
		return d.renderTable(raw)
	case SpanQuote:
		content, _ := matchQuote(raw)
		return ">" + d.inline(content, 0)
	case SpanChecklist:
		checked, content, _ := matchChecklist(raw)
		glyph := style.Unchecked
		if checked {
			glyph = style.Checked
		}
		return Escape(glyph) + d.inline(content, 0)
	case SpanRule:
		return Escape(style.Rule)
	default:
		return d.resolve(d.renderLines(raw))
	}
}

// renderHeading collapses the six heading levels into three tiers: a marker
// and bold, bold, and italic.
func (d *document) renderHeading(raw string) string {
	level, content, _ := matchHeading(raw)
	style := d.t.style

	var marker string
	kind := SpanBold
	switch {
	case level == 1:
		marker = Escape(style.H1Marker)
	case level == 2:
		marker = Escape(style.H2Marker)
	case level >= 5:
		kind = SpanItalic
	}
	if content == "" {
		return marker + "\n"
	}
	delim := dialectDelims[kind]
	return marker + delim + d.inline(content, kindSet(0).with(kind)) + delim + "\n"
}

// renderTable flattens a pipe table into a fenced block of " | "-joined
// rows. Tables goldmark rejects are rendered as ordinary lines.
func (d *document) renderTable(raw string) string {
	rows, ok := d.t.tables.Rows(raw)
	if !ok {
		return d.resolve(d.renderLines(raw))
	}
	lines := make([]string, len(rows))
	for i, cells := range rows {
		lines[i] = strings.Join(cells, " | ")
	}
	return fenced(Escape(strings.Join(lines, "\n")))
}

// innerLines drops the first and last line of a delimited block.
func innerLines(raw string) string {
	first := strings.IndexByte(raw, '\n')
	last := strings.LastIndexByte(raw, '\n')
	if first < 0 || first == last {
		return ""
	}
	return raw[first+1 : last]
}

// fenced wraps an already escaped body in a code fence.
func fenced(body string) string {
	if body == "" {
		return "```\n```"
	}
	return "```\n" + body + "\n```"
}
