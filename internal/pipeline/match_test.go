package pipeline

import "testing"

func TestNextInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantKind  SpanKind
		wantStart int
		wantEnd   int
		wantInner string
		wantURL   string
	}{
		{name: "double asterisk bold", input: "**hi**", wantOK: true, wantKind: SpanBold, wantStart: 0, wantEnd: 6, wantInner: "hi"},
		{name: "double underscore bold", input: "__hi__", wantOK: true, wantKind: SpanBold, wantStart: 0, wantEnd: 6, wantInner: "hi"},
		{name: "single asterisk italic", input: "a *it* b", wantOK: true, wantKind: SpanItalic, wantStart: 2, wantEnd: 6, wantInner: "it"},
		{name: "strikethrough", input: "~~x~~", wantOK: true, wantKind: SpanStrikethrough, wantStart: 0, wantEnd: 5, wantInner: "x"},
		{name: "spoiler", input: "||s||", wantOK: true, wantKind: SpanSpoiler, wantStart: 0, wantEnd: 5, wantInner: "s"},
		{name: "code comes first", input: "a `c*d` *e*", wantOK: true, wantKind: SpanInlineCode, wantStart: 2, wantEnd: 7, wantInner: "c*d"},
		{name: "image", input: "![alt](u)", wantOK: true, wantKind: SpanImage, wantStart: 0, wantEnd: 9, wantInner: "alt", wantURL: "u"},
		{name: "link title dropped", input: `[t](http://a.b/c "title")`, wantOK: true, wantKind: SpanLink, wantStart: 0, wantEnd: 25, wantInner: "t", wantURL: "http://a.b/c"},
		{name: "link with parentheses in URL", input: "[w](http://x/a_(b))", wantOK: true, wantKind: SpanLink, wantStart: 0, wantEnd: 19, wantInner: "w", wantURL: "http://x/a_(b)"},
		{name: "inline math", input: `\(x^2\)`, wantOK: true, wantKind: SpanMath, wantStart: 0, wantEnd: 7, wantInner: "x^2"},
		{name: "intraword underscore", input: "snake_case_name", wantOK: false},
		{name: "spaced asterisks", input: "2 * 3 * 4", wantOK: false},
		{name: "escaped delimiter", input: `\*a*`, wantOK: false},
		{name: "unterminated", input: "*unterminated", wantOK: false},
		{name: "unterminated code", input: "``a`", wantOK: false},
		{name: "empty link text", input: "[](u)", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, ok := NextInline(tt.input, 0)
			if ok != tt.wantOK {
				t.Fatalf("NextInline(%q) ok = %v, want %v (match %+v)", tt.input, ok, tt.wantOK, m)
			}
			if !ok {
				return
			}
			if m.Kind != tt.wantKind || m.Start != tt.wantStart || m.End != tt.wantEnd {
				t.Errorf("NextInline(%q) = %v [%d,%d), want %v [%d,%d)",
					tt.input, m.Kind, m.Start, m.End, tt.wantKind, tt.wantStart, tt.wantEnd)
			}
			if got := m.Inner(tt.input); got != tt.wantInner {
				t.Errorf("Inner() = %q, want %q", got, tt.wantInner)
			}
			if m.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", m.URL, tt.wantURL)
			}
		})
	}
}

func TestNextInline_DisplayMath(t *testing.T) {
	t.Parallel()

	m, ok := NextInline(`see \[a+b\] here`, 0)
	if !ok || m.Kind != SpanMath || !m.Display {
		t.Fatalf("NextInline() = %+v, %v; want display math", m, ok)
	}
}

func TestNextInline_From(t *testing.T) {
	t.Parallel()

	line := "*a* and *b*"
	m, ok := NextInline(line, 3)
	if !ok || m.Start != 8 {
		t.Errorf("NextInline(%q, 3) = %+v, %v; want match at 8", line, m, ok)
	}
}
