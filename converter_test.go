package md2tg

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "", expected: ""},
		{name: "bold", input: "**hi**", expected: "*hi*"},
		{name: "heading", input: "# Title", expected: "🔴 *Title*\n"},
		{name: "code keeps pipe", input: "Use `a|b` or c|d", expected: "Use `a|b` or c\\|d"},
		{name: "unterminated", input: "*unterminated", expected: `\*unterminated`},
		{name: "CRLF normalized", input: "**a**\r\n**b**", expected: "*a*\n*b*"},
		{name: "blank lines compressed", input: "a\n\n\n\nb", expected: "a\n\nb"},
		{name: "fenced blank lines kept", input: "```go\na()\n\n\n\nb()\n```", expected: "```\na\\(\\)\n\n\n\nb\\(\\)\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Convert(tt.input); got != tt.expected {
				t.Errorf("Convert(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("invalid max length", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{0, -5} {
			if _, err := Split("x", n); !errors.Is(err, ErrInvalidMaxLength) {
				t.Errorf("Split(_, %d) error = %v, want %v", n, err, ErrInvalidMaxLength)
			}
		}
	})

	t.Run("9000 characters split into 3 chunks at word boundaries", func(t *testing.T) {
		t.Parallel()

		text := Convert(strings.Repeat("lorem ", 1500))
		chunks, err := Split(text, 4096)
		if err != nil {
			t.Fatalf("Split() error = %v", err)
		}
		if len(chunks) != 3 {
			t.Fatalf("Split() returned %d chunks, want 3", len(chunks))
		}
		for i, c := range chunks {
			if len([]rune(c)) > 4096 {
				t.Errorf("chunk %d exceeds 4096", i)
			}
			if !IsBalanced(c) {
				t.Errorf("chunk %d is not balanced", i)
			}
			if i < len(chunks)-1 && !strings.HasSuffix(c, " ") {
				t.Errorf("chunk %d does not end at a word boundary", i)
			}
		}
		if strings.Join(chunks, "") != text {
			t.Error("joined chunks differ from input")
		}
	})
}

func TestNewConverter_Defaults(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if conv.MaxLength() != DefaultMaxLength {
		t.Errorf("MaxLength() = %d, want %d", conv.MaxLength(), DefaultMaxLength)
	}
	if conv.LengthUnit() != LengthRunes {
		t.Errorf("LengthUnit() = %v, want %v", conv.LengthUnit(), LengthRunes)
	}
}

func TestNewConverter_InvalidStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style Style
	}{
		{name: "glyph too long", style: Style{Rule: strings.Repeat("=", MaxGlyphLength+1)}},
		{name: "glyph with line break", style: Style{H1Marker: "a\nb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(WithStyle(tt.style))
			if !errors.Is(err, ErrInvalidStyle) {
				t.Errorf("NewConverter() error = %v, want %v", err, ErrInvalidStyle)
			}
		})
	}
}

func TestOptions_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{name: "WithMaxLength zero", fn: func() { WithMaxLength(0) }},
		{name: "WithMaxInputSize negative", fn: func() { WithMaxInputSize(-1) }},
		{name: "WithLengthUnit unknown", fn: func() { WithLengthUnit(LengthUnit(7)) }},
		{name: "WithThrottle negative", fn: func() { WithThrottle(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestConverter_Convert_MaxInputSize(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithMaxInputSize(5))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if got := conv.Convert("abcdefgh"); got != "abcde" {
		t.Errorf("Convert() = %q, want %q", got, "abcde")
	}
}

func TestConverter_Convert_PartialStyle(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithStyle(Style{H1Marker: "▶ "}))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	got := conv.Convert("# A\n## B")
	want := "▶ *A*\n🟠 *B*\n"
	if got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}
}

func TestConverter_Render(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithMaxLength(20))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	chunks, err := conv.Render(strings.Repeat("**word** ", 10))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("Render() returned %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 20 {
			t.Errorf("chunk %d = %q exceeds 20", i, c)
		}
		if !IsBalanced(c) {
			t.Errorf("chunk %d = %q is not balanced", i, c)
		}
	}
}

func TestConverter_Render_UTF16(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithMaxLength(4), WithLengthUnit(LengthUTF16))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	chunks, err := conv.Render("😀😀😀")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("Render() = %q, want 2 chunks", chunks)
	}
}

func TestConverter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	input := "# T\n\n- [x] a\n\n| a | b |\n|---|---|\n| 1 | 2 |"
	want := conv.Convert(input)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := conv.Convert(input); got != want {
				t.Errorf("concurrent Convert() = %q, want %q", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	got := PlainText("## Steps\n\n1. **mix**\n2. bake")
	want := "Steps\n\n1. mix\n2. bake"
	if got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestEscapeOutsideMarkup(t *testing.T) {
	t.Parallel()

	got := EscapeOutsideMarkup("Total: *3.5* kg (net)")
	want := "Total: *3.5* kg \\(net\\)"
	if got != want {
		t.Errorf("EscapeOutsideMarkup() = %q, want %q", got, want)
	}
}

func TestConverter_PlainChunks(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithMaxLength(12))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	got := conv.PlainChunks("**bold** and _more_ words")
	want := []string{"bold and ", "more words"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlainChunks() = %q, want %q", got, want)
	}
}
