package pipeline

import (
	"strings"
	"testing"
)

func TestTranspiler_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "plain text escaped", input: "Price: 5.00 (USD)!", expected: `Price: 5\.00 \(USD\)\!`},
		{name: "double asterisk bold", input: "**hi**", expected: "*hi*"},
		{name: "double underscore bold", input: "__hi__", expected: "*hi*"},
		{name: "single asterisk italic", input: "*it*", expected: "_it_"},
		{name: "strikethrough", input: "~~gone~~", expected: "~gone~"},
		{name: "spoiler", input: "||secret||", expected: "||secret||"},
		{name: "italic inside bold", input: "**bold _it_**", expected: "*bold _it_*"},
		{name: "unterminated bold", input: "*unterminated", expected: `\*unterminated`},
		{name: "intraword underscores", input: "snake_case_name", expected: `snake\_case\_name`},
		{name: "source escapes", input: `2 \* 3 = 6`, expected: `2 \* 3 \= 6`},
		{name: "inline code keeps pipes", input: "Use `a|b` or c|d", expected: "Use `a|b` or c\\|d"},
		{name: "inline code backslash", input: "`a\\b`", expected: "`a\\\\b`"},
		{name: "heading level 1", input: "# Title", expected: "🔴 *Title*\n"},
		{name: "heading level 2", input: "## Sub", expected: "🟠 *Sub*\n"},
		{name: "heading level 3", input: "### Three", expected: "*Three*\n"},
		{name: "heading level 6", input: "###### Six", expected: "_Six_\n"},
		{name: "heading line break reused", input: "# Title\nText.", expected: "🔴 *Title*\nText\\."},
		{name: "bold not nested in heading", input: "# **Big** deal", expected: "🔴 *Big deal*\n"},
		{name: "link", input: "[a.b](http://x.y/(z))", expected: `[a\.b](http://x.y/(z\))`},
		{name: "link text markup", input: "[**go**](http://go.dev)", expected: "[*go*](http://go.dev)"},
		{name: "image becomes link", input: "![cat](http://i/c.png)", expected: "[🖼 cat](http://i/c.png)"},
		{name: "custom emoji kept", input: "![👍](tg://emoji?id=5368324170671202286)", expected: "![👍](tg://emoji?id=5368324170671202286)"},
		{name: "quote", input: "> note!", expected: `>note\!`},
		{name: "checklist", input: "- [x] done\n- [ ] todo", expected: "✅ done\n⬜ todo"},
		{name: "rule", input: "a\n---\nb", expected: "a\n⎯⎯⎯\nb"},
		{name: "fenced code", input: "```python\nprint(\"hi\")\n```", expected: "```\nprint\\(\"hi\"\\)\n```"},
		{name: "empty fenced code", input: "```\n```", expected: "```\n```"},
		{name: "unterminated fence", input: "```\nx", expected: "\\`\\`\\`\nx"},
		{name: "inline math", input: `\(\alpha + \beta\)`, expected: "`α + β`"},
		{name: "display math block", input: "\\[\n\\sum x\n\\]", expected: "```\n∑ x\n```"},
		{name: "unknown macro kept", input: `\(\frac{a}{b}\)`, expected: "`\\\\frac{a}{b}`"},
		{name: "table", input: "| a | b |\n|---|---|\n| 1 | 2.5 |", expected: "```\na \\| b\n1 \\| 2\\.5\n```"},
		{name: "malformed table", input: "| a | b |\n|---|\n| 1 | 2 |", expected: "\\| a \\| b \\|\n\\|\\-\\-\\-\\|\n\\| 1 \\| 2 \\|"},
		{name: "placeholder code points stripped", input: "a\uE000b\uE001c", expected: "abc"},
	}

	tr := NewTranspiler(DefaultStyle())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tr.Convert(tt.input)
			if got != tt.expected {
				t.Errorf("Convert(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTranspiler_Convert_CustomStyle(t *testing.T) {
	t.Parallel()

	style := DefaultStyle()
	style.H1Marker = "# "
	style.Rule = "-----"
	tr := NewTranspiler(style)

	got := tr.Convert("# Title\n---")
	want := "\\# *Title*\n\\-\\-\\-\\-\\-"
	if got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}
}

func TestTranspiler_Convert_OutputIsBalanced(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"**bold** and *it* and ~~s~~ and ||sp||",
		"# Heading with `code|x`\n\n> quote *it*\n- [ ] task",
		"[link_with_underscores](http://e.com/a_b) end_",
		"| h1 | h2 |\n|----|----|\n| *a* | `b` |",
		"*open **nested* close**",
		"```\nunbalanced * _ ~ |\n```\ntext_",
		"\\(x_1\\) and \\[y_2\\] and $z_3$",
		"![alt_*](http://img/x_y.png) ~~a *b* c~~",
	}

	tr := NewTranspiler(DefaultStyle())
	for _, input := range inputs {
		got := tr.Convert(input)
		if !IsBalanced(got) {
			t.Errorf("Convert(%q) = %q is not balanced", input, got)
		}
		if strings.ContainsAny(got, placeholderOpen+placeholderClose) {
			t.Errorf("Convert(%q) = %q leaks a placeholder", input, got)
		}
	}
}

func TestTranspiler_ConcurrentUse(t *testing.T) {
	t.Parallel()

	tr := NewTranspiler(DefaultStyle())
	want := tr.Convert("# T\n**b** `c`")

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- tr.Convert("# T\n**b** `c`") }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Errorf("concurrent Convert() = %q, want %q", got, want)
		}
	}
}
