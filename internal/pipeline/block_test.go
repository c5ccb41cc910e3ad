package pipeline

import (
	"reflect"
	"testing"
)

func TestBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Span
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "plain text",
			input:    "just\ntext",
			expected: nil,
		},
		{
			name:  "every block kind",
			input: "# T\n```go\nx\n```\n> q\n- [x] done\n---\n|a|b|\n|-|-|\n|1|2|\nplain",
			expected: []Span{
				{SpanHeading, 0, 3},
				{SpanFencedCode, 4, 15},
				{SpanQuote, 16, 19},
				{SpanChecklist, 20, 30},
				{SpanRule, 31, 34},
				{SpanTable, 35, 52},
			},
		},
		{
			name:     "unterminated fence",
			input:    "```\ncode",
			expected: nil,
		},
		{
			name:     "heading inside fence",
			input:    "```\n# no\n```",
			expected: []Span{{SpanFencedCode, 0, 12}},
		},
		{
			name:     "display math block",
			input:    "\\[\nx\n\\]",
			expected: []Span{{SpanMath, 0, 7}},
		},
		{
			name:     "table without body row",
			input:    "|a|b|\n|-|-|",
			expected: nil,
		},
		{
			name:     "longer fence closes only with same character",
			input:    "~~~~\n```\n~~~~",
			expected: []Span{{SpanFencedCode, 0, 13}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Blocks(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Blocks(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMatchHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input       string
		wantLevel   int
		wantContent string
		wantOK      bool
	}{
		{"# Title", 1, "Title", true},
		{"## Title ##", 2, "Title", true},
		{"###### Six", 6, "Six", true},
		{"# C#", 1, "C#", true},
		{"# ", 1, "", true},
		{"#NoSpace", 0, "", false},
		{"####### seven", 0, "", false},
		{"text", 0, "", false},
	}

	for _, tt := range tests {
		level, content, ok := matchHeading(tt.input)
		if level != tt.wantLevel || content != tt.wantContent || ok != tt.wantOK {
			t.Errorf("matchHeading(%q) = (%d, %q, %v), want (%d, %q, %v)",
				tt.input, level, content, ok, tt.wantLevel, tt.wantContent, tt.wantOK)
		}
	}
}

func TestMatchChecklist(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input       string
		wantChecked bool
		wantContent string
		wantOK      bool
	}{
		{"- [x] done", true, "done", true},
		{"- [X] done", true, "done", true},
		{"* [ ] todo", false, "todo", true},
		{"  + [ ] nested", false, "nested", true},
		{"- [y] other", false, "", false},
		{"-[x] tight", false, "", false},
		{"- item", false, "", false},
	}

	for _, tt := range tests {
		checked, content, ok := matchChecklist(tt.input)
		if checked != tt.wantChecked || content != tt.wantContent || ok != tt.wantOK {
			t.Errorf("matchChecklist(%q) = (%v, %q, %v), want (%v, %q, %v)",
				tt.input, checked, content, ok, tt.wantChecked, tt.wantContent, tt.wantOK)
		}
	}
}

func TestMatchRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"---", true},
		{"***", true},
		{"_____  ", true},
		{"--", false},
		{"- - -", false},
		{"-*-", false},
	}

	for _, tt := range tests {
		if got := matchRule(tt.input); got != tt.want {
			t.Errorf("matchRule(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsTableSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"|---|---|", true},
		{"| :-- | --: |", true},
		{"|:-:|", true},
		{"| a |", false},
		{"|   |", false},
		{"---", false},
	}

	for _, tt := range tests {
		if got := isTableSeparator(tt.input); got != tt.want {
			t.Errorf("isTableSeparator(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
