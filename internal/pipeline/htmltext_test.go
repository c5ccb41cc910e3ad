package pipeline

import "testing"

func TestHTMLText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello", "hello"},
		{"inline tags", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"line break", "one<br>two", "one\ntwo"},
		{"block elements", "<div>first</div><div>second</div>", "first\nsecond"},
		{"list items", "<ul><li>a</li><li>b</li></ul>", "a\nb"},
		{"script dropped", "<script>alert(1)</script>text", "text"},
		{"style dropped", "<style>p{}</style><p>text</p>", "text"},
		{"comment dropped", "<!-- note -->visible", "visible"},
		{"image alt", `<img src="x.png" alt="chart">`, "chart"},
		{"entities decoded", "a &amp; b", "a & b"},
		{"details", "<details><summary>More</summary>Body</details>", "More\nBody"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HTMLText(tt.input); got != tt.want {
				t.Errorf("HTMLText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
