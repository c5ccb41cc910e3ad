package pipeline

import "strings"

// lineRange is the byte range of one line, without its newline.
type lineRange struct {
	start int
	end   int
}

func splitLineRanges(text string) []lineRange {
	var lines []lineRange
	start := 0
	for {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return append(lines, lineRange{start, len(text)})
		}
		lines = append(lines, lineRange{start, start + i})
		start += i + 1
	}
}

// Blocks classifies the lines of a source document and returns the spans of
// block constructs in document order. Each span covers whole lines, without
// the trailing newline. Lines outside every span are inline text.
//
// Precedence on a line: fenced code, heading, display math, table, quote,
// checklist item, rule. Unterminated fences and math blocks are not blocks.
func Blocks(text string) []Span {
	lines := splitLineRanges(text)
	lineAt := func(i int) string { return text[lines[i].start:lines[i].end] }

	var spans []Span
	for i := 0; i < len(lines); {
		line := lineAt(i)
		block := func(kind SpanKind, last int) {
			spans = append(spans, Span{Kind: kind, Start: lines[i].start, End: lines[last].end})
			i = last + 1
		}

		if fence, ok := matchFence(line); ok {
			if j := findLine(lines, i+1, lineAt, func(l string) bool { return isFenceClose(l, fence) }); j >= 0 {
				block(SpanFencedCode, j)
				continue
			}
		}
		if _, _, ok := matchHeading(line); ok {
			block(SpanHeading, i)
			continue
		}
		if isMathOpen(line) {
			if j := findLine(lines, i+1, lineAt, isMathClose); j >= 0 {
				block(SpanMath, j)
				continue
			}
		}
		if n := tableRows(lines, i, lineAt); n > 0 {
			block(SpanTable, i+n-1)
			continue
		}
		if _, ok := matchQuote(line); ok {
			block(SpanQuote, i)
			continue
		}
		if _, _, ok := matchChecklist(line); ok {
			block(SpanChecklist, i)
			continue
		}
		if matchRule(line) {
			block(SpanRule, i)
			continue
		}
		i++
	}
	return spans
}

func findLine(lines []lineRange, from int, lineAt func(int) string, pred func(string) bool) int {
	for j := from; j < len(lines); j++ {
		if pred(lineAt(j)) {
			return j
		}
	}
	return -1
}

// trimIndent strips up to three leading spaces.
func trimIndent(line string) string {
	for n := 0; n < 3 && strings.HasPrefix(line, " "); n++ {
		line = line[1:]
	}
	return line
}

// matchFence recognizes an opening code fence (``` or ~~~, any length >= 3)
// and returns the fence run. The info string after it is ignored.
func matchFence(line string) (string, bool) {
	line = trimIndent(line)
	if len(line) < 3 || (line[0] != '`' && line[0] != '~') {
		return "", false
	}
	n := 0
	for n < len(line) && line[n] == line[0] {
		n++
	}
	if n < 3 {
		return "", false
	}
	if line[0] == '`' && strings.IndexByte(line[n:], '`') >= 0 {
		return "", false
	}
	return line[:n], true
}

// isFenceClose reports whether line closes a block opened with fence.
func isFenceClose(line, fence string) bool {
	line = strings.TrimRight(trimIndent(line), " \t")
	if len(line) < len(fence) {
		return false
	}
	return strings.Trim(line, fence[:1]) == ""
}

// matchHeading recognizes an ATX heading and returns its level and content,
// with the optional closing run of #'s removed.
func matchHeading(line string) (level int, content string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(line) || !isSpaceByte(line[level]) {
		return 0, "", false
	}
	content = strings.TrimSpace(line[level:])
	if trimmed := strings.TrimRight(content, "#"); trimmed == "" {
		content = ""
	} else if trimmed != content && isSpaceByte(trimmed[len(trimmed)-1]) {
		content = strings.TrimSpace(trimmed)
	}
	return level, content, true
}

func isMathOpen(line string) bool {
	return strings.TrimSpace(line) == `\[`
}

func isMathClose(line string) bool {
	return strings.TrimSpace(line) == `\]`
}

// matchQuote recognizes a block quote line and returns its content.
func matchQuote(line string) (string, bool) {
	if !strings.HasPrefix(line, ">") {
		return "", false
	}
	return strings.TrimLeft(line[1:], " \t"), true
}

// matchChecklist recognizes a task list item: a list marker, [x] or [ ],
// whitespace, then the item text.
func matchChecklist(line string) (checked bool, content string, ok bool) {
	line = strings.TrimLeft(line, " \t")
	if len(line) < 2 || strings.IndexByte("-*+", line[0]) < 0 || !isSpaceByte(line[1]) {
		return false, "", false
	}
	line = strings.TrimLeft(line[1:], " \t")
	if len(line) < 4 || line[0] != '[' || line[2] != ']' || !isSpaceByte(line[3]) {
		return false, "", false
	}
	switch line[1] {
	case 'x', 'X':
		checked = true
	case ' ':
	default:
		return false, "", false
	}
	return checked, strings.TrimSpace(line[3:]), true
}

// matchRule recognizes a thematic break: three or more of -, * or _.
func matchRule(line string) bool {
	line = strings.TrimRight(line, " \t")
	if len(line) < 3 || strings.IndexByte("-*_", line[0]) < 0 {
		return false
	}
	return strings.Trim(line, line[:1]) == ""
}

// isTableRow reports whether line is a pipe-delimited table row.
func isTableRow(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= 2 && line[0] == '|' && line[len(line)-1] == '|' && line[len(line)-2] != '\\'
}

// isTableSeparator reports whether line is a header separator row such as
// |---|:---:|.
func isTableSeparator(line string) bool {
	if !isTableRow(line) || !strings.Contains(line, "-") {
		return false
	}
	return strings.Trim(strings.TrimSpace(line), "|-: \t") == ""
}

// tableRows returns the number of lines forming a well-formed table that
// starts at line i: header, separator, and at least one body row.
func tableRows(lines []lineRange, i int, lineAt func(int) string) int {
	if i+2 >= len(lines) || !isTableRow(lineAt(i)) || !isTableSeparator(lineAt(i+1)) || !isTableRow(lineAt(i+2)) {
		return 0
	}
	n := 3
	for i+n < len(lines) && isTableRow(lineAt(i+n)) {
		n++
	}
	return n
}
