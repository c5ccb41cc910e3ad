package pipeline

import "strings"

// IsBalanced reports whether chunk leaves no MarkdownV2 delimiter open.
// The parities of *, _, ~ and | must be even. A backslash escapes the next
// character, so a trailing lone backslash is unbalanced. Code fences and
// inline code must be closed, and their bodies are not inspected. Link
// destinations are not inspected either.
func IsBalanced(chunk string) bool {
	var stars, underscores, tildes, pipes int
	for i := 0; i < len(chunk); i++ {
		switch chunk[i] {
		case '\\':
			if i+1 >= len(chunk) {
				return false
			}
			i++
		case '`':
			delim := "`"
			if strings.HasPrefix(chunk[i:], "```") {
				delim = "```"
			}
			end := indexUnescaped(chunk, i+len(delim), delim)
			if end < 0 {
				return false
			}
			i = end + len(delim) - 1
		case ']':
			if i+1 < len(chunk) && chunk[i+1] == '(' {
				end := indexUnescaped(chunk, i+2, ")")
				if end < 0 {
					return false
				}
				i = end
			}
		case '*':
			stars++
		case '_':
			underscores++
		case '~':
			tildes++
		case '|':
			pipes++
		}
	}
	return stars%2 == 0 && underscores%2 == 0 && tildes%2 == 0 && pipes%2 == 0
}

// indexUnescaped returns the offset of the first occurrence of delim at or
// after from that is not preceded by an escaping backslash, or -1.
func indexUnescaped(s string, from int, delim string) int {
	for j := from; j < len(s); j++ {
		if s[j] == '\\' {
			j++
			continue
		}
		if strings.HasPrefix(s[j:], delim) {
			return j
		}
	}
	return -1
}
