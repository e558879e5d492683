package jv

import "strings"

// Minify drops the whitespace (space, tab, newline, carriage return) that
// sits outside string literals. Everything else, including the contents of
// strings and their escape sequences, is copied unchanged. The input is not
// validated.
func Minify(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inString:
			sb.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
			sb.WriteByte(c)
		case c == ' ', c == '\t', c == '\n', c == '\r':
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
