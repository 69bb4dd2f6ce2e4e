// Package signals extracts structural evidence from raw source text: block
// shape, loop nesting, self-recursion and halving patterns. Every function
// here is pure and works line by line without building a syntax tree.
package signals

import (
	"regexp"
	"strings"
)

// textRule is a named pattern. Rules are kept in ordered slices so the
// precedence between them is explicit and each one can be tested alone.
type textRule struct {
	name        string
	description string
	pattern     *regexp.Regexp
}

func (r textRule) matches(s string) bool {
	return r.pattern.MatchString(s)
}

// stripCode blanks out string literal contents and drops comments so that
// braces and keywords inside them do not count as structure.
func stripCode(line string) string {
	code, _ := stripLine(line, false)

	return code
}

// stripLine is stripCode for a line that may start inside a block comment.
// It also reports whether the line ends inside one.
func stripLine(line string, inComment bool) (string, bool) {
	var b strings.Builder

	b.Grow(len(line))

	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]

		if inComment {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				inComment = false
				i++
			}

			continue
		}

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				b.WriteByte(c)

				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c

			b.WriteByte(c)
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return b.String(), false
			}

			if i+1 < len(line) && line[i+1] == '*' {
				inComment = true
				i++

				continue
			}

			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), inComment
}

// splitLines splits text on newlines and drops trailing carriage returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	return lines
}
