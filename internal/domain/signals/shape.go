package signals

import (
	"regexp"
	"strings"
)

// Shape is the block structure convention a snippet follows.
type Shape int

const (
	// ShapeBrace marks C-like snippets whose blocks are delimited by braces.
	ShapeBrace Shape = iota
	// ShapeIndentation marks Python-like snippets whose blocks are delimited by indentation.
	ShapeIndentation
)

func (s Shape) String() string {
	if s == ShapeIndentation {
		return "indentation"
	}

	return "brace"
}

// indentationHeaders are line patterns that only occur in indentation-based
// code. A match counts only when the line carries no brace.
var indentationHeaders = []textRule{
	{
		name:        "def-header",
		description: "function definition ending in a colon",
		pattern:     regexp.MustCompile(`^\s*def\s+[A-Za-z_]\w*\s*\([^{]*\)\s*(?:->\s*[^:{]+)?:`),
	},
	{
		name:        "for-in-header",
		description: "for-in loop header ending in a colon",
		pattern:     regexp.MustCompile(`^\s*for\s+[A-Za-z_]\w*(?:\s*,\s*[A-Za-z_]\w*)*\s+in\s+[^{:]+:(?:[^:]|$)`),
	},
}

// colonBlockHeader matches any colon-terminated block header. It is tried
// after indentationHeaders and, like them, only on lines without braces.
var colonBlockHeader = textRule{
	name:        "colon-block-header",
	description: "colon-terminated block header on a brace-free line",
	pattern:     regexp.MustCompile(`^\s*(?:while|if|elif|else|for|class|try|with)\b[^{]*:\s*(?:#.*)?$`),
}

// DetectShape decides whether text uses indentation-based or brace-based
// blocks. It also returns the name of the rule that decided, or "" when the
// snippet fell back to brace-based. Empty and ambiguous input is brace-based.
// Braces elsewhere in the snippet, such as dict literals, do not veto an
// indentation header.
func DetectShape(text string) (Shape, string) {
	lines := splitLines(text)

	for _, rule := range indentationHeaders {
		if matchesBraceFreeLine(lines, rule) {
			return ShapeIndentation, rule.name
		}
	}

	if matchesBraceFreeLine(lines, colonBlockHeader) {
		return ShapeIndentation, colonBlockHeader.name
	}

	return ShapeBrace, ""
}

func matchesBraceFreeLine(lines []string, rule textRule) bool {
	for _, line := range lines {
		if !strings.ContainsAny(line, "{}") && rule.matches(line) {
			return true
		}
	}

	return false
}

// IsIndentationBased reports whether text should be scanned with the
// indentation tracker.
func IsIndentationBased(text string) bool {
	shape, _ := DetectShape(text)

	return shape == ShapeIndentation
}
