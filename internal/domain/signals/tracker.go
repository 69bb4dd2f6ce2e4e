package signals

import (
	"regexp"
	"strings"
)

// NestingTracker consumes a snippet line by line and keeps track of how many
// loop blocks enclose the current line.
type NestingTracker interface {
	// FeedLine advances the tracker by one source line.
	FeedLine(line string)
	// CurrentDepth is the number of loop blocks open after the last line.
	CurrentDepth() int
	// MaxDepthSeen is the deepest loop nesting observed so far.
	MaxDepthSeen() int
	// LoopCount is the number of loop headers seen so far.
	LoopCount() int
}

// NewNestingTracker returns the tracker matching shape.
func NewNestingTracker(shape Shape) NestingTracker {
	if shape == ShapeIndentation {
		return NewIndentationTracker()
	}

	return NewBraceTracker()
}

// braceLoopHeaders are tried in order against each header candidate; the
// first rule matching at the candidate's start names the header.
var braceLoopHeaders = []textRule{
	{name: "c-for", pattern: regexp.MustCompile(`\bfor\s*\(`)},
	{name: "foreach", pattern: regexp.MustCompile(`\bforeach\s*\(`)},
	{name: "for-in", pattern: regexp.MustCompile(`\bfor\s+[A-Za-z_$][\w$]*\s+in\b`)},
	{name: "for-of", pattern: regexp.MustCompile(`\bfor\s+(?:const\s+|let\s+|var\s+)?[A-Za-z_$][\w$]*\s+of\b`)},
	{name: "block-for", pattern: regexp.MustCompile(`^\s*for\b.*\{\s*$`)},
	{name: "while", pattern: regexp.MustCompile(`\bwhile\s*\(`)},
	{name: "while-in", pattern: regexp.MustCompile(`\bwhile\s+[A-Za-z_$][\w$]*\s+in\b`)},
	{name: "block-while", pattern: regexp.MustCompile(`^\s*while\b.*\{\s*$`)},
	{name: "do-block", pattern: regexp.MustCompile(`\bdo\s*\{`)},
	{name: "loop-block", pattern: regexp.MustCompile(`^\s*loop\s*\{`)},
}

// headerMatch is one loop header found in a stripped line.
type headerMatch struct {
	offset int
	rule   string
}

// findBraceLoopHeaders returns every loop header in a stripped line, in
// order. Each candidate is matched from a word start up to and including the
// next opening brace, so "for (...) { for (...) {" yields two headers. A
// "while" right after a closing brace is a do-while tail and is skipped.
func findBraceLoopHeaders(code string) []headerMatch {
	var found []headerMatch

	for i := 0; i < len(code); i++ {
		if !isHeaderStart(code, i) {
			continue
		}

		segment := code[i:]
		if brace := strings.IndexByte(segment, '{'); brace >= 0 {
			segment = segment[:brace+1]
		}

		if strings.HasPrefix(segment, "while") && strings.HasSuffix(strings.TrimSpace(code[:i]), "}") {
			continue
		}

		for _, rule := range braceLoopHeaders {
			if loc := rule.pattern.FindStringIndex(segment); loc != nil && loc[0] == 0 {
				found = append(found, headerMatch{offset: i, rule: rule.name})

				break
			}
		}
	}

	return found
}

// isHeaderStart reports whether a keyword can start at code[i]: a letter
// that does not continue an identifier or follow a member access.
func isHeaderStart(code string, i int) bool {
	c := code[i]
	if !('a' <= c && c <= 'z') {
		return false
	}

	if i == 0 {
		return true
	}

	prev := code[i-1]

	return !isASCIIAlnum(prev) && prev != '_' && prev != '$' && prev != '.'
}

// MatchBraceLoopHeader returns the name of the rule matching the first loop
// header in line, or "" when line holds no loop header.
func MatchBraceLoopHeader(line string) string {
	headers := findBraceLoopHeaders(line)
	if len(headers) == 0 {
		return ""
	}

	return headers[0].rule
}

type braceLoop struct {
	level int  // brace depth at the loop header
	bound bool // the loop's body brace has been opened
}

// BraceTracker follows loop nesting in brace-delimited code. Loops are found
// by keyword; each open loop remembers the brace depth of its header, binds
// to the next brace opened one level deeper, and ends when that brace
// closes. A loop whose body never opens a brace ends after its single
// statement.
type BraceTracker struct {
	braceDepth int
	open       []braceLoop
	maxDepth   int
	loops      int
	inComment  bool // inside a block comment carried over from an earlier line
}

// NewBraceTracker creates an empty BraceTracker.
func NewBraceTracker() *BraceTracker {
	return &BraceTracker{}
}

// FeedLine advances the tracker by one line. Loop headers and braces are
// applied in the order they appear on the line.
func (t *BraceTracker) FeedLine(line string) {
	code, inComment := stripLine(line, t.inComment)
	t.inComment = inComment

	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return
	}

	headers := findBraceLoopHeaders(code)
	bodyStatement := len(headers) == 0 && t.topUnbound() && !strings.HasPrefix(trimmed, "{")

	next := 0

	for i := 0; i < len(code); i++ {
		if next < len(headers) && headers[next].offset == i {
			t.loops++
			t.open = append(t.open, braceLoop{level: t.braceDepth})
			t.maxDepth = max(t.maxDepth, len(t.open))
			next++
		}

		switch code[i] {
		case '{':
			t.braceDepth++
			t.bindTop()
		case '}':
			t.closeBrace()
		}
	}

	if len(headers) > 0 && t.topUnbound() && strings.HasSuffix(trimmed, ";") {
		t.dropUnbound()
	}

	if bodyStatement {
		t.dropUnbound()
	}
}

// CurrentDepth returns the number of loops currently open.
func (t *BraceTracker) CurrentDepth() int {
	return len(t.open)
}

// MaxDepthSeen returns the deepest loop nesting observed.
func (t *BraceTracker) MaxDepthSeen() int {
	return t.maxDepth
}

// LoopCount returns the number of loop headers seen.
func (t *BraceTracker) LoopCount() int {
	return t.loops
}

func (t *BraceTracker) topUnbound() bool {
	return len(t.open) > 0 && !t.open[len(t.open)-1].bound
}

func (t *BraceTracker) bindTop() {
	if !t.topUnbound() {
		return
	}

	top := &t.open[len(t.open)-1]
	if top.level == t.braceDepth-1 {
		top.bound = true
	}
}

func (t *BraceTracker) closeBrace() {
	// unbalanced closers are clamped so partial snippets keep working
	t.braceDepth = max(t.braceDepth-1, 0)

	closed := false

	for len(t.open) > 0 {
		top := t.open[len(t.open)-1]
		if !top.bound || top.level < t.braceDepth {
			break
		}

		t.open = t.open[:len(t.open)-1]
		closed = true
	}

	// a braced loop that was the single-statement body of an unbraced one
	// ends that one too
	if closed {
		for t.topUnbound() && t.open[len(t.open)-1].level >= t.braceDepth {
			t.open = t.open[:len(t.open)-1]
		}
	}
}

func (t *BraceTracker) dropUnbound() {
	for t.topUnbound() {
		t.open = t.open[:len(t.open)-1]
	}
}

// IndentationTracker follows loop nesting in indentation-delimited code with
// a stack of the header indentation of every open loop. A block ends as soon
// as a later line is indented at or left of its header.
type IndentationTracker struct {
	stack    []int
	maxDepth int
	loops    int
}

// NewIndentationTracker creates an empty IndentationTracker.
func NewIndentationTracker() *IndentationTracker {
	return &IndentationTracker{}
}

// FeedLine advances the tracker by one line.
func (t *IndentationTracker) FeedLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	indent := indentWidth(line)

	for len(t.stack) > 0 && t.stack[len(t.stack)-1] >= indent {
		t.stack = t.stack[:len(t.stack)-1]
	}

	for i := range inlineLoopHeaders(trimmed) {
		t.loops++
		t.stack = append(t.stack, indent+i)
		t.maxDepth = max(t.maxDepth, len(t.stack))
	}
}

// CurrentDepth returns the number of loops currently open.
func (t *IndentationTracker) CurrentDepth() int {
	return len(t.stack)
}

// MaxDepthSeen returns the deepest loop nesting observed.
func (t *IndentationTracker) MaxDepthSeen() int {
	return t.maxDepth
}

// LoopCount returns the number of loop headers seen.
func (t *IndentationTracker) LoopCount() int {
	return t.loops
}

const tabWidth = 8

// indentWidth measures leading whitespace, expanding tabs to the next
// multiple of eight columns.
func indentWidth(line string) int {
	width := 0

	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width
		}
	}

	return width
}

func isIndentedLoopHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, "for ") || strings.HasPrefix(trimmed, "while ")
}

// inlineLoopHeaders returns the chain of loop headers that start a trimmed
// line. A one-line suite such as "for i in a: for j in b: f(i, j)" yields two
// headers; a line that is not a loop header yields none.
func inlineLoopHeaders(trimmed string) []string {
	var headers []string

	rest := trimmed
	for isIndentedLoopHeader(rest) {
		colon := headerColon(rest)
		if colon < 0 {
			headers = append(headers, rest)

			break
		}

		headers = append(headers, rest[:colon+1])
		rest = strings.TrimSpace(rest[colon+1:])
	}

	return headers
}

// headerColon finds the colon that ends a block header: the first colon
// outside brackets and string literals that is not part of ":=".
func headerColon(s string) int {
	depth := 0

	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth = max(depth-1, 0)
		case '#':
			return -1
		case ':':
			if depth == 0 && (i+1 >= len(s) || s[i+1] != '=') {
				return i
			}
		}
	}

	return -1
}
