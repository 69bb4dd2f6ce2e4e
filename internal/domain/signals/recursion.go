package signals

import (
	"regexp"
	"strings"
)

// declarationRule captures a function name in its first group. reject, when
// set, discards matches that are statements rather than declarations.
type declarationRule struct {
	name    string
	pattern *regexp.Regexp
	reject  func(match, name string) bool
}

var controlKeywords = map[string]struct{}{
	"if": {}, "else": {}, "for": {}, "while": {}, "switch": {}, "case": {},
	"return": {}, "catch": {}, "sizeof": {}, "new": {}, "do": {}, "throw": {},
}

// statementWords start lines that call a function rather than declare one.
var statementWords = map[string]struct{}{
	"return": {}, "else": {}, "throw": {}, "new": {}, "await": {}, "yield": {},
	"print": {}, "echo": {}, "puts": {}, "go": {}, "defer": {}, "delete": {},
}

func isControlKeyword(_, name string) bool {
	_, ok := controlKeywords[name]

	return ok
}

func isStatement(match, name string) bool {
	if isControlKeyword(match, name) {
		return true
	}

	fields := strings.Fields(match)
	if len(fields) == 0 {
		return false
	}

	if _, ok := controlKeywords[fields[0]]; ok {
		return true
	}

	_, ok := statementWords[fields[0]]

	return ok
}

// declarationRules are tried in order; the first rule with a match anywhere in
// the snippet names the primary function. Keyword-qualified declarations come
// first, then assignments of function expressions, then bare keywords.
var declarationRules = []declarationRule{
	{name: "function-keyword", pattern: regexp.MustCompile(`\bfunction\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)},
	{name: "def-keyword", pattern: regexp.MustCompile(`\bdef\s+([A-Za-z_]\w*)\s*\(`)},
	{name: "func-keyword", pattern: regexp.MustCompile(`\bfunc\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)\s*[\[(]`)},
	{name: "fn-keyword", pattern: regexp.MustCompile(`\b(?:fn|fun)\s+([A-Za-z_]\w*)\s*[<(]`)},
	{
		name:    "access-modifier",
		pattern: regexp.MustCompile(`\b(?:public|private|protected|internal|static)\s+(?:[\w<>\[\],?]+\s+)*?([A-Za-z_]\w*)\s*\(`),
		reject:  isControlKeyword,
	},
	{
		name:    "typed-declaration",
		pattern: regexp.MustCompile(`(?m)^[ \t]*(?:[A-Za-z_][\w:<>,]*[ \t*&]+)+([A-Za-z_]\w*)[ \t]*\([^;{]*\)[ \t]*(?:const[ \t]*)?\{?[ \t]*$`),
		reject:  isStatement,
	},
	{name: "function-expression", pattern: regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?function\b`)},
	{name: "arrow-function", pattern: regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)},
	{name: "lambda", pattern: regexp.MustCompile(`\b([A-Za-z_]\w*)\s*=\s*lambda\b`)},
	{name: "bare-def", pattern: regexp.MustCompile(`\bdef\s+([A-Za-z_]\w*)`)},
	{name: "bare-function", pattern: regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)`)},
}

// CallSites is what the call-site scan learned about a snippet.
type CallSites struct {
	FunctionName       string // empty when no declaration matched
	DeclarationRule    string
	RecursiveCallSites int
}

// Recursive reports whether the function calls itself at least once.
func (p CallSites) Recursive() bool {
	return p.FunctionName != "" && p.RecursiveCallSites >= 1
}

// FindCalls names the snippet's primary function and counts how often the
// function calls itself. Call sites that belong to the declaration itself are
// not counted. A snippet with no recognizable declaration is non-recursive.
func FindCalls(text string) CallSites {
	name, rule, declStart, declEnd := findDeclaration(text)
	if name == "" {
		return CallSites{}
	}

	calls := callPattern(name).FindAllStringIndex(text, -1)

	sites := 0

	for _, call := range calls {
		if call[0] >= declStart && call[0] < declEnd {
			continue
		}

		sites++
	}

	return CallSites{
		FunctionName:       name,
		DeclarationRule:    rule,
		RecursiveCallSites: sites,
	}
}

// FunctionName returns the best-guess name of the snippet's primary function.
func FunctionName(text string) (string, bool) {
	name, _, _, _ := findDeclaration(text)

	return name, name != ""
}

func findDeclaration(text string) (name, rule string, start, end int) {
	for _, r := range declarationRules {
		for _, loc := range r.pattern.FindAllStringSubmatchIndex(text, -1) {
			candidate := text[loc[2]:loc[3]]
			if r.reject != nil && r.reject(text[loc[0]:loc[1]], candidate) {
				continue
			}

			return candidate, r.name, loc[0], loc[1]
		}
	}

	return "", "", 0, 0
}

// callPattern matches "name(" with no retained state. Names made of word
// characters must start on a word boundary so "fib(" does not match "memofib(".
func callPattern(name string) *regexp.Regexp {
	prefix := ""
	if first := name[0]; first == '_' || isASCIIAlnum(first) {
		prefix = `\b`
	}

	return regexp.MustCompile(prefix + regexp.QuoteMeta(name) + `\(`)
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
