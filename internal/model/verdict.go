// Package model defines the data structures for complexity classification.
package model

// Notation is a Big-O time-complexity class.
type Notation string

const (
	// Constant is O(1).
	Constant Notation = "O(1)"
	// Logarithmic is O(log n).
	Logarithmic Notation = "O(log n)"
	// Linear is O(n).
	Linear Notation = "O(n)"
	// Linearithmic is O(n log n).
	Linearithmic Notation = "O(n log n)"
	// Quadratic is O(n²).
	Quadratic Notation = "O(n²)"
	// Cubic is O(n³).
	Cubic Notation = "O(n³)"
	// Exponential is O(2ⁿ).
	Exponential Notation = "O(2ⁿ)"
)

// Notations lists every notation a verdict may carry, cheapest first.
var Notations = []Notation{
	Constant,
	Logarithmic,
	Linear,
	Linearithmic,
	Quadratic,
	Cubic,
	Exponential,
}

// ParseNotation matches s against the fixed enumeration. ASCII spellings such
// as "O(n^2)" and "O(2^n)" are accepted as aliases.
func ParseNotation(s string) (Notation, bool) {
	for _, n := range Notations {
		if string(n) == s {
			return n, true
		}
	}

	alias, ok := notationAliases[s]

	return alias, ok
}

var notationAliases = map[string]Notation{
	"O(logn)":     Logarithmic,
	"O(nlogn)":    Linearithmic,
	"O(n log(n))": Linearithmic,
	"O(n^2)":      Quadratic,
	"O(n*n)":      Quadratic,
	"O(n^3)":      Cubic,
	"O(2^n)":      Exponential,
}

// Engine identifies what produced a verdict.
type Engine string

const (
	// EngineHeuristic marks verdicts inferred by the offline classifier.
	EngineHeuristic Engine = "heuristic"
	// EngineCatalog marks verdicts taken verbatim from the known-snippet catalog.
	EngineCatalog Engine = "catalog"
	// EngineLLM marks verdicts returned by the language-model path.
	EngineLLM Engine = "llm"
)

// Verdict is the classification result for one snippet.
type Verdict struct {
	Notation    Notation `json:"notation" yaml:"notation"`
	Explanation string   `json:"explanation" yaml:"explanation"`
	Steps       []string `json:"steps" yaml:"steps"`
	Engine      Engine   `json:"engine,omitempty" yaml:"engine,omitempty"`
	Disclaimer  string   `json:"disclaimer,omitempty" yaml:"disclaimer,omitempty"`
}

// ScanSignals is the structural summary the classifier decides on.
type ScanSignals struct {
	LoopCount          int
	MaxNesting         int
	IsIndentationBased bool
	FunctionName       string // empty when no declaration matched
	RecursiveCallSites int
	HasDivideByTwo     bool
	HalvingPatterns    []string // names of the halving rules that fired
	HasMergeHint       bool
}

// IsRecursive reports whether the primary function calls itself.
func (s ScanSignals) IsRecursive() bool {
	return s.FunctionName != "" && s.RecursiveCallSites >= 1
}

// KnownSnippet is one curated teaching example with its pre-authored verdict.
type KnownSnippet struct {
	Name     string  `json:"name" yaml:"name"`
	Title    string  `json:"title" yaml:"title"`
	Language string  `json:"language" yaml:"language"`
	Code     string  `json:"code" yaml:"code"`
	Verdict  Verdict `json:"verdict" yaml:"verdict"`
}
