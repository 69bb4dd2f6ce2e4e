package domain

import (
	"fmt"

	m "github.com/mouse-blink/bigo/internal/model"
)

// rule is one row of the decision table: a named predicate over the scan
// signals and the verdict it produces when it is the first to match.
type rule struct {
	name     string
	notation m.Notation
	matches  func(s m.ScanSignals) bool
	explain  func(s m.ScanSignals) (explanation string, steps []string)
}

// decisionTable is evaluated top to bottom and the first match wins.
// Recursion shape decides only when no loop exists; otherwise loop shape
// wins, with the divide-and-conquer rows layered in before plain nesting.
var decisionTable = []rule{
	{
		name:     "branching-recursion",
		notation: m.Exponential,
		matches: func(s m.ScanSignals) bool {
			return s.LoopCount == 0 && s.IsRecursive() && s.RecursiveCallSites >= 2
		},
		explain: func(s m.ScanSignals) (string, []string) {
			return fmt.Sprintf("The function calls itself %d times per invocation, so the number of calls grows exponentially with the input.", s.RecursiveCallSites),
				[]string{fmt.Sprintf("Each call branches into %d recursive calls, so the call tree doubles (or more) at every level", s.RecursiveCallSites)}
		},
	},
	{
		name:     "halving-recursion",
		notation: m.Logarithmic,
		matches: func(s m.ScanSignals) bool {
			return s.LoopCount == 0 && s.IsRecursive() && s.HasDivideByTwo
		},
		explain: func(_ m.ScanSignals) (string, []string) {
			return "The function calls itself once on half of the input, so the recursion depth grows logarithmically.",
				[]string{"Each recursive call works on half of the remaining input"}
		},
	},
	{
		name:     "linear-recursion",
		notation: m.Linear,
		matches: func(s m.ScanSignals) bool {
			return s.LoopCount == 0 && s.IsRecursive()
		},
		explain: func(_ m.ScanSignals) (string, []string) {
			return "The function calls itself once per step, so the recursion depth grows in proportion to the input size.",
				[]string{"A single self-call per step recurses to a depth proportional to the input size"}
		},
	},
	{
		name:     "divide-and-merge",
		notation: m.Linearithmic,
		matches: func(s m.ScanSignals) bool {
			return s.LoopCount > 0 && s.MaxNesting == 1 && s.HasMergeHint && (s.IsRecursive() || s.HasDivideByTwo)
		},
		explain: func(_ m.ScanSignals) (string, []string) {
			return "The input is divided in half repeatedly and each level is combined with a single linear pass.",
				[]string{"The input is split at each level and merged back with one loop over the elements"}
		},
	},
	{
		name:     "halving-loop",
		notation: m.Logarithmic,
		matches: func(s m.ScanSignals) bool {
			return s.LoopCount > 0 && s.MaxNesting == 1 && s.HasDivideByTwo
		},
		explain: func(_ m.ScanSignals) (string, []string) {
			return "The loop halves its working range on every iteration, so it runs a logarithmic number of times.",
				[]string{"The single loop discards half of its range on every iteration"}
		},
	},
	{
		name:     "no-loops",
		notation: m.Constant,
		matches: func(s m.ScanSignals) bool {
			return s.LoopCount == 0
		},
		explain: func(_ m.ScanSignals) (string, []string) {
			return "The code has no loops or recursion, so it runs a fixed number of steps regardless of input size.",
				[]string{"No loops or recursion: the amount of work does not depend on the input size"}
		},
	},
	{
		name:     "single-loop",
		notation: m.Linear,
		matches: func(s m.ScanSignals) bool {
			return s.MaxNesting <= 1
		},
		explain: func(_ m.ScanSignals) (string, []string) {
			return "The code loops over the input without nesting, so the work grows linearly with the input size.",
				[]string{"A single loop over the input"}
		},
	},
	{
		name:     "double-nesting",
		notation: m.Quadratic,
		matches: func(s m.ScanSignals) bool {
			return s.MaxNesting == 2
		},
		explain: func(_ m.ScanSignals) (string, []string) {
			return "The code contains two nested loops, so the work grows quadratically with the input size.",
				[]string{"Two nested loops over the input (two levels of nesting)"}
		},
	},
	{
		name:     "deep-nesting",
		notation: m.Cubic,
		matches: func(s m.ScanSignals) bool {
			return s.MaxNesting >= 3
		},
		explain: func(s m.ScanSignals) (string, []string) {
			if s.MaxNesting == 3 {
				return "The code contains three nested loops, so the work grows cubically with the input size.",
					[]string{"Three nested loops over the input (three levels of nesting)"}
			}

			return "The code nests loops three or more levels deep; the estimate saturates at cubic growth.",
				[]string{fmt.Sprintf("%d levels of nested loops, reported as cubic", s.MaxNesting)}
		},
	},
}

// matchRule returns the first decision-table row whose predicate holds. The
// last rows together cover every signal combination, so a row always matches.
func matchRule(s m.ScanSignals) rule {
	for _, r := range decisionTable {
		if r.matches(s) {
			return r
		}
	}

	return decisionTable[len(decisionTable)-1]
}
