// Package domain contains the complexity classifier and the workflow that
// drives it over files, the examples catalog and saved reports.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mouse-blink/bigo/internal/domain/signals"
	m "github.com/mouse-blink/bigo/internal/model"
)

// ErrNoInput is returned for an empty or whitespace-only snippet. No verdict
// is produced in that case.
var ErrNoInput = errors.New("no input provided")

// Disclaimer accompanies every verdict the heuristic infers.
const Disclaimer = "Heuristic estimate from code structure only; unusual loop syntax, " +
	"indirect recursion or library calls can make it inaccurate."

// Analyzer turns a snippet into a verdict.
type Analyzer interface {
	Analyze(ctx context.Context, snippet string) (m.Verdict, error)
}

// Classifier is the offline complexity classifier. It holds only the
// read-only catalog, so one Classifier can serve concurrent callers.
type Classifier struct {
	catalog *Catalog
}

// NewClassifier creates a Classifier that consults catalog before running the
// heuristic. A nil catalog disables the known-snippet override.
func NewClassifier(catalog *Catalog) *Classifier {
	if catalog == nil {
		catalog = &Catalog{}
	}

	return &Classifier{catalog: catalog}
}

// Analyze implements Analyzer. Classification never blocks, so ctx is unused.
func (c *Classifier) Analyze(_ context.Context, snippet string) (m.Verdict, error) {
	return c.Classify(snippet)
}

// Classify returns the verdict for snippet. A snippet that equals a catalog
// entry after trimming gets that entry's verdict verbatim; anything else goes
// through signal scanning and the decision table.
func (c *Classifier) Classify(snippet string) (m.Verdict, error) {
	trimmed := strings.TrimSpace(snippet)
	if trimmed == "" {
		return m.Verdict{}, ErrNoInput
	}

	if entry, ok := c.catalog.Lookup(trimmed); ok {
		return entry.Verdict, nil
	}

	return Decide(signals.Scan(snippet)), nil
}

// Decide maps scan signals to a verdict through the decision table.
func Decide(s m.ScanSignals) m.Verdict {
	r := matchRule(s)
	explanation, ruleSteps := r.explain(s)

	steps := signalSteps(s)
	steps = append(steps, ruleSteps...)

	return m.Verdict{
		Notation:    r.notation,
		Explanation: explanation,
		Steps:       steps,
		Engine:      m.EngineHeuristic,
		Disclaimer:  Disclaimer,
	}
}

// RuleName returns the name of the decision-table row that s selects.
func RuleName(s m.ScanSignals) string {
	return matchRule(s).name
}

func signalSteps(s m.ScanSignals) []string {
	steps := make([]string, 0, 6)

	if s.IsIndentationBased {
		steps = append(steps, "Detected indentation-based block structure (Python-style)")
	} else {
		steps = append(steps, "Detected brace-delimited block structure (C-style)")
	}

	if s.LoopCount == 0 {
		steps = append(steps, "No loop constructs found")
	} else {
		steps = append(steps, fmt.Sprintf("Found %s with a maximum nesting depth of %d",
			plural(s.LoopCount, "loop", "loops"), s.MaxNesting))
	}

	switch {
	case s.IsRecursive():
		steps = append(steps, fmt.Sprintf("Found recursive function %s with %s",
			s.FunctionName, plural(s.RecursiveCallSites, "recursive call", "recursive calls")))
	case s.FunctionName != "":
		steps = append(steps, fmt.Sprintf("Function %s does not call itself", s.FunctionName))
	}

	switch {
	case s.HasDivideByTwo && len(s.HalvingPatterns) > 0:
		steps = append(steps, "Detected halving pattern: "+strings.Join(s.HalvingPatterns, ", "))
	case s.HasDivideByTwo:
		steps = append(steps, "Detected halving pattern")
	}

	if s.HasMergeHint {
		steps = append(steps, "Found merge/split/divide naming typical of divide-and-conquer code")
	}

	return steps
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}

	return fmt.Sprintf("%d %s", n, many)
}
