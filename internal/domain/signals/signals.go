package signals

import m "github.com/mouse-blink/bigo/internal/model"

// Scan computes every structural signal for text. It is a pure function of
// text: identical input always yields identical signals.
func Scan(text string) m.ScanSignals {
	shape, _ := DetectShape(text)
	loops := ScanLoops(text, shape)
	calls := FindCalls(text)
	halving := DetectHalving(text)

	var patterns []string
	for _, h := range halving {
		patterns = append(patterns, h.Description)
	}

	return m.ScanSignals{
		LoopCount:          loops.Count,
		MaxNesting:         loops.MaxNesting,
		IsIndentationBased: shape == ShapeIndentation,
		FunctionName:       calls.FunctionName,
		RecursiveCallSites: calls.RecursiveCallSites,
		HasDivideByTwo:     len(halving) > 0,
		HalvingPatterns:    patterns,
		HasMergeHint:       HasMergeHint(text),
	}
}
