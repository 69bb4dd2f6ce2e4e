package signals

// LoopStats summarizes the loops found in a snippet.
type LoopStats struct {
	Count      int
	MaxNesting int
}

// ScanLoops walks text line by line with the tracker for shape. It never
// fails; malformed input can only skew the counts.
func ScanLoops(text string, shape Shape) LoopStats {
	tracker := NewNestingTracker(shape)

	for _, line := range splitLines(text) {
		tracker.FeedLine(line)
	}

	return LoopStats{
		Count:      tracker.LoopCount(),
		MaxNesting: tracker.MaxDepthSeen(),
	}
}
