package signals

import "regexp"

var mergeHint = regexp.MustCompile(`(?i)\b(?:merge|split|divid)`)

// HasMergeHint reports whether text names a merge, split or divide step, the
// usual vocabulary of divide-and-conquer code.
func HasMergeHint(text string) bool {
	return mergeHint.MatchString(text)
}
