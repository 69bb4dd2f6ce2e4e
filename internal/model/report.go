package model

// Report represents the outcome of classifying one snippet.
type Report struct {
	Path    Path    `json:"path" yaml:"path"`
	Hash    string  `json:"hash" yaml:"hash"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"` // classification failure, not a verdict
}

// Failed reports whether the snippet produced no verdict.
func (r Report) Failed() bool {
	return r.Error != ""
}
