package model

// Path represents a file system path.
type Path string

const (
	// StdinPath is the origin recorded for snippets read from standard input.
	StdinPath Path = "<stdin>"
	// InlinePath is the origin recorded for snippets passed with --code.
	InlinePath Path = "<inline>"
)

// Snippet is one block of source text submitted for classification.
// It carries no language tag; the shape is inferred from the text.
type Snippet struct {
	Origin Path
	Hash   string
	Text   string
}
