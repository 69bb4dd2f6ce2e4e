package controller

import (
	"os"

	"github.com/spf13/cobra"
)

// NewUI creates a UI for the command output. Text output on a terminal gets
// the Bubble Tea TUI, everything else the SimpleUI.
func NewUI(cmd *cobra.Command, opts ...Option) UI {
	o := options{format: FormatText}
	for _, opt := range opts {
		opt(&o)
	}

	if o.tty && o.format == FormatText {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd, o.format)
}

// IsTTY checks if the given stream is a terminal (TTY).
// Returns false if it is redirected to or from a file or pipe.
func IsTTY(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
