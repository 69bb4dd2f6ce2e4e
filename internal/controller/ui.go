// Package controller provides output adapters for displaying complexity verdicts.
package controller

import (
	"fmt"

	m "github.com/mouse-blink/bigo/internal/model"
)

// Format selects how results are serialized.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", s)
	}
}

// Option is a functional option for NewUI.
type Option func(*options)

type options struct {
	format Format
	tty    bool
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithTTY enables the interactive terminal UI for text output.
func WithTTY(tty bool) Option {
	return func(o *options) {
		o.tty = tty
	}
}

// UI defines the interface for displaying results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayReports(reports []m.Report) error
	DisplayCatalog(entries []m.KnownSnippet) error
	DisplayKnownSnippet(entry m.KnownSnippet) error
}
