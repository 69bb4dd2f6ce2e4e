package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "github.com/mouse-blink/bigo/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display. Output that
// fits on one screen is printed directly.
type TUI struct {
	output io.Writer
	input  io.Reader
	height func() int
	run    func(tea.Model) error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	t := &TUI{output: output, input: os.Stdin}
	t.height = t.terminalHeight
	t.run = t.runProgram

	return t
}

// DisplayReports shows the analysis results.
func (t *TUI) DisplayReports(reports []m.Report) error {
	static := renderReports(reports)
	if t.fits(static) {
		return t.write(static)
	}

	items := make([]resultItem, 0, len(reports))
	failed := 0

	for _, report := range reports {
		if report.Failed() {
			failed++
		}

		items = append(items, reportItem(report))
	}

	summary := fmt.Sprintf("Files: %d   Failed: %d", len(reports), failed)

	return t.run(newBrowserModel("Big-O Analysis", summary, items))
}

// DisplayCatalog shows the known snippets.
func (t *TUI) DisplayCatalog(entries []m.KnownSnippet) error {
	items := make([]resultItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, catalogItem(entry))
	}

	if t.height() <= 0 {
		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, "%-10s  %s\n", item.badge, item.label)
		}

		return t.write(b.String())
	}

	return t.run(newBrowserModel("Big-O Examples", fmt.Sprintf("Examples: %d", len(entries)), items))
}

// DisplayKnownSnippet prints a known snippet's code and verdict.
func (t *TUI) DisplayKnownSnippet(entry m.KnownSnippet) error {
	return t.write(catalogItem(entry).detail)
}

func (t *TUI) fits(text string) bool {
	height := t.height()

	return height <= 0 || strings.Count(text, "\n") < height
}

func (t *TUI) write(text string) error {
	_, err := io.WriteString(t.output, text)

	return err
}

func (t *TUI) runProgram(model tea.Model) error {
	program := tea.NewProgram(model,
		tea.WithOutput(t.output),
		tea.WithInput(t.input),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	return nil
}

func (t *TUI) terminalHeight() int {
	file, ok := t.output.(*os.File)
	if !ok {
		return 0
	}

	_, height, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}

	return height
}
