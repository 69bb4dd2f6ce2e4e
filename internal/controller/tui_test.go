package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/bigo/internal/model"
)

func newTestTUI(buf *bytes.Buffer, height int) (*TUI, *[]tea.Model) {
	tui := NewTUI(buf)
	tui.height = func() int { return height }

	var started []tea.Model

	tui.run = func(model tea.Model) error {
		started = append(started, model)
		return nil
	}

	return tui, &started
}

func TestTUI_DisplayReports_PrintsWhenFits(t *testing.T) {
	var buf bytes.Buffer
	tui, started := newTestTUI(&buf, 200)

	if err := tui.DisplayReports(testReports()); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	if len(*started) != 0 {
		t.Fatalf("expected no interactive program for short output")
	}

	if !strings.Contains(buf.String(), "path/a.js") {
		t.Fatalf("expected static output, got:\n%s", buf.String())
	}
}

func TestTUI_DisplayReports_BrowsesWhenTooLong(t *testing.T) {
	var buf bytes.Buffer
	tui, started := newTestTUI(&buf, 5)

	if err := tui.DisplayReports(testReports()); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	if len(*started) != 1 {
		t.Fatalf("expected interactive program, got %d", len(*started))
	}

	browser, ok := (*started)[0].(browserModel)
	if !ok {
		t.Fatalf("started %T, want browserModel", (*started)[0])
	}

	if len(browser.list.Items()) != 3 || !strings.Contains(browser.summary, "Failed: 1") {
		t.Fatalf("unexpected browser state: items=%d summary=%q", len(browser.list.Items()), browser.summary)
	}

	if buf.Len() != 0 {
		t.Fatalf("expected nothing printed directly, got:\n%s", buf.String())
	}
}

func TestTUI_DisplayReports_PropagatesRunError(t *testing.T) {
	var buf bytes.Buffer
	tui, _ := newTestTUI(&buf, 1)
	boom := errors.New("boom")
	tui.run = func(tea.Model) error { return boom }

	if err := tui.DisplayReports(testReports()); !errors.Is(err, boom) {
		t.Fatalf("DisplayReports() error = %v, want boom", err)
	}
}

func TestTUI_DisplayCatalog(t *testing.T) {
	entries := []m.KnownSnippet{
		{Name: "merge-sort", Title: "Merge sort", Language: "JavaScript", Verdict: m.Verdict{Notation: m.Linearithmic}},
	}

	t.Run("without terminal prints list", func(t *testing.T) {
		var buf bytes.Buffer
		tui, started := newTestTUI(&buf, 0)

		if err := tui.DisplayCatalog(entries); err != nil {
			t.Fatalf("DisplayCatalog() error = %v", err)
		}

		if len(*started) != 0 || !strings.Contains(buf.String(), "merge-sort") {
			t.Fatalf("unexpected output %q (started %d)", buf.String(), len(*started))
		}
	})

	t.Run("with terminal starts browser", func(t *testing.T) {
		var buf bytes.Buffer
		tui, started := newTestTUI(&buf, 40)

		if err := tui.DisplayCatalog(entries); err != nil {
			t.Fatalf("DisplayCatalog() error = %v", err)
		}

		if len(*started) != 1 {
			t.Fatalf("expected browser to start")
		}
	})
}

func TestTUI_DisplayKnownSnippet(t *testing.T) {
	var buf bytes.Buffer
	tui, _ := newTestTUI(&buf, 40)

	entry := m.KnownSnippet{Name: "n", Title: "Nested", Language: "Python", Code: "for i in x:\n    pass\n", Verdict: m.Verdict{Notation: m.Linear}}
	if err := tui.DisplayKnownSnippet(entry); err != nil {
		t.Fatalf("DisplayKnownSnippet() error = %v", err)
	}

	for _, want := range []string{"Nested (Python)", "for i in x:", "Complexity: O(n)"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("output missing %q\n%s", want, buf.String())
		}
	}
}

func TestTUI_TerminalHeight_NonFile(t *testing.T) {
	if got := NewTUI(&bytes.Buffer{}).terminalHeight(); got != 0 {
		t.Fatalf("terminalHeight() = %d, want 0", got)
	}
}
