package controller

import (
	"strings"
	"testing"

	m "github.com/mouse-blink/bigo/internal/model"
)

func TestResultItem_FilterValue(t *testing.T) {
	item := resultItem{label: "path/to/file.js", badge: "O(n)"}
	if got := item.FilterValue(); got != item.label {
		t.Fatalf("FilterValue() = %q, want %q", got, item.label)
	}
}

func TestReportItem(t *testing.T) {
	reports := testReports()

	ok := reportItem(reports[0])
	if ok.badge != string(m.Quadratic) || !strings.Contains(ok.detail, "Note: Heuristic estimate.") {
		t.Fatalf("unexpected item for verdict: %+v", ok)
	}

	failed := reportItem(reports[2])
	if failed.badge != "error" || !strings.Contains(failed.detail, "no input provided") {
		t.Fatalf("unexpected item for failure: %+v", failed)
	}
}

func TestCatalogItem(t *testing.T) {
	item := catalogItem(m.KnownSnippet{
		Name:     "bubble-sort",
		Title:    "Bubble sort",
		Language: "JavaScript",
		Code:     "for (;;) {}\n",
		Verdict:  m.Verdict{Notation: m.Quadratic},
	})

	if item.label != "bubble-sort" || item.badge != "O(n²)" {
		t.Fatalf("unexpected catalog item: %+v", item)
	}

	if !strings.Contains(item.detail, "Bubble sort (JavaScript)") || !strings.Contains(item.detail, "for (;;) {}") {
		t.Fatalf("detail missing title or code:\n%s", item.detail)
	}
}
