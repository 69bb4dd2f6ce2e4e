package controller

import (
	"strings"

	m "github.com/mouse-blink/bigo/internal/model"
)

// List item types.
type resultItem struct {
	label  string
	badge  string
	detail string
}

func (r resultItem) FilterValue() string {
	return r.label
}

func reportItem(report m.Report) resultItem {
	if report.Failed() {
		return resultItem{
			label:  string(report.Path),
			badge:  "error",
			detail: "error: " + report.Error + "\n",
		}
	}

	return resultItem{
		label:  string(report.Path),
		badge:  string(report.Verdict.Notation),
		detail: formatVerdict(report.Verdict),
	}
}

func catalogItem(entry m.KnownSnippet) resultItem {
	return resultItem{
		label:  entry.Name,
		badge:  string(entry.Verdict.Notation),
		detail: entry.Title + " (" + entry.Language + ")\n\n" + strings.TrimRight(entry.Code, "\n") + "\n\n" + formatVerdict(entry.Verdict),
	}
}
