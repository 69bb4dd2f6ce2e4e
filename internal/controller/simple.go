package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/bigo/internal/model"
)

// SimpleUI implements UI by writing to the cobra command output.
type SimpleUI struct {
	cmd    *cobra.Command
	format Format
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, format Format) *SimpleUI {
	if format == "" {
		format = FormatText
	}

	return &SimpleUI{cmd: cmd, format: format}
}

// DisplayReports prints one row per report followed by the reasoning steps.
func (s *SimpleUI) DisplayReports(reports []m.Report) error {
	if s.format != FormatText {
		return s.encode(reports)
	}

	s.printf("%s", renderReports(reports))

	return nil
}

// DisplayCatalog lists the known snippets.
func (s *SimpleUI) DisplayCatalog(entries []m.KnownSnippet) error {
	if s.format != FormatText {
		return s.encode(entries)
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Name", "Title", "Language", "Complexity"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
	})

	for _, entry := range entries {
		table.Append([]string{entry.Name, entry.Title, entry.Language, string(entry.Verdict.Notation)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Examples %d", len(entries)), "", "", ""})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayKnownSnippet prints a known snippet's code and verdict.
func (s *SimpleUI) DisplayKnownSnippet(entry m.KnownSnippet) error {
	if s.format != FormatText {
		return s.encode(entry)
	}

	s.printf("%s (%s)\n\n%s\n\n%s", entry.Title, entry.Language, strings.TrimRight(entry.Code, "\n"), formatVerdict(entry.Verdict))

	return nil
}

func (s *SimpleUI) encode(v any) error {
	out := s.cmd.OutOrStdout()

	if s.format == FormatYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// renderReports builds the plain-text rendering shared by SimpleUI and the
// static TUI path.
func renderReports(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Complexity", "Engine"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	failed := 0
	disclaimer := ""

	for _, report := range reports {
		if report.Failed() {
			failed++

			table.Append([]string{string(report.Path), "-", "error"})

			continue
		}

		if report.Verdict.Disclaimer != "" {
			disclaimer = report.Verdict.Disclaimer
		}

		table.Append([]string{string(report.Path), string(report.Verdict.Notation), string(report.Verdict.Engine)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(reports)),
		fmt.Sprintf("Failed %d", failed),
		"",
	})
	table.Render()

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(tableBuffer.String())

	for _, report := range reports {
		b.WriteString("\n")
		b.WriteString(string(report.Path))
		b.WriteString("\n")

		if report.Failed() {
			fmt.Fprintf(&b, "  error: %s\n", report.Error)

			continue
		}

		b.WriteString(indent(formatVerdictBody(report.Verdict), "  "))
	}

	if disclaimer != "" {
		fmt.Fprintf(&b, "\nNote: %s\n", disclaimer)
	}

	return b.String()
}

// formatVerdict renders a verdict with its disclaimer.
func formatVerdict(v m.Verdict) string {
	out := formatVerdictBody(v)
	if v.Disclaimer != "" {
		out += "\nNote: " + v.Disclaimer + "\n"
	}

	return out
}

func formatVerdictBody(v m.Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Complexity: %s\n", v.Notation)

	if v.Explanation != "" {
		fmt.Fprintf(&b, "%s\n", v.Explanation)
	}

	for i, step := range v.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")

	var b strings.Builder

	for _, line := range lines {
		if line == "" {
			continue
		}

		b.WriteString(prefix)
		b.WriteString(line)
	}

	return b.String()
}
