// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

// Package output renders aggregated SARIF reports in the formats the
// subcommands produce.
package output

import (
	"fmt"
	"io"
	"strconv"

	aqtable "github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"

	"github.com/microsoft/sarif-tools/internal/filter"
	"github.com/microsoft/sarif-tools/internal/report"
)

// WriteSummary writes the per-severity issue summary: a count of
// results for each severity followed by one line per issue type, most
// frequent first. On a terminal, a histogram table and colorized
// severity headings are added.
func WriteSummary(w io.Writer, rep *report.IssuesReport, stats *filter.Stats, isTerminal bool) error {
	if isTerminal {
		writeHistogramTable(w, rep)
	}
	for _, severity := range rep.Severities() {
		heading := string(severity)
		if isTerminal {
			heading = colorizeSeverity(severity)
		}
		if _, err := fmt.Fprintf(w, "\n%s: %d\n", heading, rep.IssueCount(severity)); err != nil {
			return err
		}
		for _, issueType := range rep.IssueTypes(severity) {
			if _, err := fmt.Fprintf(w, " - %s: %d\n", issueType.Key, issueType.Count()); err != nil {
				return err
			}
		}
	}
	if stats != nil {
		if _, err := fmt.Fprintf(w, "\nResults were filtered by %s\n", stats); err != nil {
			return err
		}
	}
	return nil
}

// writeHistogramTable renders the severity histogram as a table.
func writeHistogramTable(w io.Writer, rep *report.IssuesReport) {
	_ = tml.Fprintf(w, "<bold>Total: %d</bold>\n", rep.TotalCount())
	tw := aqtable.New(w)
	tw.SetHeaderStyle(aqtable.StyleBold)
	tw.SetLineStyle(aqtable.StyleDim)
	tw.SetBorders(true)
	tw.SetHeaders("Severity", "Results", "Issue Types")
	for _, entry := range rep.Histogram() {
		tw.AddRow(
			colorizeSeverity(entry.Severity),
			strconv.Itoa(entry.Count),
			strconv.Itoa(rep.IssueTypeCount(entry.Severity)),
		)
	}
	tw.Render()
}
