// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"strings"
	"time"

	"github.com/microsoft/sarif-tools/internal/filter"
	"github.com/microsoft/sarif-tools/internal/report"
	"github.com/microsoft/sarif-tools/internal/sarif"
)

// reportView is the data both the emacs and HTML templates render.
type reportView struct {
	ReportType string
	ReportDate string
	Severities string
	Total      int
	Problems   []severitySection
	Filtered   string
}

// severitySection is one severity's block of issue types.
type severitySection struct {
	Severity sarif.Severity
	Count    int
	Details  []*report.IssueType
}

// buildReportView assembles the template data from a report.
func buildReportView(rep *report.IssuesReport, toolNames []string, stats *filter.Stats, now time.Time) reportView {
	view := reportView{
		ReportType: strings.Join(toolNames, ", "),
		ReportDate: now.Format("2006-01-02 15:04:05"),
	}
	var severityNames []string
	for _, severity := range rep.Severities() {
		severityNames = append(severityNames, string(severity))
		types := rep.IssueTypes(severity)
		view.Total += len(types)
		view.Problems = append(view.Problems, severitySection{
			Severity: severity,
			Count:    len(types),
			Details:  types,
		})
	}
	view.Severities = strings.Join(severityNames, ", ")
	if stats != nil {
		view.Filtered = "Results were filtered by " + stats.String() + "."
	}
	return view
}
