// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"embed"
	"io"
	"text/template"
	"time"

	"github.com/microsoft/sarif-tools/internal/filter"
	"github.com/microsoft/sarif-tools/internal/report"
)

//go:embed templates/compile.txt.tmpl
var emacsTemplateFS embed.FS

var emacsTemplate = template.Must(
	template.ParseFS(emacsTemplateFS, "templates/compile.txt.tmpl"))

// WriteEmacs writes the report as a text file for emacs compilation
// mode, with one "location:line: message" line per result.
func WriteEmacs(w io.Writer, rep *report.IssuesReport, toolNames []string, stats *filter.Stats, now time.Time) error {
	return emacsTemplate.Execute(w, buildReportView(rep, toolNames, stats, now))
}
