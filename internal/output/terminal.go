// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

// IsOutputToTerminal returns true if the writer is stdout connected to a
// character device (TTY), which enables ANSI styling.
func IsOutputToTerminal(output io.Writer) bool {
	return output == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// severityColors maps severities to color functions for terminal output.
var severityColors = map[sarif.Severity]func(a ...any) string{
	sarif.SeverityError:   color.New(color.FgRed).SprintFunc(),
	sarif.SeverityWarning: color.New(color.FgYellow).SprintFunc(),
	sarif.SeverityNote:    color.New(color.FgBlue).SprintFunc(),
	sarif.SeverityNone:    color.New(color.FgCyan).SprintFunc(),
}

// colorizeSeverity returns the severity wrapped in ANSI color codes.
func colorizeSeverity(severity sarif.Severity) string {
	if fn, ok := severityColors[severity]; ok {
		return fn(string(severity))
	}
	return string(severity)
}
