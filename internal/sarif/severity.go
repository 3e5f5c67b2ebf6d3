// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

// Package sarif models sets of SARIF files, individual files and the runs
// within them, and flattens results into renderer-friendly records with
// optional filtering and path prefix trimming.
package sarif

// Severity is a SARIF result level as per SARIF standard section 3.27.10.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
	SeverityNone    Severity = "none"
)

// Severities is the standard priority order for code issues. The unusual
// "none" level is only surfaced when records actually carry it.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityNote}

// SeveritiesWithNone includes the "none" level at the end.
var SeveritiesWithNone = []Severity{SeverityError, SeverityWarning, SeverityNote, SeverityNone}

// ParseSeverity maps a string to a Severity, defaulting to warning: a
// result with no specified level is a warning by the SARIF standard.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityNote, SeverityNone:
		return Severity(s)
	default:
		return SeverityWarning
	}
}
