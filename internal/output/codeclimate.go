// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

// codeClimateSeverities maps SARIF levels onto the Code Climate scale.
var codeClimateSeverities = map[sarif.Severity]string{
	sarif.SeverityNone:    "info",
	sarif.SeverityNote:    "info",
	sarif.SeverityWarning: "minor",
	sarif.SeverityError:   "major",
}

// codeClimateIssue is one entry of a Code Climate report, the format
// GitLab ingests for code quality widgets. See
// https://github.com/codeclimate/platform/blob/master/spec/analyzers/SPEC.md
type codeClimateIssue struct {
	Type        string              `json:"type"`
	CheckName   string              `json:"check_name"`
	Description string              `json:"description"`
	Categories  []string            `json:"categories"`
	Location    codeClimateLocation `json:"location"`
	Severity    string              `json:"severity"`
	Fingerprint string              `json:"fingerprint"`
}

type codeClimateLocation struct {
	Path  string           `json:"path"`
	Lines codeClimateLines `json:"lines"`
}

type codeClimateLines struct {
	Begin int `json:"begin"`
}

// WriteCodeClimate writes the records as a Code Climate JSON report.
func WriteCodeClimate(w io.Writer, records []sarif.Record) error {
	issues := make([]codeClimateIssue, 0, len(records))
	for _, record := range records {
		severity, ok := codeClimateSeverities[record.Severity]
		if !ok {
			severity = "minor"
		}
		line, err := strconv.Atoi(record.Line)
		if err != nil {
			line = 1
		}
		// GitLab does not use "categories" but the Code Climate spec
		// requires it; there is no way to derive one from SARIF.
		issues = append(issues, codeClimateIssue{
			Type:        "issue",
			CheckName:   record.Code,
			Description: record.Description,
			Categories:  []string{"Bug Risk"},
			Location: codeClimateLocation{
				Path:  record.Location,
				Lines: codeClimateLines{Begin: line},
			},
			Severity:    severity,
			Fingerprint: fingerprint(record.Description, record.Location, record.Line),
		})
	}
	return WriteJSON(w, issues)
}

// fingerprint derives a stable issue identity from fields that survive
// re-scans of unchanged code.
func fingerprint(description, path, line string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s %s %s", description, path, line)))
	return hex.EncodeToString(sum[:])
}
