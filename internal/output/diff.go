// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/microsoft/sarif-tools/internal/report"
	"github.com/microsoft/sarif-tools/internal/sarif"
)

// Diff captures the issue changes between two reports.
type Diff struct {
	severities []sarif.Severity
	perLevel   map[sarif.Severity]*levelDiff
	NewTotal   int
	GoneTotal  int
}

// levelDiff holds the changes at one severity.
type levelDiff struct {
	newTypes  int
	goneTypes int
	codes     map[string]*codeDiff
	codeOrder []string
}

// codeDiff tracks one issue type's occurrence counts and the locations
// that are new in the newer report.
type codeDiff struct {
	oldCount       int
	newCount       int
	newOccurrences []Occurrence
}

// Occurrence is a (location, line) pair.
type Occurrence struct {
	Location string `json:"Location"`
	Line     string `json:"Line"`
}

// CalcDiff compares two reports. The "none" severity is included when
// either side has records with it.
func CalcDiff(oldReport, newReport *report.IssuesReport) *Diff {
	severities := newReport.Severities()
	if oldReport.AnyNone() {
		severities = oldReport.Severities()
	}
	diff := &Diff{severities: severities, perLevel: map[sarif.Severity]*levelDiff{}}
	for _, severity := range severities {
		level := &levelDiff{codes: map[string]*codeDiff{}}
		diff.perLevel[severity] = level

		oldTypes := indexTypes(oldReport.IssueTypes(severity))
		for _, issueType := range newReport.IssueTypes(severity) {
			oldType := oldTypes[issueType.Key]
			oldCount := 0
			var oldRecords []sarif.Record
			if oldType != nil {
				oldCount = oldType.Count()
				oldRecords = oldType.Records
			}
			if oldCount == issueType.Count() {
				continue
			}
			code := &codeDiff{
				oldCount:       oldCount,
				newCount:       issueType.Count(),
				newOccurrences: newOccurrences(issueType.Records, oldRecords),
			}
			level.codes[issueType.Key] = code
			level.codeOrder = append(level.codeOrder, issueType.Key)
			if oldCount == 0 {
				level.newTypes++
			}
		}
		newTypes := indexTypes(newReport.IssueTypes(severity))
		for _, issueType := range oldReport.IssueTypes(severity) {
			if _, stillPresent := newTypes[issueType.Key]; stillPresent {
				continue
			}
			level.codes[issueType.Key] = &codeDiff{oldCount: issueType.Count()}
			level.codeOrder = append(level.codeOrder, issueType.Key)
			level.goneTypes++
		}
		diff.NewTotal += level.newTypes
		diff.GoneTotal += level.goneTypes
	}
	return diff
}

func indexTypes(types []*report.IssueType) map[string]*report.IssueType {
	index := make(map[string]*report.IssueType, len(types))
	for _, issueType := range types {
		index[issueType.Key] = issueType
	}
	return index
}

// newOccurrences returns the new records at previously unseen locations,
// then those at known locations but new lines, each sorted by location
// and line.
func newOccurrences(newRecords, oldRecords []sarif.Record) []Occurrence {
	var atNewLocations, atNewLines []Occurrence
	seenNew := map[Occurrence]bool{}
	for _, record := range newRecords {
		occurrence := Occurrence{Location: record.Location, Line: record.Line}
		if seenNew[occurrence] {
			continue
		}
		knownLocation, knownLine := false, false
		for _, old := range oldRecords {
			if old.Location == record.Location {
				knownLocation = true
				if old.Line == record.Line {
					knownLine = true
					break
				}
			}
		}
		switch {
		case !knownLocation:
			seenNew[occurrence] = true
			atNewLocations = append(atNewLocations, occurrence)
		case !knownLine:
			seenNew[occurrence] = true
			atNewLines = append(atNewLines, occurrence)
		}
	}
	sortOccurrences(atNewLocations)
	sortOccurrences(atNewLines)
	return append(atNewLocations, atNewLines...)
}

func sortOccurrences(occurrences []Occurrence) {
	sort.Slice(occurrences, func(i, j int) bool {
		if occurrences[i].Location != occurrences[j].Location {
			return occurrences[i].Location < occurrences[j].Location
		}
		return occurrences[i].Line < occurrences[j].Line
	})
}

// CheckCount returns the number of new issue types at or above the
// given severity, the count `--check` gates the exit code on.
func (d *Diff) CheckCount(level sarif.Severity) int {
	count := 0
	for _, severity := range d.severities {
		count += d.perLevel[severity].newTypes
		if severity == level {
			break
		}
	}
	return count
}

// ToJSON renders the diff in its serialized shape: per severity a "+"
// and "-" type count plus per-key old ("<") and new (">") occurrence
// counts with new locations under "+@".
func (d *Diff) ToJSON() map[string]any {
	out := map[string]any{
		"all": map[string]any{"+": d.NewTotal, "-": d.GoneTotal},
	}
	for _, severity := range d.severities {
		level := d.perLevel[severity]
		codes := map[string]any{}
		for key, code := range level.codes {
			entry := map[string]any{"<": code.oldCount, ">": code.newCount}
			if len(code.newOccurrences) > 0 {
				entry["+@"] = code.newOccurrences
			}
			codes[key] = entry
		}
		out[string(severity)] = map[string]any{
			"+":     level.newTypes,
			"-":     level.goneTypes,
			"codes": codes,
		}
	}
	return out
}

// WriteText writes the human-readable diff.
func (d *Diff) WriteText(w io.Writer) error {
	for _, severity := range d.severities {
		level := d.perLevel[severity]
		if len(level.codes) == 0 {
			if _, err := fmt.Fprintf(w, "%s level: +0 -0 no changes\n", severity); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s level: %s %s\n",
			severity, signed(level.newTypes), signed(-level.goneTypes)); err != nil {
			return err
		}
		for _, key := range level.codeOrder {
			code := level.codes[key]
			switch {
			case code.oldCount == 0:
				fmt.Fprintf(w, "  New issue %q (%s)\n", key, occurrences(code.newCount))
			case code.newCount == 0:
				fmt.Fprintf(w, "  Eliminated issue %q\n", key)
			default:
				fmt.Fprintf(w, "  Number of occurrences %d -> %d (%s) for issue %q\n",
					code.oldCount, code.newCount, signed(code.newCount-code.oldCount), key)
			}
			for i, occurrence := range code.newOccurrences {
				if i == 3 {
					fmt.Fprintln(w, "    ...")
					break
				}
				fmt.Fprintf(w, "    %s:%s\n", occurrence.Location, occurrence.Line)
			}
		}
	}
	_, err := fmt.Fprintf(w, "all levels: %s %s\n", signed(d.NewTotal), signed(-d.GoneTotal))
	return err
}

func signed(n int) string {
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("+%d", n)
}

func occurrences(n int) string {
	if n == 1 {
		return "1 occurrence"
	}
	return fmt.Sprintf("%d occurrences", n)
}
