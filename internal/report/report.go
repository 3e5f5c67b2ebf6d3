// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

// Package report aggregates flattened SARIF records into per-severity
// issue types for the rendering commands.
package report

import (
	"sort"
	"strconv"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

// IssueType is one group of records sharing an issue key, the combined
// code and description.
type IssueType struct {
	Key     string
	Records []sarif.Record
}

// Count returns the number of records of this issue type.
func (t *IssueType) Count() int { return len(t.Records) }

// IssuesReport groups records by severity and issue type. The error,
// warning and note severities are always exposed, even when empty, so
// rendered reports have a stable shape; "none" appears only when a
// record carries it.
type IssuesReport struct {
	records map[sarif.Severity][]sarif.Record
	grouped map[sarif.Severity][]*IssueType
}

// New returns an empty report.
func New() *IssuesReport {
	return &IssuesReport{records: map[sarif.Severity][]sarif.Record{}}
}

// FromRecords builds a report from a list of records.
func FromRecords(records []sarif.Record) *IssuesReport {
	r := New()
	for _, record := range records {
		r.Add(record)
	}
	return r
}

// Add inserts one record into the report.
func (r *IssuesReport) Add(record sarif.Record) {
	r.records[record.Severity] = append(r.records[record.Severity], record)
	r.grouped = nil
}

// Severities returns the severities the report exposes, in rank order.
func (r *IssuesReport) Severities() []sarif.Severity {
	if r.AnyNone() {
		return sarif.SeveritiesWithNone
	}
	return sarif.Severities
}

// AnyNone reports whether any record has severity "none".
func (r *IssuesReport) AnyNone() bool {
	return len(r.records[sarif.SeverityNone]) > 0
}

// TotalCount returns the number of records across all severities.
func (r *IssuesReport) TotalCount() int {
	count := 0
	for _, records := range r.records {
		count += len(records)
	}
	return count
}

// IssueCount returns the number of records with the given severity.
func (r *IssuesReport) IssueCount(severity sarif.Severity) int {
	return len(r.records[severity])
}

// IssueTypeCount returns the number of distinct issue types with the
// given severity.
func (r *IssuesReport) IssueTypeCount(severity sarif.Severity) int {
	return len(r.group()[severity])
}

// IssueTypes returns the issue types for a severity, most frequent
// first; equal counts order by key.
func (r *IssuesReport) IssueTypes(severity sarif.Severity) []*IssueType {
	return r.group()[severity]
}

// Issues returns the records for a severity sorted for presentation:
// by location, then by line with numeric lines in numeric order and
// non-numeric lines after them.
func (r *IssuesReport) Issues(severity sarif.Severity) []sarif.Record {
	records := append([]sarif.Record{}, r.records[severity]...)
	sortRecords(records)
	return records
}

// Histogram returns one (severity, record count) pair per exposed
// severity, in rank order.
func (r *IssuesReport) Histogram() []HistogramEntry {
	var entries []HistogramEntry
	for _, severity := range r.Severities() {
		entries = append(entries, HistogramEntry{Severity: severity, Count: r.IssueCount(severity)})
	}
	return entries
}

// HistogramEntry is one row of the severity histogram.
type HistogramEntry struct {
	Severity sarif.Severity
	Count    int
}

// group builds the issue-type index lazily; Add invalidates it.
func (r *IssuesReport) group() map[sarif.Severity][]*IssueType {
	if r.grouped != nil {
		return r.grouped
	}
	grouped := map[sarif.Severity][]*IssueType{}
	for severity, records := range r.records {
		index := map[string]*IssueType{}
		var types []*IssueType
		for _, record := range records {
			key := record.IssueKey()
			issueType, ok := index[key]
			if !ok {
				issueType = &IssueType{Key: key}
				index[key] = issueType
				types = append(types, issueType)
			}
			issueType.Records = append(issueType.Records, record)
		}
		for _, issueType := range types {
			sortRecords(issueType.Records)
		}
		sort.SliceStable(types, func(i, j int) bool {
			if len(types[i].Records) != len(types[j].Records) {
				return len(types[i].Records) > len(types[j].Records)
			}
			return types[i].Key < types[j].Key
		})
		grouped[severity] = types
	}
	r.grouped = grouped
	return grouped
}

// sortRecords orders records by location, then line. Numeric lines sort
// numerically and come before non-numeric ones, which keep their
// relative order.
func sortRecords(records []sarif.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Location != records[j].Location {
			return records[i].Location < records[j].Location
		}
		li, errI := strconv.Atoi(records[i].Line)
		lj, errJ := strconv.Atoi(records[j].Line)
		switch {
		case errI == nil && errJ == nil:
			return li < lj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return false
		}
	})
}
