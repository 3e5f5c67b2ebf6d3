// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package filter

import (
	"fmt"
	"time"
)

// Stats records the outcome of applying a filter: how many results passed,
// how many were removed, and how many were retained only because the filter
// could not be evaluated against them.
type Stats struct {
	Description     string
	FilteredIn      int
	FilteredOut     int
	MissingProperty int
	NoLineNumber    int

	// Rehydrated is true when the stats were restored from a SARIF file
	// written by the copy command rather than computed in this process.
	Rehydrated bool
	AppliedAt  time.Time
}

// NewStats creates zeroed stats for a filter with the given description.
func NewStats(description string) *Stats {
	return &Stats{Description: description}
}

// Add accumulates another set of stats into s. Differing descriptions are
// concatenated, so a file set reports all the filters that contributed.
func (s *Stats) Add(other *Stats) {
	if other == nil {
		return
	}
	if other.Description != "" && other.Description != s.Description {
		if s.Description != "" {
			s.Description += ", " + other.Description
		} else {
			s.Description = other.Description
		}
	}
	s.FilteredIn += other.FilteredIn
	s.FilteredOut += other.FilteredOut
	s.MissingProperty += other.MissingProperty
	s.NoLineNumber += other.NoLineNumber
}

// Copy returns a shallow copy, used when summing stats upward so that
// aggregation never mutates a child's counters.
func (s *Stats) Copy() *Stats {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// String generates a one-line summary of the stats.
func (s *Stats) String() string {
	ret := fmt.Sprintf("'%s'", s.Description)
	if !s.AppliedAt.IsZero() {
		ret += " at " + s.AppliedAt.Format(time.RFC3339)
	}
	ret += fmt.Sprintf(": %d filtered out, %d passed the filter", s.FilteredOut, s.FilteredIn)
	if s.NoLineNumber > 0 {
		ret += fmt.Sprintf(", %d included by default for lacking line number information", s.NoLineNumber)
	}
	if s.MissingProperty > 0 {
		ret += fmt.Sprintf(", %d included by default for lacking data to filter", s.MissingProperty)
	}
	return ret
}

// ToProperties renders the stats in the camelCase form stored in a SARIF
// property bag (SARIF standard section 3.8.1) by the copy command.
func (s *Stats) ToProperties() map[string]any {
	return map[string]any{
		"filter": s.Description,
		"in":     s.FilteredIn,
		"out":    s.FilteredOut,
		"default": map[string]any{
			"noProperty":   s.MissingProperty,
			"noLineNumber": s.NoLineNumber,
		},
	}
}

// StatsFromProperties restores stats from a SARIF property bag written by
// ToProperties. Returns nil if the bag is empty or lacks a filter name.
func StatsFromProperties(bag map[string]any) *Stats {
	if bag == nil {
		return nil
	}
	description, ok := bag["filter"].(string)
	if !ok {
		return nil
	}
	s := NewStats(description)
	s.Rehydrated = true
	s.FilteredIn = intValue(bag["in"])
	s.FilteredOut = intValue(bag["out"])
	if defaults, ok := bag["default"].(map[string]any); ok {
		s.MissingProperty = intValue(defaults["noProperty"])
		s.NoLineNumber = intValue(defaults["noLineNumber"])
	}
	return s
}

// intValue reads a JSON-decoded number as int, tolerating absent values.
func intValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
