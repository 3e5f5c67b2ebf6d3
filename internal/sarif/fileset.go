// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package sarif

import (
	"fmt"

	"github.com/microsoft/sarif-tools/internal/filter"
)

// FileSet aggregates SARIF files, possibly nested per input directory.
// Operations fan out to every file and results are combined.
type FileSet struct {
	Subsets []*FileSet
	Files   []*File
}

// AddFile appends a file to this set.
func (s *FileSet) AddFile(f *File) {
	s.Files = append(s.Files, f)
}

// AddSubset appends a nested set, typically one per scanned directory.
func (s *FileSet) AddSubset(sub *FileSet) {
	s.Subsets = append(s.Subsets, sub)
}

// AllFiles returns every file in the set, including nested ones, in
// load order.
func (s *FileSet) AllFiles() []*File {
	var files []*File
	for _, sub := range s.Subsets {
		files = append(files, sub.AllFiles()...)
	}
	files = append(files, s.Files...)
	return files
}

// FileCount returns the number of files in the set, including nested
// ones.
func (s *FileSet) FileCount() int {
	return len(s.AllFiles())
}

// Description names the set's contents for messages, e.g. "3 files".
func (s *FileSet) Description() string {
	n := s.FileCount()
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// Runs returns every run across the set's files.
func (s *FileSet) Runs() []*Run {
	var runs []*Run
	for _, f := range s.AllFiles() {
		runs = append(runs, f.Runs...)
	}
	return runs
}

// ToolNames returns the distinct tool names across the set, in
// first-seen order.
func (s *FileSet) ToolNames() []string {
	return distinctToolNames(s.Runs())
}

// InitFilter configures filtering on every file in the set.
func (s *FileSet) InitFilter(cfg *filter.Config) {
	for _, f := range s.AllFiles() {
		f.InitFilter(cfg)
	}
}

// InitPathTrimming sets up path prefix stripping on every file in the
// set. The common prefix for autotrim is computed per run, so unrelated
// inputs do not shorten each other's prefixes.
func (s *FileSet) InitPathTrimming(autotrim bool, prefixes []string) {
	for _, f := range s.AllFiles() {
		f.InitPathTrimming(autotrim, prefixes)
	}
}

// Records returns the flattened records of every file in the set.
func (s *FileSet) Records() []Record {
	var records []Record
	for _, f := range s.AllFiles() {
		records = append(records, f.Records()...)
	}
	return records
}

// ResultCount returns the number of results across the set after
// filtering.
func (s *FileSet) ResultCount() int {
	count := 0
	for _, f := range s.AllFiles() {
		count += f.ResultCount()
	}
	return count
}

// FilterStats returns the combined stats of every run's filter in the
// set, or nil when none has stats.
func (s *FileSet) FilterStats() *filter.Stats {
	return combineFilterStats(s.Runs())
}

// HasBlameInfo reports whether any file in the set carries blame
// properties.
func (s *FileSet) HasBlameInfo() bool {
	for _, f := range s.AllFiles() {
		if f.HasBlameInfo() {
			return true
		}
	}
	return false
}

// AnyNone reports whether any record in the set has severity "none".
func (s *FileSet) AnyNone() bool {
	for _, f := range s.AllFiles() {
		if f.AnyNone() {
			return true
		}
	}
	return false
}
