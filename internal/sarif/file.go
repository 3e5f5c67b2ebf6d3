// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package sarif

import (
	"path/filepath"
	"regexp"
	"time"

	"github.com/microsoft/sarif-tools/internal/filter"
)

// filenameTimestampRegex matches a compact UTC timestamp embedded in a
// file name, e.g. "scan_20260115T101500Z.sarif".
var filenameTimestampRegex = regexp.MustCompile(`\d{8}T\d{6}Z`)

// File is one loaded SARIF file with its runs.
type File struct {
	Data map[string]any
	Runs []*Run

	path  string
	mtime time.Time
}

// NewFile wraps parsed SARIF data. path is where the data was read from
// and mtime is that file's modification time; both may be zero for data
// not backed by a file.
func NewFile(path string, mtime time.Time, data map[string]any) *File {
	f := &File{Data: data, path: path, mtime: mtime}
	runs, _ := data["runs"].([]any)
	for _, entry := range runs {
		if runData, ok := entry.(map[string]any); ok {
			f.Runs = append(f.Runs, NewRun(runData))
		}
	}
	return f
}

// AbsPath returns the absolute path the file was loaded from.
func (f *File) AbsPath() string {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		return f.path
	}
	return abs
}

// Path returns the path the file was loaded from, as given.
func (f *File) Path() string { return f.path }

// FileName returns the base name of the file.
func (f *File) FileName() string { return filepath.Base(f.path) }

// FileNameWithoutExtension returns the base name with the extension
// stripped. A ".sarif.json" double extension is stripped entirely.
func (f *File) FileNameWithoutExtension() string {
	name := f.FileName()
	for {
		ext := filepath.Ext(name)
		if ext != ".sarif" && ext != ".json" {
			return name
		}
		name = name[:len(name)-len(ext)]
	}
}

// FileNameTimestamp returns a timestamp of the form 20260115T101500Z
// embedded in the file name, or "" if there is none.
func (f *File) FileNameTimestamp() string {
	return filenameTimestampRegex.FindString(f.FileName())
}

// Timestamp returns the file name timestamp if present, otherwise the
// file's modification time in the same compact UTC form.
func (f *File) Timestamp() string {
	if ts := f.FileNameTimestamp(); ts != "" {
		return ts
	}
	if f.mtime.IsZero() {
		return ""
	}
	return f.mtime.UTC().Format("20060102T150405Z")
}

// ModTime returns the file's modification time.
func (f *File) ModTime() time.Time { return f.mtime }

// ToolNames returns the distinct tool names across the file's runs, in
// first-seen order.
func (f *File) ToolNames() []string {
	return distinctToolNames(f.Runs)
}

// InitFilter configures filtering on every run in the file.
func (f *File) InitFilter(cfg *filter.Config) {
	for _, run := range f.Runs {
		run.InitFilter(cfg)
	}
}

// InitPathTrimming sets up path prefix stripping on every run in the
// file.
func (f *File) InitPathTrimming(autotrim bool, prefixes []string) {
	for _, run := range f.Runs {
		run.InitPathTrimming(autotrim, prefixes)
	}
}

// Records returns the flattened records of all runs in the file.
func (f *File) Records() []Record {
	var records []Record
	for _, run := range f.Runs {
		records = append(records, run.Records()...)
	}
	return records
}

// ResultCount returns the number of results across all runs after
// filtering.
func (f *File) ResultCount() int {
	count := 0
	for _, run := range f.Runs {
		count += run.ResultCount()
	}
	return count
}

// FilterStats returns the combined stats of all runs' filters, or nil
// when no run has filter stats.
func (f *File) FilterStats() *filter.Stats {
	return combineFilterStats(f.Runs)
}

// HasBlameInfo reports whether any run in the file carries blame
// properties.
func (f *File) HasBlameInfo() bool {
	for _, run := range f.Runs {
		if run.HasBlameInfo() {
			return true
		}
	}
	return false
}

// AnyNone reports whether any record in the file has severity "none".
func (f *File) AnyNone() bool {
	for _, run := range f.Runs {
		if run.AnyNone() {
			return true
		}
	}
	return false
}

func distinctToolNames(runs []*Run) []string {
	seen := map[string]bool{}
	var names []string
	for _, run := range runs {
		name := run.ToolName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func combineFilterStats(runs []*Run) *filter.Stats {
	var combined *filter.Stats
	for _, run := range runs {
		stats := run.FilterStats()
		if stats == nil {
			continue
		}
		if combined == nil {
			combined = stats.Copy()
			continue
		}
		combined.Add(stats)
	}
	return combined
}
