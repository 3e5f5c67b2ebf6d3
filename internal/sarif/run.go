// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package sarif

import (
	"strings"
	"time"

	"github.com/microsoft/sarif-tools/internal/filter"
)

// ConversionToolName is the driver name this tool writes into the
// conversion object of SARIF files it produces, and recognizes when
// loading them back to rehydrate filter stats.
const ConversionToolName = "sarif-tools"

// pathSeparators are the path separator characters recognized in location
// strings from either platform.
const pathSeparators = `/\`

// Run holds one entry of a SARIF file's top-level "runs" list (SARIF
// standard section 3.14).
type Run struct {
	Data map[string]any

	trimPrefixes  []string // uppercased, for case-insensitive matching
	engine        *filter.Engine
	cached        []Record
	cachedResults []map[string]any
}

// NewRun wraps raw run data. Filter stats recorded by a previous copy are
// restored from the conversion property bag.
func NewRun(data map[string]any) *Run {
	run := &Run{Data: data, engine: &filter.Engine{}}
	driver := conversionDriver(data)
	if name, _ := driver["name"].(string); name == ConversionToolName {
		properties, _ := driver["properties"].(map[string]any)
		if bag, ok := properties["filtered"].(map[string]any); ok {
			appliedAt := time.Time{}
			if processed, ok := properties["processed"].(string); ok {
				appliedAt, _ = time.Parse(time.RFC3339, processed)
			}
			run.engine.Rehydrate(filter.StatsFromProperties(bag), appliedAt)
		}
	}
	return run
}

// conversionDriver returns the conversion.tool.driver object, if present.
func conversionDriver(data map[string]any) map[string]any {
	conversion, _ := data["conversion"].(map[string]any)
	tool, _ := conversion["tool"].(map[string]any)
	driver, _ := tool["driver"].(map[string]any)
	return driver
}

// ToolName returns the name of the tool that produced this run.
func (r *Run) ToolName() string {
	tool, _ := r.Data["tool"].(map[string]any)
	driver, _ := tool["driver"].(map[string]any)
	name, _ := driver["name"].(string)
	return name
}

// ConversionToolNameOf returns the conversion tool's name, or "" if the
// run has no conversion object.
func (r *Run) ConversionToolNameOf() string {
	name, _ := conversionDriver(r.Data)["name"].(string)
	return name
}

// rawResults returns the run's unfiltered results.
func (r *Run) rawResults() []map[string]any {
	list, _ := r.Data["results"].([]any)
	results := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if result, ok := entry.(map[string]any); ok {
			results = append(results, result)
		}
	}
	return results
}

// InitFilter configures filtering for this run and invalidates the record
// cache. An inactive config clears any previous filter.
func (r *Run) InitFilter(cfg *filter.Config) {
	r.engine.Configure(cfg)
	r.engine.TrimLocation = r.trimLocation
	r.cached = nil
	r.cachedResults = nil
}

// InitPathTrimming sets up path prefix stripping for subsequently obtained
// records. Explicit prefixes are stripped case-insensitively; with
// autotrim, the longest common prefix of this run's locations, cut back to
// a path separator boundary, is stripped as well. Autotrim needs at least
// two distinct locations to say anything about a common prefix.
func (r *Run) InitPathTrimming(autotrim bool, prefixes []string) {
	var upper []string
	for _, prefix := range prefixes {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			upper = append(upper, strings.ToUpper(trimmed))
		}
	}
	if autotrim {
		// The common prefix is computed over the raw, untrimmed results
		// so that no filter pass (and no stats counting) happens here.
		var locations []string
		for _, result := range r.rawResults() {
			location, _ := readResultLocation(result)
			locations = append(locations, strings.TrimSpace(location))
		}
		if auto := commonPathPrefix(locations); auto != "" {
			auto = strings.ToUpper(auto)
			covered := false
			for _, p := range upper {
				if strings.HasPrefix(p, auto) {
					covered = true
					break
				}
			}
			if !covered {
				upper = append(upper, auto)
			}
		}
	}
	r.trimPrefixes = upper
	r.cached = nil
	r.cachedResults = nil
}

// commonPathPrefix computes the longest common prefix of the given
// locations, truncated back to the last path separator so a partial
// component is never cut. Fewer than two distinct locations give no
// prefix.
func commonPathPrefix(locations []string) string {
	distinct := map[string]bool{}
	for _, loc := range locations {
		if loc != "" {
			distinct[loc] = true
		}
	}
	if len(distinct) < 2 {
		return ""
	}
	prefix := ""
	first := true
	for loc := range distinct {
		if first {
			prefix = loc
			first = false
			continue
		}
		max := len(prefix)
		if len(loc) < max {
			max = len(loc)
		}
		i := 0
		for i < max && prefix[i] == loc[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			return ""
		}
	}
	cut := strings.LastIndexAny(prefix, pathSeparators)
	if cut < 0 {
		return ""
	}
	return prefix[:cut+1]
}

// trimLocation strips the first matching configured prefix from a
// location, along with a path separator left dangling at the start.
func (r *Run) trimLocation(location string) string {
	if len(r.trimPrefixes) == 0 {
		return location
	}
	upper := strings.ToUpper(location)
	for _, prefix := range r.trimPrefixes {
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		rest := location[len(prefix):]
		if len(rest) > 0 && strings.ContainsRune(pathSeparators, rune(rest[0])) {
			rest = rest[1:]
		}
		return rest
	}
	return location
}

// Results returns the run's results, filtered when a filter is
// configured. These are Result objects as defined in SARIF standard
// section 3.27. The filtered list is cached so that filter stats count
// each result exactly once per extraction pass, however often accessors
// are called.
func (r *Run) Results() []map[string]any {
	if r.cachedResults == nil {
		r.cachedResults = r.engine.Apply(r.rawResults())
	}
	return r.cachedResults
}

// Records returns the flattened records for this run's filtered results.
// The records are cached; initializing a filter or trimming invalidates
// the cache, so filter stats count each result exactly once per pass.
func (r *Run) Records() []Record {
	if r.cached == nil {
		withBlame := r.HasBlameInfo()
		results := r.Results()
		records := make([]Record, 0, len(results))
		for _, result := range results {
			records = append(records, resultToRecord(result, r.ToolName(), r.trimLocation, withBlame))
		}
		r.cached = records
	}
	return r.cached
}

// ResultCount returns the number of results after filtering.
func (r *Run) ResultCount() int {
	return len(r.Records())
}

// FilterStats returns the stats from this run's filter, or nil when no
// filter has been applied.
func (r *Run) FilterStats() *filter.Stats {
	return r.engine.Stats()
}

// HasBlameInfo reports whether any result in this run carries blame
// properties.
func (r *Run) HasBlameInfo() bool {
	for _, result := range r.rawResults() {
		properties, _ := result["properties"].(map[string]any)
		if _, ok := properties["blame"]; ok {
			return true
		}
	}
	return false
}

// AnyNone reports whether any record has severity "none".
func (r *Run) AnyNone() bool {
	for _, record := range r.Records() {
		if record.Severity == SeverityNone {
			return true
		}
	}
	return false
}
