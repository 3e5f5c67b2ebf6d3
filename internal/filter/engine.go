// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package filter

import (
	"fmt"
	"time"

	"github.com/microsoft/sarif-tools/internal/jsonpath"
)

// resultLinePath extracts the line number a result is attributed to, for
// the check-line-number setting.
var resultLinePath = jsonpath.MustParse("locations[0].physicalLocation.region.startLine")

// Engine applies a compiled filter config to SARIF results and accumulates
// stats. The zero-value Engine is a passthrough that retains everything and
// keeps no stats.
type Engine struct {
	cfg   *Config
	stats *Stats

	// TrimLocation, when set, is applied to resolved values of path-like
	// (uri) fields before matching, so that location rules see the same
	// trimmed paths that appear in rendered output.
	TrimLocation func(string) string
}

// NewEngine creates an engine for the given config. A nil config gives a
// passthrough engine.
func NewEngine(cfg *Config) *Engine {
	e := &Engine{}
	e.Configure(cfg)
	return e
}

// Configure replaces the engine's config, discarding any existing stats
// (including rehydrated ones).
func (e *Engine) Configure(cfg *Config) {
	e.cfg = cfg
	if cfg != nil {
		e.stats = NewStats(cfg.Description)
	} else {
		e.stats = nil
	}
}

// Rehydrate restores stats recorded in a SARIF file written by a previous
// run. Configure discards them.
func (e *Engine) Rehydrate(stats *Stats, appliedAt time.Time) {
	if stats != nil {
		stats.AppliedAt = appliedAt
		e.stats = stats
	}
}

// Stats returns the accumulated filter stats, or nil when no filter has
// been configured.
func (e *Engine) Stats() *Stats {
	return e.stats
}

// Active reports whether the engine has any rules to apply.
func (e *Engine) Active() bool {
	return e.cfg.Active()
}

// Apply filters a list of results, returning those retained and updating
// the stats exactly once per result. With no rules configured the input is
// returned unchanged and no stats are touched. Retained results get a
// "filtered" entry in their property bag recording the decision.
func (e *Engine) Apply(results []map[string]any) []map[string]any {
	if !e.Active() {
		return results
	}
	e.stats.AppliedAt = time.Now()
	retained := make([]map[string]any, 0, len(results))
	for _, result := range results {
		if e.apply(result) {
			retained = append(retained, result)
		}
	}
	return retained
}

// decision is the outcome of evaluating one rule set against one result.
type decision struct {
	matched  []map[string]string // spec of the first matching group, if any
	state    string              // "included", "noProperty" or "noLineNumber"
	warnings []string
}

// apply decides one result and updates stats. Inclusion is evaluated
// first; an empty include set passes everything. Exclusion is evaluated
// second and wins over inclusion.
func (e *Engine) apply(result map[string]any) bool {
	// Any filter log from a previous tool run is stale.
	if bag, ok := result["properties"].(map[string]any); ok {
		delete(bag, "filtered")
	}

	included := decision{state: "included", matched: []map[string]string{}}
	if len(e.cfg.Include) > 0 {
		included = e.evalGroups(result, e.cfg.Include)
		if included.matched == nil {
			e.stats.FilteredOut++
			return false
		}
	}
	if len(e.cfg.Exclude) > 0 {
		if excluded := e.evalGroups(result, e.cfg.Exclude); excluded.matched != nil {
			e.stats.FilteredOut++
			return false
		}
	}

	switch included.state {
	case "noLineNumber":
		e.stats.NoLineNumber++
	case "noProperty":
		e.stats.MissingProperty++
	default:
		e.stats.FilteredIn++
	}

	log := map[string]any{
		"state":         included.state,
		"matchedFilter": included.matched,
		"filter":        e.stats.Description,
	}
	if len(included.warnings) > 0 {
		log["warnings"] = included.warnings
	}
	bag, ok := result["properties"].(map[string]any)
	if !ok {
		bag = map[string]any{}
		result["properties"] = bag
	}
	bag["filtered"] = log
	return true
}

// evalGroups evaluates an OR-list of AND-groups against one result.
// A rule whose field resolves to no value, or which is skipped because the
// result has no convincing line number, falls back to its effective
// default-include setting instead of failing the group outright.
func (e *Engine) evalGroups(result map[string]any, groups []RuleGroup) decision {
	dec := decision{state: "included", matched: []map[string]string{}}
	unconvincingLine := hasUnconvincingLineNumber(result)
	defaultIncludedNoProp := false

	matchedAny := false
	for _, group := range groups {
		matched := true
		for i := range group.Rules {
			rule := &group.Rules[i]
			if rule.CheckLineNumber() && unconvincingLine {
				dec.warnings = append(dec.warnings, fmt.Sprintf(
					"Field %q not checked due to missing line number information", rule.Field))
				continue
			}
			values := rule.path.Resolve(result)
			if rule.path.LastKey() == "uri" && e.TrimLocation != nil {
				for j, v := range values {
					values[j] = e.TrimLocation(v)
				}
			}
			if len(values) > 0 {
				if rule.matches(values) {
					continue
				}
			} else if rule.DefaultInclude() {
				dec.warnings = append(dec.warnings, fmt.Sprintf(
					"Field %q is missing but the result included as default-include is true", rule.Field))
				defaultIncludedNoProp = true
				continue
			}
			matched = false
			break
		}
		if matched {
			dec.matched = append(dec.matched, group.Spec()...)
			matchedAny = true
			break
		}
	}
	if !matchedAny {
		dec.matched = nil
	}
	if len(dec.warnings) > 0 {
		if defaultIncludedNoProp {
			dec.state = "noProperty"
		} else {
			dec.state = "noLineNumber"
		}
	}
	return dec
}

// hasUnconvincingLineNumber reports whether the result's line number is
// absent or the placeholder "1".
func hasUnconvincingLineNumber(result map[string]any) bool {
	lines := resultLinePath.Resolve(result)
	return len(lines) == 0 || lines[0] == "" || lines[0] == "1"
}
