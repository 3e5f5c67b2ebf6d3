// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

// Package filter implements the YAML rule language used to include or
// exclude SARIF results: substring, wildcard and regular-expression
// matching against JSONPath-addressed fields, composed as an OR-list of
// AND-groups for each of the include and exclude directions.
package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/microsoft/sarif-tools/internal/jsonpath"
)

// aliases maps commonly used field shortcuts to their full path expression.
var aliases = map[string]string{
	"author":         "properties.blame.author",
	"author-mail":    "properties.blame.author-mail",
	"committer":      "properties.blame.committer",
	"committer-mail": "properties.blame.committer-mail",
	"location":       "locations[*].physicalLocation.artifactLocation.uri",
	"rule":           "ruleId",
	"suppression":    "suppressions[*].kind",
}

// Settings holds the configuration switches that can be set globally for a
// filter and overridden per rule.
type Settings struct {
	// DefaultInclude decides the outcome of a rule whose field does not
	// resolve to any value on the result under test.
	DefaultInclude bool
	// CheckLineNumber skips rules on results whose line number is missing
	// or the placeholder "1", since such results cannot be meaningfully
	// attributed to a line (and hence to a blame author).
	CheckLineNumber bool
}

// defaultSettings applies when a filter file sets nothing.
var defaultSettings = Settings{DefaultInclude: true, CheckLineNumber: true}

// Config is a parsed, compiled filter file. Immutable after parsing.
type Config struct {
	Description string
	Settings    Settings
	Include     []RuleGroup
	Exclude     []RuleGroup
}

// Active reports whether the config has any rules at all. An inactive
// config passes every result and keeps no stats.
func (c *Config) Active() bool {
	return c != nil && (len(c.Include) > 0 || len(c.Exclude) > 0)
}

// RuleGroup is a conjunction of rules: it matches a result only if every
// rule in it matches.
type RuleGroup struct {
	Rules []Rule
}

// Spec returns the group in the field->pattern form it was written in,
// for recording which filter matched in the result's property bag.
func (g RuleGroup) Spec() []map[string]string {
	spec := make([]map[string]string, 0, len(g.Rules))
	for _, rule := range g.Rules {
		spec = append(spec, map[string]string{rule.Field: rule.Pattern})
	}
	return spec
}

// matchKind tags the pattern variant of a rule, resolved once at parse
// time rather than re-inspected per result.
type matchKind int

const (
	matchExists matchKind = iota
	matchSubstring
	matchRegex
)

// Rule is one compiled filter condition.
type Rule struct {
	// Field is the field name or alias as written in the filter file.
	Field string
	// Pattern is the raw pattern as written, empty for existence checks.
	Pattern string

	path     jsonpath.Path
	kind     matchKind
	re       *regexp.Regexp
	lowered  string
	settings Settings
}

// Path returns the compiled field path, with any alias expanded.
func (r *Rule) Path() jsonpath.Path {
	return r.path
}

// DefaultInclude returns the effective default-include setting at this
// rule's scope.
func (r *Rule) DefaultInclude() bool {
	return r.settings.DefaultInclude
}

// CheckLineNumber returns the effective check-line-number setting at this
// rule's scope.
func (r *Rule) CheckLineNumber() bool {
	return r.settings.CheckLineNumber
}

// matches reports whether any of the resolved values satisfies the rule's
// pattern. The caller guarantees at least one value.
func (r *Rule) matches(values []string) bool {
	switch r.kind {
	case matchExists:
		return true
	case matchRegex:
		for _, v := range values {
			if r.re.MatchString(v) {
				return true
			}
		}
		return false
	default:
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), r.lowered) {
				return true
			}
		}
		return false
	}
}

// Load reads and parses a filter file. The filter description defaults to
// the file's base name.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter file %s: %w", path, err)
	}
	cfg, err := Parse(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("filter file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses filter YAML. name is used as the default description.
// Any problem here is a configuration error surfaced before any result is
// processed.
func Parse(name string, data []byte) (*Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	for key := range doc {
		switch key {
		case "description", "configuration", "include", "exclude":
		default:
			return nil, fmt.Errorf("unknown top-level key %q", key)
		}
	}

	cfg := &Config{Description: name, Settings: defaultSettings}
	if desc, ok := doc["description"].(string); ok && strings.TrimSpace(desc) != "" {
		cfg.Description = strings.TrimSpace(desc)
	}

	if raw, ok := doc["configuration"]; ok && raw != nil {
		settings, err := parseSettings(raw, cfg.Settings)
		if err != nil {
			return nil, err
		}
		cfg.Settings = settings
	}

	var err error
	if cfg.Include, err = compileGroups(doc["include"], cfg.Settings); err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	if cfg.Exclude, err = compileGroups(doc["exclude"], cfg.Settings); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return cfg, nil
}

// parseSettings applies a configuration map on top of base settings.
func parseSettings(raw any, base Settings) (Settings, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return base, fmt.Errorf("configuration must be a map")
	}
	for key, value := range m {
		b, ok := value.(bool)
		if !ok {
			return base, fmt.Errorf("configuration key %q must be a boolean", key)
		}
		switch key {
		case "default-include":
			base.DefaultInclude = b
		case "check-line-number":
			base.CheckLineNumber = b
		default:
			return base, fmt.Errorf("unknown configuration key %q", key)
		}
	}
	return base, nil
}

// compileGroups compiles the include or exclude list. Each top-level entry
// is OR'd; an entry that is a map forms an AND-group of its keys, an entry
// that is a list of maps forms an AND-group of all their keys.
func compileGroups(raw any, global Settings) ([]RuleGroup, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("must be a list of rules")
	}
	var groups []RuleGroup
	for _, entry := range list {
		if entry == nil {
			continue
		}
		var maps []map[string]any
		switch e := entry.(type) {
		case map[string]any:
			maps = []map[string]any{e}
		case []any:
			for _, sub := range e {
				m, ok := sub.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("rule group entries must be maps, got %T", sub)
				}
				maps = append(maps, m)
			}
		default:
			return nil, fmt.Errorf("rule entries must be maps or lists of maps, got %T", entry)
		}
		var group RuleGroup
		for _, m := range maps {
			fields := make([]string, 0, len(m))
			for field := range m {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				rule, err := compileRule(field, m[field], global)
				if err != nil {
					return nil, err
				}
				group.Rules = append(group.Rules, rule)
			}
		}
		if len(group.Rules) > 0 {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

// compileRule compiles one field->pattern condition.
func compileRule(field string, spec any, global Settings) (Rule, error) {
	field = strings.TrimSpace(field)
	resolved := field
	if expansion, ok := aliases[field]; ok {
		resolved = expansion
	}
	path, err := jsonpath.Parse(resolved)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", field, err)
	}

	settings := global
	pattern := ""
	switch s := spec.(type) {
	case nil:
		// Bare field: pure existence check.
	case map[string]any:
		for key, value := range s {
			switch key {
			case "value":
				pattern = scalarPattern(value)
			case "default-include":
				b, ok := value.(bool)
				if !ok {
					return Rule{}, fmt.Errorf("rule %q: default-include must be a boolean", field)
				}
				settings.DefaultInclude = b
			case "check-line-number":
				b, ok := value.(bool)
				if !ok {
					return Rule{}, fmt.Errorf("rule %q: check-line-number must be a boolean", field)
				}
				settings.CheckLineNumber = b
			default:
				return Rule{}, fmt.Errorf("rule %q: unknown configuration key %q", field, key)
			}
		}
	default:
		pattern = scalarPattern(spec)
	}
	pattern = strings.TrimSpace(pattern)

	rule := Rule{Field: field, Pattern: pattern, path: path, settings: settings}
	switch {
	case pattern == "":
		rule.kind = matchExists
	case len(pattern) > 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/"):
		re, err := regexp.Compile("(?i)" + pattern[1:len(pattern)-1])
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: invalid regex %q: %w", field, pattern, err)
		}
		rule.kind = matchRegex
		rule.re = re
	case path.LastKey() == "uri":
		// Path-like fields use wildcard matching: the pattern is compiled
		// to a case-insensitive regex with `*` confined to one path
		// component and `**` free to cross separators.
		re, err := regexp.Compile("(?i)" + globToRegex(pattern))
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: invalid wildcard pattern %q: %w", field, pattern, err)
		}
		rule.kind = matchRegex
		rule.re = re
	default:
		rule.kind = matchSubstring
		rule.lowered = strings.ToLower(pattern)
	}
	return rule, nil
}

// scalarPattern renders a YAML scalar pattern value as a string.
func scalarPattern(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// globToRegex translates a path wildcard pattern to an unanchored regex:
// `?` matches one character except a separator, `*` zero or more except
// separators, `**` zero or more including separators. A `**/` segment may
// also match nothing, so "src/**/*.js" matches "src/c.js".
func globToRegex(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		switch {
		case strings.HasPrefix(string(runes[i:]), "**/"):
			b.WriteString(`(?:.*[/\\])?`)
			i += 3
		case strings.HasPrefix(string(runes[i:]), "**"):
			b.WriteString(`.*`)
			i += 2
		case runes[i] == '*':
			b.WriteString(`[^/\\]*`)
			i++
		case runes[i] == '?':
			b.WriteString(`[^/\\]`)
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
			i++
		}
	}
	return b.String()
}
