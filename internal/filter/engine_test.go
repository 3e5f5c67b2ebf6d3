// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeResult builds a minimal SARIF result with a convincing line number
// so that rules are actually checked under the default settings.
func makeResult(ruleID string, extra map[string]any) map[string]any {
	result := map[string]any{
		"ruleId": ruleID,
		"locations": []any{
			map[string]any{
				"physicalLocation": map[string]any{
					"artifactLocation": map[string]any{"uri": "src/main.py"},
					"region":           map[string]any{"startLine": float64(42)},
				},
			},
		},
	}
	for k, v := range extra {
		result[k] = v
	}
	return result
}

func withAuthorMail(mail string) map[string]any {
	return map[string]any{
		"properties": map[string]any{
			"blame": map[string]any{"author-mail": mail},
		},
	}
}

func mustParse(t *testing.T, yaml string) *Config {
	t.Helper()
	cfg, err := Parse("test filter", []byte(yaml))
	require.NoError(t, err)
	return cfg
}

func TestPassthroughEngine(t *testing.T) {
	e := NewEngine(nil)
	results := []map[string]any{makeResult("A", nil), makeResult("B", nil)}
	retained := e.Apply(results)
	assert.Equal(t, results, retained)
	assert.Nil(t, e.Stats())
	// No property bag is created for unfiltered results.
	_, hasBag := results[0]["properties"]
	assert.False(t, hasBag)
}

func TestEmptyConfigIsPassthrough(t *testing.T) {
	e := NewEngine(mustParse(t, "description: nothing\n"))
	results := []map[string]any{makeResult("A", nil)}
	assert.Equal(t, results, e.Apply(results))
	assert.Equal(t, 0, e.Stats().FilteredIn)
}

func TestIncludeOnly(t *testing.T) {
	e := NewEngine(mustParse(t, "include:\n  - rule: test-rule\n"))
	keep := makeResult("test-rule", nil)
	drop := makeResult("other-rule", nil)

	retained := e.Apply([]map[string]any{keep, drop})
	require.Len(t, retained, 1)
	assert.Equal(t, "test-rule", retained[0]["ruleId"])
	assert.Equal(t, 1, e.Stats().FilteredIn)
	assert.Equal(t, 1, e.Stats().FilteredOut)

	bag := retained[0]["properties"].(map[string]any)
	log := bag["filtered"].(map[string]any)
	assert.Equal(t, "included", log["state"])
	assert.Equal(t, "test filter", log["filter"])
	assert.Equal(t, []map[string]string{{"rule": "test-rule"}}, log["matchedFilter"])
}

func TestExcludeWinsOverInclude(t *testing.T) {
	e := NewEngine(mustParse(t, "include:\n  - rule: test-rule\nexclude:\n  - rule: test-rule\n"))
	retained := e.Apply([]map[string]any{makeResult("test-rule", nil)})
	assert.Empty(t, retained)
	assert.Equal(t, 0, e.Stats().FilteredIn)
	assert.Equal(t, 1, e.Stats().FilteredOut)
}

func TestExcludeByAuthorMailSubstring(t *testing.T) {
	e := NewEngine(mustParse(t, "exclude:\n  - author-mail: bot@microsoft.com\n"))
	excluded := makeResult("A", withAuthorMail("x@bot@microsoft.com"))
	included := makeResult("B", withAuthorMail("dev@microsoft.com"))

	retained := e.Apply([]map[string]any{excluded, included})
	require.Len(t, retained, 1)
	assert.Equal(t, "B", retained[0]["ruleId"])
	assert.Equal(t, 1, e.Stats().FilteredIn)
	assert.Equal(t, 1, e.Stats().FilteredOut)
}

func TestSubstringMatchIsCaseInsensitive(t *testing.T) {
	e := NewEngine(mustParse(t, "include:\n  - author-mail: BOT@Microsoft.COM\n"))
	retained := e.Apply([]map[string]any{makeResult("A", withAuthorMail("bot@microsoft.com"))})
	assert.Len(t, retained, 1)
}

func TestRegexRule(t *testing.T) {
	e := NewEngine(mustParse(t, `include:
  - author-mail: /myname\..*\.com/
`))
	match := makeResult("A", withAuthorMail("user@myname.example.com"))
	noMatch := makeResult("B", withAuthorMail("user@other.example.com"))
	retained := e.Apply([]map[string]any{match, noMatch})
	require.Len(t, retained, 1)
	assert.Equal(t, "A", retained[0]["ruleId"])
}

func TestAndGroupRequiresAllRules(t *testing.T) {
	cfg := mustParse(t, `include:
  - - rule: test-rule
    - author-mail: "@example.com"
`)
	both := makeResult("test-rule", withAuthorMail("dev@example.com"))
	ruleOnly := makeResult("test-rule", withAuthorMail("dev@elsewhere.org"))

	e := NewEngine(cfg)
	retained := e.Apply([]map[string]any{both, ruleOnly})
	require.Len(t, retained, 1)
	assert.Equal(t, both, retained[0])
}

func TestOrAcrossGroups(t *testing.T) {
	e := NewEngine(mustParse(t, "include:\n  - rule: aaa\n  - rule: bbb\n"))
	retained := e.Apply([]map[string]any{makeResult("aaa", nil), makeResult("bbb", nil), makeResult("ccc", nil)})
	assert.Len(t, retained, 2)
}

func TestMissingFieldDefaultInclude(t *testing.T) {
	// author-mail missing from the result: retained by default with a
	// noProperty state, counted separately from clean inclusions.
	e := NewEngine(mustParse(t, "include:\n  - author-mail: dev@example.com\n"))
	result := makeResult("A", nil)
	retained := e.Apply([]map[string]any{result})
	require.Len(t, retained, 1)
	assert.Equal(t, 0, e.Stats().FilteredIn)
	assert.Equal(t, 1, e.Stats().MissingProperty)

	log := result["properties"].(map[string]any)["filtered"].(map[string]any)
	assert.Equal(t, "noProperty", log["state"])
	assert.NotEmpty(t, log["warnings"])
}

func TestMissingFieldDefaultIncludeFalse(t *testing.T) {
	e := NewEngine(mustParse(t, `configuration:
  default-include: false
include:
  - author-mail: dev@example.com
`))
	retained := e.Apply([]map[string]any{makeResult("A", nil)})
	assert.Empty(t, retained)
	assert.Equal(t, 1, e.Stats().FilteredOut)
}

func TestUnconvincingLineNumberSkipsRule(t *testing.T) {
	cfg := mustParse(t, "include:\n  - author-mail: dev@example.com\n")
	// Line number 1 is the placeholder: blame attribution is meaningless,
	// so the rule is not checked and the result is retained by default.
	result := makeResult("A", withAuthorMail("other@example.com"))
	result["locations"].([]any)[0].(map[string]any)["physicalLocation"].(map[string]any)["region"] = map[string]any{"startLine": float64(1)}

	e := NewEngine(cfg)
	retained := e.Apply([]map[string]any{result})
	require.Len(t, retained, 1)
	assert.Equal(t, 1, e.Stats().NoLineNumber)

	log := result["properties"].(map[string]any)["filtered"].(map[string]any)
	assert.Equal(t, "noLineNumber", log["state"])
}

func TestCheckLineNumberDisabled(t *testing.T) {
	cfg := mustParse(t, `configuration:
  check-line-number: false
include:
  - author-mail: dev@example.com
`)
	result := makeResult("A", withAuthorMail("other@example.com"))
	result["locations"] = []any{}

	e := NewEngine(cfg)
	retained := e.Apply([]map[string]any{result})
	// The rule is checked; the field exists but does not match.
	assert.Empty(t, retained)
}

func TestExistenceRule(t *testing.T) {
	e := NewEngine(mustParse(t, `configuration:
  check-line-number: false
  default-include: false
exclude:
  - suppression:
`))
	suppressed := makeResult("A", map[string]any{
		"suppressions": []any{map[string]any{"kind": "inSource"}},
	})
	plain := makeResult("B", nil)

	retained := e.Apply([]map[string]any{suppressed, plain})
	require.Len(t, retained, 1)
	assert.Equal(t, "B", retained[0]["ruleId"])
}

func TestAnyResolvedValueMatches(t *testing.T) {
	cfg := mustParse(t, "include:\n  - suppression: external\n")
	cfg.Settings.CheckLineNumber = false
	result := makeResult("A", map[string]any{
		"suppressions": []any{
			map[string]any{"kind": "inSource"},
			map[string]any{"kind": "external"},
		},
	})
	e := NewEngine(cfg)
	assert.Len(t, e.Apply([]map[string]any{result}), 1)
	assert.Equal(t, 1, e.Stats().FilteredIn)
}

func TestApplyTwiceDoublesStatsOnly(t *testing.T) {
	e := NewEngine(mustParse(t, "include:\n  - rule: test-rule\n"))
	results := []map[string]any{makeResult("test-rule", nil), makeResult("other", nil)}

	first := e.Apply(results)
	second := e.Apply(results)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, e.Stats().FilteredIn)
	assert.Equal(t, 2, e.Stats().FilteredOut)
}

func TestTrimLocationAppliedToLocationRules(t *testing.T) {
	// The raw uri is src/main.py. With a trimmer stripping the src/
	// prefix, a rule against "src/**" no longer matches: location rules
	// see the same trimmed paths as the rendered output.
	e := NewEngine(mustParse(t, "include:\n  - location: 'src/**'\n"))
	e.TrimLocation = func(loc string) string { return strings.TrimPrefix(loc, "src/") }
	retained := e.Apply([]map[string]any{makeResult("A", nil)})
	assert.Empty(t, retained)

	untrimmed := NewEngine(mustParse(t, "include:\n  - location: 'src/**'\n"))
	assert.Len(t, untrimmed.Apply([]map[string]any{makeResult("A", nil)}), 1)
}

func TestRehydrateThenConfigureDiscards(t *testing.T) {
	e := &Engine{}
	stats := StatsFromProperties(map[string]any{
		"filter": "old filter",
		"in":     float64(10),
		"out":    float64(5),
		"default": map[string]any{
			"noProperty": float64(3),
		},
	})
	require.NotNil(t, stats)
	e.Rehydrate(stats, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 10, e.Stats().FilteredIn)
	assert.Equal(t, 5, e.Stats().FilteredOut)
	assert.Equal(t, 3, e.Stats().MissingProperty)
	assert.True(t, e.Stats().Rehydrated)

	e.Configure(mustParse(t, "include:\n  - rule: X\n"))
	assert.Equal(t, 0, e.Stats().FilteredIn)
	assert.False(t, e.Stats().Rehydrated)
}

func TestStatsAddAndString(t *testing.T) {
	a := NewStats("filter a")
	a.FilteredIn = 3
	a.FilteredOut = 1
	b := NewStats("filter b")
	b.FilteredIn = 2
	b.NoLineNumber = 4

	sum := a.Copy()
	sum.Add(b)
	assert.Equal(t, "filter a, filter b", sum.Description)
	assert.Equal(t, 5, sum.FilteredIn)
	assert.Equal(t, 1, sum.FilteredOut)
	assert.Equal(t, 4, sum.NoLineNumber)
	// Adding must not mutate the child.
	assert.Equal(t, 3, a.FilteredIn)

	assert.Contains(t, sum.String(), "1 filtered out, 5 passed the filter")
	assert.Contains(t, sum.String(), "4 included by default for lacking line number")
}

func TestStatsPropertiesRoundTrip(t *testing.T) {
	s := NewStats("my filter")
	s.FilteredIn = 7
	s.FilteredOut = 2
	s.MissingProperty = 1
	s.NoLineNumber = 3

	bag := s.ToProperties()
	restored := StatsFromProperties(bag)
	require.NotNil(t, restored)
	assert.Equal(t, s.FilteredIn, restored.FilteredIn)
	assert.Equal(t, s.FilteredOut, restored.FilteredOut)
	assert.Equal(t, s.MissingProperty, restored.MissingProperty)
	assert.Equal(t, s.NoLineNumber, restored.NoLineNumber)
	assert.True(t, restored.Rehydrated)

	assert.Nil(t, StatsFromProperties(nil))
	assert.Nil(t, StatsFromProperties(map[string]any{"in": float64(1)}))
}
