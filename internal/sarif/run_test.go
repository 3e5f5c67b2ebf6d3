// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package sarif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/sarif-tools/internal/filter"
)

func testRun(results ...map[string]any) *Run {
	list := make([]any, 0, len(results))
	for _, result := range results {
		list = append(list, result)
	}
	return NewRun(map[string]any{
		"tool": map[string]any{
			"driver": map[string]any{"name": "MyScanner"},
		},
		"results": list,
	})
}

func mustFilter(t *testing.T, yaml string) *filter.Config {
	t.Helper()
	cfg, err := filter.Parse("test.yaml", []byte(yaml))
	require.NoError(t, err)
	return cfg
}

func TestRunToolName(t *testing.T) {
	run := testRun()
	assert.Equal(t, "MyScanner", run.ToolName())
	assert.Empty(t, run.ConversionToolNameOf())
}

func TestRunRecords(t *testing.T) {
	run := testRun(
		testResult("CA1", "src/a.py", 10),
		testResult("CA2", "src/b.py", 20),
	)
	records := run.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "src/a.py", records[0].Location)
	assert.Equal(t, 2, run.ResultCount())
	assert.Nil(t, run.FilterStats())
}

func TestAutotrimCommonPrefix(t *testing.T) {
	run := testRun(
		testResult("CA1", `C:\a\b\f1.py`, 1),
		testResult("CA2", `C:\a\b\c\f2.py`, 2),
	)
	run.InitPathTrimming(true, nil)

	records := run.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "f1.py", records[0].Location)
	assert.Equal(t, `c\f2.py`, records[1].Location)
}

func TestAutotrimNeedsTwoDistinctLocations(t *testing.T) {
	run := testRun(
		testResult("CA1", "src/deep/f1.py", 1),
		testResult("CA2", "src/deep/f1.py", 2),
	)
	run.InitPathTrimming(true, nil)

	for _, record := range run.Records() {
		assert.Equal(t, "src/deep/f1.py", record.Location)
	}
}

func TestAutotrimStopsAtSeparatorBoundary(t *testing.T) {
	run := testRun(
		testResult("CA1", "src/alpha.py", 1),
		testResult("CA2", "src/alps.py", 2),
	)
	run.InitPathTrimming(true, nil)

	records := run.Records()
	assert.Equal(t, "alpha.py", records[0].Location, "partial component 'al' must not be cut")
	assert.Equal(t, "alps.py", records[1].Location)
}

func TestExplicitTrimPrefixCaseInsensitive(t *testing.T) {
	run := testRun(testResult("CA1", "C:/Work/Project/f.py", 1))
	run.InitPathTrimming(false, []string{"c:/work/project"})

	assert.Equal(t, "f.py", run.Records()[0].Location)
}

func TestExplicitPrefixCoversAutotrim(t *testing.T) {
	run := testRun(
		testResult("CA1", "repo/src/f1.py", 1),
		testResult("CA2", "repo/src/f2.py", 2),
	)
	run.InitPathTrimming(true, []string{"repo/src/"})

	records := run.Records()
	assert.Equal(t, "f1.py", records[0].Location)
	assert.Equal(t, "f2.py", records[1].Location)
}

func TestCommonPathPrefix(t *testing.T) {
	tests := []struct {
		name      string
		locations []string
		want      string
	}{
		{"windows paths", []string{`C:\a\b\f1.py`, `C:\a\b\c\f2.py`}, `C:\a\b\`},
		{"posix paths", []string{"src/a/f1.py", "src/b/f2.py"}, "src/"},
		{"single location", []string{"src/f1.py"}, ""},
		{"duplicates only", []string{"src/f1.py", "src/f1.py"}, ""},
		{"no shared separator", []string{"alpha.py", "alps.py"}, ""},
		{"nothing shared", []string{"a/f.py", "b/f.py"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, commonPathPrefix(tc.locations))
		})
	}
}

func TestFilterCountsEachResultOncePerPass(t *testing.T) {
	run := testRun(
		testResult("CA1", "src/a.py", 10),
		testResult("CA2", "src/b.py", 20),
	)
	run.InitFilter(mustFilter(t, "include:\n  - rule: CA1\n"))

	// Repeated access must not re-run the filter.
	run.Records()
	run.Results()
	run.Records()

	stats := run.FilterStats()
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.FilteredIn)
	assert.Equal(t, 1, stats.FilteredOut)
	assert.Equal(t, 1, run.ResultCount())
}

func TestFilterSeesTrimmedLocations(t *testing.T) {
	run := testRun(
		testResult("CA1", "/work/project/src/a.py", 10),
		testResult("CA2", "/work/project/vendor/b.py", 20),
	)
	run.InitPathTrimming(false, []string{"/work/project"})
	run.InitFilter(mustFilter(t, "exclude:\n  - location: 'vendor/**'\n"))

	records := run.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "src/a.py", records[0].Location)
}

func TestRehydrateStatsFromConversion(t *testing.T) {
	run := NewRun(map[string]any{
		"tool": map[string]any{"driver": map[string]any{"name": "MyScanner"}},
		"conversion": map[string]any{
			"tool": map[string]any{
				"driver": map[string]any{
					"name": ConversionToolName,
					"properties": map[string]any{
						"processed": "2026-01-15T10:15:00Z",
						"filtered": map[string]any{
							"filter": "my-filter.yaml",
							"in":     float64(2),
							"out":    float64(5),
							"default": map[string]any{
								"noProperty":   float64(1),
								"noLineNumber": float64(0),
							},
						},
					},
				},
			},
		},
		"results": []any{},
	})

	stats := run.FilterStats()
	require.NotNil(t, stats)
	assert.Equal(t, "my-filter.yaml", stats.Description)
	assert.Equal(t, 2, stats.FilteredIn)
	assert.Equal(t, 5, stats.FilteredOut)
	assert.Equal(t, 1, stats.MissingProperty)
	assert.True(t, stats.Rehydrated)
	assert.Equal(t, ConversionToolName, run.ConversionToolNameOf())
}

func TestHasBlameInfo(t *testing.T) {
	plain := testRun(testResult("CA1", "a.py", 1))
	assert.False(t, plain.HasBlameInfo())

	withBlame := testResult("CA2", "b.py", 2)
	withBlame["properties"] = map[string]any{
		"blame": map[string]any{"author-mail": "<dev@example.com>"},
	}
	blamed := testRun(testResult("CA1", "a.py", 1), withBlame)
	assert.True(t, blamed.HasBlameInfo())
	assert.Equal(t, "dev@example.com", blamed.Records()[1].Author)
}

func TestAnyNone(t *testing.T) {
	result := testResult("CA1", "a.py", 1)
	result["level"] = "none"
	assert.True(t, testRun(result).AnyNone())
	assert.False(t, testRun(testResult("CA2", "b.py", 2)).AnyNone())
}
