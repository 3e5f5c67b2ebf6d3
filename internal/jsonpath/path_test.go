// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package jsonpath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testResult is a SARIF result with a couple of locations, suppressions and
// a blame property bag.
const testResult = `{
  "ruleId": "SA1001",
  "level": "warning",
  "message": {"text": "Something looks off"},
  "locations": [
    {"physicalLocation": {"artifactLocation": {"uri": "src/a.py"}, "region": {"startLine": 10}}},
    {"physicalLocation": {"artifactLocation": {"uri": "src/b.py"}, "region": {"startLine": 20}}}
  ],
  "suppressions": [{"kind": "inSource"}, {"kind": "external"}],
  "properties": {"blame": {"author-mail": "dev@example.com", "boundary": true}}
}`

func decodeResult(t *testing.T) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(testResult), &result))
	return result
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"empty key", "a..b"},
		{"trailing dot", "a.b."},
		{"unbalanced open", "a[0.b"},
		{"unbalanced close", "a]0[.b"},
		{"bad index", "a[x].b"},
		{"negative index", "a[-1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	result := decodeResult(t)

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"simple key", "ruleId", []string{"SA1001"}},
		{"nested key", "message.text", []string{"Something looks off"}},
		{"wildcard array", "locations[*].physicalLocation.artifactLocation.uri", []string{"src/a.py", "src/b.py"}},
		{"wildcard kinds", "suppressions[*].kind", []string{"inSource", "external"}},
		{"fixed index", "locations[1].physicalLocation.region.startLine", []string{"20"}},
		{"number stringified", "locations[0].physicalLocation.region.startLine", []string{"10"}},
		{"bool stringified", "properties.blame.boundary", []string{"true"}},
		{"missing key", "properties.nosuchthing", nil},
		{"missing nested key", "properties.blame.committer", nil},
		{"index out of range", "locations[5].physicalLocation.artifactLocation.uri", nil},
		{"key into array", "locations.physicalLocation", nil},
		{"index into object", "message[0]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, path.Resolve(result))
		})
	}
}

func TestResolveObjectValueSkipped(t *testing.T) {
	result := decodeResult(t)
	path := MustParse("properties.blame")
	// blame resolves to an object, which has no scalar string form.
	assert.Empty(t, path.Resolve(result))
}

func TestLastKey(t *testing.T) {
	assert.Equal(t, "uri", MustParse("locations[*].physicalLocation.artifactLocation.uri").LastKey())
	assert.Equal(t, "ruleId", MustParse("ruleId").LastKey())
	assert.Equal(t, "kind", MustParse("suppressions[*].kind").LastKey())
}

func TestParseRoundTrip(t *testing.T) {
	path := MustParse(" properties.blame.author-mail ")
	assert.Equal(t, "properties.blame.author-mail", path.String())
	result := decodeResult(t)
	assert.Equal(t, []string{"dev@example.com"}, path.Resolve(result))
}
