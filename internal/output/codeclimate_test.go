// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

func TestWriteCodeClimate(t *testing.T) {
	records := []sarif.Record{
		testRecord(sarif.SeverityError, "E100", "null deref", "src/a.py", "10"),
		testRecord(sarif.SeverityNote, "N1", "style nit", "src/b.py", "n/a"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCodeClimate(&buf, records))

	var issues []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &issues))
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, "issue", first["type"])
	assert.Equal(t, "E100", first["check_name"])
	assert.Equal(t, "null deref", first["description"])
	assert.Equal(t, "major", first["severity"])
	assert.Equal(t, []any{"Bug Risk"}, first["categories"])
	assert.Len(t, first["fingerprint"], 32)

	location := first["location"].(map[string]any)
	assert.Equal(t, "src/a.py", location["path"])
	assert.Equal(t, float64(10), location["lines"].(map[string]any)["begin"])

	second := issues[1]
	assert.Equal(t, "info", second["severity"], "note maps to info")
	assert.Equal(t, float64(1), second["location"].(map[string]any)["lines"].(map[string]any)["begin"],
		"non-numeric line degrades to 1")
}

func TestFingerprintStable(t *testing.T) {
	a := fingerprint("desc", "path.py", "3")
	b := fingerprint("desc", "path.py", "3")
	c := fingerprint("desc", "path.py", "4")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCodeClimateSeverityMapping(t *testing.T) {
	assert.Equal(t, "info", codeClimateSeverities[sarif.SeverityNone])
	assert.Equal(t, "info", codeClimateSeverities[sarif.SeverityNote])
	assert.Equal(t, "minor", codeClimateSeverities[sarif.SeverityWarning])
	assert.Equal(t, "major", codeClimateSeverities[sarif.SeverityError])
}
