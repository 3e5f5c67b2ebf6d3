// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

func TestWriteCSV(t *testing.T) {
	records := []sarif.Record{
		testRecord(sarif.SeverityWarning, "W200", "unused import", "src/a.py", "3"),
		testRecord(sarif.SeverityError, "E100", "null deref", "src/a.py", "10"),
		testRecord(sarif.SeverityWarning, "W100", "bad name", "src/b.py", "7"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records, false))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Tool", "Severity", "Code", "Description", "Location", "Line"}, rows[0])
	assert.Equal(t, "E100", rows[1][2], "errors come before warnings")
	assert.Equal(t, "W100", rows[2][2], "warnings sort by code")
	assert.Equal(t, "W200", rows[3][2])
}

func TestWriteCSVWithBlame(t *testing.T) {
	record := testRecord(sarif.SeverityError, "E1", "e", "a.py", "1")
	record.Author = "dev@example.com"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []sarif.Record{record}, true))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Author", rows[0][6])
	assert.Equal(t, "dev@example.com", rows[1][6])
}
