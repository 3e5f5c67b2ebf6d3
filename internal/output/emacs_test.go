// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEmacs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmacs(&buf, testReport(), []string{"MyScanner"}, nil, testTime))
	out := buf.String()

	assert.Contains(t, out, "-*- mode: compilation -*-")
	assert.Contains(t, out, "Static analysis results from MyScanner")
	assert.Contains(t, out, "Total distinct issue types: 3")
	assert.Contains(t, out, "src/a.py:10: error: E100 null deref",
		"result lines use the location:line: form compilation mode parses")
	assert.Contains(t, out, "[W200 unused import] 2 occurrences:")
}
