// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/sarif-tools/internal/report"
	"github.com/microsoft/sarif-tools/internal/sarif"
)

func diffReports() (*report.IssuesReport, *report.IssuesReport) {
	oldReport := report.FromRecords([]sarif.Record{
		testRecord(sarif.SeverityError, "E100", "null deref", "src/a.py", "10"),
		testRecord(sarif.SeverityWarning, "W200", "unused import", "src/a.py", "3"),
		testRecord(sarif.SeverityWarning, "W999", "gone soon", "src/z.py", "1"),
	})
	newReport := report.FromRecords([]sarif.Record{
		testRecord(sarif.SeverityError, "E100", "null deref", "src/a.py", "10"),
		testRecord(sarif.SeverityError, "E100", "null deref", "src/b.py", "20"),
		testRecord(sarif.SeverityWarning, "W200", "unused import", "src/a.py", "3"),
		testRecord(sarif.SeverityWarning, "W500", "brand new", "src/c.py", "5"),
	})
	return oldReport, newReport
}

func TestCalcDiff(t *testing.T) {
	oldReport, newReport := diffReports()
	diff := CalcDiff(oldReport, newReport)

	assert.Equal(t, 1, diff.NewTotal, "one new issue type (W500)")
	assert.Equal(t, 1, diff.GoneTotal, "one eliminated issue type (W999)")

	out := diff.ToJSON()
	errorLevel := out["error"].(map[string]any)
	assert.Equal(t, 0, errorLevel["+"])
	codes := errorLevel["codes"].(map[string]any)
	e100 := codes["E100 null deref"].(map[string]any)
	assert.Equal(t, 1, e100["<"])
	assert.Equal(t, 2, e100[">"])
	newAt := e100["+@"].([]Occurrence)
	require.Len(t, newAt, 1)
	assert.Equal(t, Occurrence{Location: "src/b.py", Line: "20"}, newAt[0])

	warningLevel := out["warning"].(map[string]any)
	assert.Equal(t, 1, warningLevel["+"])
	assert.Equal(t, 1, warningLevel["-"])
	warningCodes := warningLevel["codes"].(map[string]any)
	assert.Contains(t, warningCodes, "W500 brand new")
	gone := warningCodes["W999 gone soon"].(map[string]any)
	assert.Equal(t, 1, gone["<"])
	assert.Equal(t, 0, gone[">"])

	all := out["all"].(map[string]any)
	assert.Equal(t, 1, all["+"])
	assert.Equal(t, 1, all["-"])
}

func TestDiffUnchangedTypeOmitted(t *testing.T) {
	oldReport, newReport := diffReports()
	diff := CalcDiff(oldReport, newReport)
	codes := diff.ToJSON()["warning"].(map[string]any)["codes"].(map[string]any)
	assert.NotContains(t, codes, "W200 unused import")
}

func TestDiffCheckCount(t *testing.T) {
	oldReport, newReport := diffReports()
	diff := CalcDiff(oldReport, newReport)

	assert.Equal(t, 0, diff.CheckCount(sarif.SeverityError), "no new errors")
	assert.Equal(t, 1, diff.CheckCount(sarif.SeverityWarning), "warning check includes errors")
	assert.Equal(t, 1, diff.CheckCount(sarif.SeverityNote))
}

func TestDiffWriteText(t *testing.T) {
	oldReport, newReport := diffReports()
	var buf bytes.Buffer
	require.NoError(t, CalcDiff(oldReport, newReport).WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, `New issue "W500 brand new" (1 occurrence)`)
	assert.Contains(t, out, `Eliminated issue "W999 gone soon"`)
	assert.Contains(t, out, "Number of occurrences 1 -> 2 (+1)")
	assert.Contains(t, out, "src/b.py:20")
	assert.Contains(t, out, "note level: +0 -0 no changes")
	assert.Contains(t, out, "all levels: +1 -1")
}

func TestDiffIdenticalReports(t *testing.T) {
	rep := report.FromRecords([]sarif.Record{
		testRecord(sarif.SeverityError, "E1", "e", "a.py", "1"),
	})
	diff := CalcDiff(rep, rep)
	assert.Zero(t, diff.NewTotal)
	assert.Zero(t, diff.GoneTotal)
	assert.Zero(t, diff.CheckCount(sarif.SeverityNote))
}
