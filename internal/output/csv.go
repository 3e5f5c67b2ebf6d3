// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

// WriteCSV writes one row per record, grouped by severity in rank order
// and sorted by code within each severity. An Author column is added
// when blame information is present.
func WriteCSV(w io.Writer, records []sarif.Record, withBlame bool) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(sarif.RecordHeadings(withBlame)); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, severity := range sarif.SeveritiesWithNone {
		var group []sarif.Record
		for _, record := range records {
			if record.Severity == severity {
				group = append(group, record)
			}
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Code < group[j].Code
		})
		for _, record := range group {
			if err := writer.Write(csvRow(record, withBlame)); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(record sarif.Record, withBlame bool) []string {
	row := []string{
		record.Tool,
		string(record.Severity),
		record.Code,
		record.Description,
		record.Location,
		record.Line,
	}
	if withBlame {
		row = append(row, record.Author)
	}
	return row
}
