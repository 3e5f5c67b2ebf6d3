// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

// DateFormat selects how trend dates render for spreadsheets.
type DateFormat string

const (
	DateFormatDMY DateFormat = "dmy"
	DateFormatMDY DateFormat = "mdy"
	DateFormatYMD DateFormat = "ymd"
)

// trendRow is one file's severity counts at a point in time.
type trendRow struct {
	timestamp string // raw form, for sorting
	date      string
	tool      string
	counts    map[sarif.Severity]int
}

// WriteTrend writes a CSV timeline of severity counts, one row per
// input file, sorted by timestamp. Every file needs a timestamp of the
// form 20260115T101500Z in its name.
func WriteTrend(w io.Writer, files []*sarif.File, format DateFormat) error {
	rows := make([]trendRow, 0, len(files))
	for _, f := range files {
		timestamp := f.FileNameTimestamp()
		if timestamp == "" {
			return fmt.Errorf("unable to parse timestamp from filename: %s", f.FileName())
		}
		row := trendRow{
			timestamp: timestamp,
			date:      spreadsheetDate(timestamp, format),
			tool:      strings.Join(f.ToolNames(), "/"),
			counts:    map[sarif.Severity]int{},
		}
		for _, record := range f.Records() {
			row.counts[record.Severity]++
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].timestamp < rows[j].timestamp
	})

	writer := csv.NewWriter(w)
	header := []string{"Date", "Tool"}
	for _, severity := range sarif.SeveritiesWithNone {
		header = append(header, string(severity))
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		cells := []string{row.date, row.tool}
		for _, severity := range sarif.SeveritiesWithNone {
			cells = append(cells, strconv.Itoa(row.counts[severity]))
		}
		if err := writer.Write(cells); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// spreadsheetDate renders a 20260115T101500Z timestamp in a form
// spreadsheets recognize as a date.
func spreadsheetDate(timestamp string, format DateFormat) string {
	year, month, day := timestamp[0:4], timestamp[4:6], timestamp[6:8]
	hour, minute := timestamp[9:11], timestamp[11:13]
	switch format {
	case DateFormatYMD:
		return fmt.Sprintf("%s-%s-%s %s:%s", year, month, day, hour, minute)
	case DateFormatMDY:
		return fmt.Sprintf("%s/%s/%s %s:%s", month, day, year, hour, minute)
	default:
		return fmt.Sprintf("%s/%s/%s %s:%s", day, month, year, hour, minute)
	}
}
