// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

const (
	bytesPerKiB = 1024
	bytesPerMiB = 1024 * 1024
)

// WriteInfo writes structural information about each file: size and
// times, runs, tools, result counts and which property bag keys the
// results carry. It returns the number of files described.
func WriteInfo(w io.Writer, files []*sarif.File) (int, error) {
	for _, f := range files {
		path := f.AbsPath()
		fmt.Fprintln(w, path)
		if info, err := os.Stat(path); err == nil {
			fmt.Fprintf(w, "  %d bytes (%s)\n", info.Size(), readableSize(info.Size()))
			fmt.Fprintf(w, "  modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(w, "  %s\n", plural(len(f.Runs), "run"))
		for i, run := range f.Runs {
			if len(f.Runs) != 1 {
				fmt.Fprintf(w, "  Run #%d:\n", i+1)
			}
			fmt.Fprintf(w, "    Tool: %s\n", run.ToolName())
			if conversion := run.ConversionToolNameOf(); conversion != "" {
				fmt.Fprintf(w, "    Conversion tool: %s\n", conversion)
			}
			results := run.Results()
			fmt.Fprintf(w, "    %s\n", plural(len(results), "result"))
			writePropertyStats(w, results)
		}
		fmt.Fprintln(w)
	}
	return len(files), nil
}

// writePropertyStats summarizes which property bag keys the results
// carry: keys every result has, then partial keys with their counts in
// descending order.
func writePropertyStats(w io.Writer, results []map[string]any) {
	if len(results) == 0 {
		return
	}
	tally := map[string]int{}
	for _, result := range results {
		properties, _ := result["properties"].(map[string]any)
		for key := range properties {
			tally[key]++
		}
	}

	var universal, partialKeys []string
	for key, count := range tally {
		if count == len(results) {
			universal = append(universal, key)
		} else {
			partialKeys = append(partialKeys, key)
		}
	}
	sort.Strings(universal)
	sort.Slice(partialKeys, func(i, j int) bool {
		if tally[partialKeys[i]] != tally[partialKeys[j]] {
			return tally[partialKeys[i]] > tally[partialKeys[j]]
		}
		return partialKeys[i] < partialKeys[j]
	})
	partials := make([]string, 0, len(partialKeys))
	for _, key := range partialKeys {
		partials = append(partials, fmt.Sprintf("%s %d/%d (%.1f %%)",
			key, tally[key], len(results), 100*float64(tally[key])/float64(len(results))))
	}

	switch {
	case len(universal) > 0 && len(partials) > 0:
		fmt.Fprintf(w, "    Result properties: all results have properties: %s; some results have properties: %s\n",
			strings.Join(universal, ", "), strings.Join(partials, ", "))
	case len(universal) > 0:
		fmt.Fprintf(w, "    All results have properties: %s\n", strings.Join(universal, ", "))
	case len(partials) > 0:
		fmt.Fprintf(w, "    Result properties: %s\n", strings.Join(partials, ", "))
	}
}

func readableSize(size int64) string {
	if size > bytesPerMiB {
		return fmt.Sprintf("%.1f MiB", float64(size)/bytesPerMiB)
	}
	return fmt.Sprintf("%d KiB", (size+bytesPerKiB-1)/bytesPerKiB)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
