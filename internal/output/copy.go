// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package output

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

const sarifSchema = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"

// BuildSARIF combines the set's runs into one new SARIF document. Each
// run gets a conversion object recording the source file, the
// processing time and, when a filter was applied, its stats, so a later
// load can restore them. A file at outputAbsPath is skipped so a
// previous output is never folded into itself. Returns the document and
// the number of runs and files combined.
func BuildSARIF(set *sarif.FileSet, outputAbsPath, version, cmdline string, now time.Time) (map[string]any, int, int) {
	doc := map[string]any{
		"$schema": sarifSchema,
		"version": "2.1.0",
		"runs":    []any{},
	}
	processed := now.UTC().Format(time.RFC3339)

	runCount, fileCount := 0, 0
	var runs []any
	for _, f := range set.AllFiles() {
		if f.AbsPath() == outputAbsPath {
			log.Info("auto-excluding output file from input file list", "file", f.Path())
			continue
		}
		fileCount++
		for _, run := range f.Runs {
			runCount++
			runCopy := make(map[string]any, len(run.Data)+1)
			for key, value := range run.Data {
				runCopy[key] = value
			}
			properties := map[string]any{
				"file":      f.AbsPath(),
				"modified":  f.ModTime().Format(time.RFC3339),
				"processed": processed,
			}
			if stats := run.FilterStats(); stats != nil {
				runCopy["results"] = run.Results()
				properties["filtered"] = stats.ToProperties()
			}
			runCopy["conversion"] = map[string]any{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":       sarif.ConversionToolName,
						"fullName":   "sarif-tools https://github.com/microsoft/sarif-tools/",
						"version":    version,
						"properties": properties,
					},
				},
				"invocation": cmdline,
			}
			runs = append(runs, runCopy)
		}
	}
	if runs != nil {
		doc["runs"] = runs
	}
	return doc, runCount, fileCount
}
