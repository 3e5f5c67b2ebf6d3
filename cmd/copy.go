// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/output"
	"github.com/microsoft/sarif-tools/internal/sarif"
)

func newCopyCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg string
	var appendTimestamp bool

	cmd := &cobra.Command{
		Use:   "copy [file_or_dir...]",
		Short: "Write a new SARIF file containing optionally-filtered data from other SARIF files",
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			if err := initFiltering(set, filterArg); err != nil {
				return err
			}

			outputPath := outputArg
			if outputPath == "" {
				outputPath = "out.sarif"
			}
			now := time.Now()
			if appendTimestamp {
				ext := filepath.Ext(outputPath)
				if ext == "" {
					ext = ".sarif"
				}
				outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) +
					"_" + now.UTC().Format("20060102T150405Z") + ext
			}
			outputAbs, err := filepath.Abs(outputPath)
			if err != nil {
				return err
			}

			doc, runCount, fileCount := output.BuildSARIF(
				set, outputAbs, Version, strings.Join(os.Args, " "), now)
			err = writeToFile(outputPath, func(w io.Writer) error {
				return output.WriteJSON(w, doc)
			})
			if err != nil {
				return err
			}
			log.Info("wrote combined SARIF file", "file", outputPath, "runs", runCount, "from", fileCount)
			logFilterStats(set.FilterStats())

			// The check applies to the file just written, so rehydrated
			// stats and filtered results are what gets counted.
			written, err := sarif.LoadFile(outputPath)
			if err != nil {
				return err
			}
			writtenSet := &sarif.FileSet{}
			writtenSet.AddFile(written)
			return check(writtenSet, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file")
	cmd.Flags().StringVarP(&filterArg, "filter", "b", "", "Filter file to apply")
	cmd.Flags().BoolVarP(&appendTimestamp, "timestamp", "t", false,
		`Append current timestamp to output filename in the "yyyymmddThhmmssZ" format used by the trend command`)
	return cmd
}
