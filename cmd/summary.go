// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/output"
	"github.com/microsoft/sarif-tools/internal/report"
	"github.com/microsoft/sarif-tools/internal/sarif"
)

func newSummaryCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg string

	cmd := &cobra.Command{
		Use:   "summary [file_or_dir...]",
		Short: "Write a text summary with the counts of issues from the SARIF files specified",
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			if err := initFiltering(set, filterArg); err != nil {
				return err
			}
			if err := runSummary(set, outputArg); err != nil {
				return err
			}
			return check(set, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file or directory")
	cmd.Flags().StringVarP(&filterArg, "filter", "b", "", "Filter file to apply")
	return cmd
}

func runSummary(set *sarif.FileSet, outputArg string) error {
	if outputArg == "" {
		return output.WriteSummary(os.Stdout,
			report.FromRecords(set.Records()), set.FilterStats(),
			output.IsOutputToTerminal(os.Stdout))
	}
	outputPath, multiple, err := prepareOutput(set, outputArg, ".txt")
	if err != nil {
		return err
	}
	if multiple {
		for _, f := range set.AllFiles() {
			name := f.FileNameWithoutExtension() + "_summary.txt"
			log.Info("writing summary", "of", f.FileName(), "to", name)
			err := writeToFile(filepath.Join(outputPath, name), func(w io.Writer) error {
				return output.WriteSummary(w, report.FromRecords(f.Records()), f.FilterStats(), false)
			})
			if err != nil {
				return err
			}
		}
		outputPath = filepath.Join(outputPath, "static_analysis_summary.txt")
	}
	log.Info(fmt.Sprintf("writing summary of %s", set.Description()), "to", outputPath)
	return writeToFile(outputPath, func(w io.Writer) error {
		return output.WriteSummary(w, report.FromRecords(set.Records()), set.FilterStats(), false)
	})
}
