// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/filter"
	"github.com/microsoft/sarif-tools/internal/output"
)

func newCSVCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg string
	var autotrim bool
	var trimPrefixes []string

	cmd := &cobra.Command{
		Use:   "csv [file_or_dir...]",
		Short: "Write a CSV file listing the issues from the SARIF files specified",
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			initTrimming(set, autotrim, trimPrefixes)
			if err := initFiltering(set, filterArg); err != nil {
				return err
			}
			outputPath, multiple, err := prepareOutput(set, outputArg, ".csv")
			if err != nil {
				return err
			}
			if multiple {
				for _, f := range set.AllFiles() {
					name := f.FileNameWithoutExtension() + ".csv"
					log.Info("writing CSV summary", "of", f.FileName(), "to", name)
					err := writeToFile(filepath.Join(outputPath, name), func(w io.Writer) error {
						return output.WriteCSV(w, f.Records(), f.HasBlameInfo())
					})
					if err != nil {
						return err
					}
					logFilterStats(f.FilterStats())
				}
				outputPath = filepath.Join(outputPath, "static_analysis_output.csv")
			}
			log.Info("writing CSV summary for "+set.Description(), "to", outputPath)
			err = writeToFile(outputPath, func(w io.Writer) error {
				return output.WriteCSV(w, set.Records(), set.HasBlameInfo())
			})
			if err != nil {
				return err
			}
			logFilterStats(set.FilterStats())
			return check(set, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file or directory")
	cmd.Flags().StringVarP(&filterArg, "filter", "b", "", "Filter file to apply")
	cmd.Flags().BoolVarP(&autotrim, "autotrim", "a", false, "Strip off the common prefix of paths in the CSV output")
	cmd.Flags().StringArrayVar(&trimPrefixes, "trim", nil, "Prefix to strip from issue paths, e.g. the checkout directory on the build agent")
	return cmd
}

func logFilterStats(stats *filter.Stats) {
	if stats != nil {
		log.Info("results are filtered", "by", stats.String())
	}
}
