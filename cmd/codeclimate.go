// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/output"
)

func newCodeClimateCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg string
	var autotrim bool
	var trimPrefixes []string

	cmd := &cobra.Command{
		Use:   "codeclimate [file_or_dir...]",
		Short: "Write a Code Climate JSON representation of SARIF files for viewing as a Code Quality report in GitLab",
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			initTrimming(set, autotrim, trimPrefixes)
			if err := initFiltering(set, filterArg); err != nil {
				return err
			}
			outputPath, multiple, err := prepareOutput(set, outputArg, ".json")
			if err != nil {
				return err
			}
			if multiple {
				for _, f := range set.AllFiles() {
					name := f.FileNameWithoutExtension() + ".json"
					log.Info("writing Code Climate JSON summary", "of", f.FileName(), "to", name)
					err := writeToFile(filepath.Join(outputPath, name), func(w io.Writer) error {
						return output.WriteCodeClimate(w, f.Records())
					})
					if err != nil {
						return err
					}
					logFilterStats(f.FilterStats())
				}
				outputPath = filepath.Join(outputPath, "static_analysis_output.json")
			}
			log.Info("writing Code Climate JSON summary for "+set.Description(), "to", outputPath)
			err = writeToFile(outputPath, func(w io.Writer) error {
				return output.WriteCodeClimate(w, set.Records())
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
	cmd.Flags().BoolVarP(&autotrim, "autotrim", "a", false, "Strip off the common prefix of paths in the output")
	cmd.Flags().StringArrayVar(&trimPrefixes, "trim", nil, "Prefix to strip from issue paths, e.g. the checkout directory on the build agent")
	return cmd
}
