// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/output"
	"github.com/microsoft/sarif-tools/internal/report"
)

func newEmacsCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg string
	var noAutotrim bool
	var trimPrefixes []string

	cmd := &cobra.Command{
		Use:   "emacs [file_or_dir...]",
		Short: "Write a representation of SARIF file(s) for viewing in emacs",
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			initTrimming(set, !noAutotrim, trimPrefixes)
			if err := initFiltering(set, filterArg); err != nil {
				return err
			}
			outputPath, multiple, err := prepareOutput(set, outputArg, ".txt")
			if err != nil {
				return err
			}
			now := time.Now()
			if multiple {
				for _, f := range set.AllFiles() {
					name := f.FileNameWithoutExtension() + ".txt"
					log.Info("writing results", "for", f.FileName(), "to", name)
					err := writeToFile(filepath.Join(outputPath, name), func(w io.Writer) error {
						return output.WriteEmacs(w, report.FromRecords(f.Records()), f.ToolNames(), f.FilterStats(), now)
					})
					if err != nil {
						return err
					}
				}
				outputPath = filepath.Join(outputPath, ".compile.txt")
			}
			log.Info("writing results for "+set.Description(), "to", outputPath)
			err = writeToFile(outputPath, func(w io.Writer) error {
				return output.WriteEmacs(w, report.FromRecords(set.Records()), set.ToolNames(), set.FilterStats(), now)
			})
			if err != nil {
				return err
			}
			return check(set, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file or directory")
	cmd.Flags().StringVarP(&filterArg, "filter", "b", "", "Filter file to apply")
	cmd.Flags().BoolVarP(&noAutotrim, "no-autotrim", "n", false, "Do not strip off the common prefix of paths in the output document")
	cmd.Flags().StringArrayVar(&trimPrefixes, "trim", nil, "Prefix to strip from issue paths, e.g. the checkout directory on the build agent")
	return cmd
}
