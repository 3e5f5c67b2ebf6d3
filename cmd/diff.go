// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/output"
	"github.com/microsoft/sarif-tools/internal/report"
	"github.com/microsoft/sarif-tools/internal/sarif"
)

func newDiffCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg string

	cmd := &cobra.Command{
		Use:   "diff <old_file_or_dir> <new_file_or_dir>",
		Short: "Find the difference between two [sets of] SARIF files",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			oldSet, err := sarif.LoadFiles(args[:1])
			if err != nil {
				return err
			}
			newSet, err := sarif.LoadFiles(args[1:])
			if err != nil {
				return err
			}
			if err := initFiltering(oldSet, filterArg); err != nil {
				return err
			}
			if err := initFiltering(newSet, filterArg); err != nil {
				return err
			}

			diff := output.CalcDiff(
				report.FromRecords(oldSet.Records()),
				report.FromRecords(newSet.Records()))

			if outputArg != "" {
				log.Info("writing diff", "to", outputArg)
				err = writeToFile(outputArg, func(w io.Writer) error {
					return output.WriteJSON(w, diff.ToJSON())
				})
			} else {
				err = diff.WriteText(os.Stdout)
			}
			if err != nil {
				return err
			}
			if stats := oldSet.FilterStats(); stats != nil {
				log.Info("'before' results are filtered", "by", stats.String())
			}
			if stats := newSet.FilterStats(); stats != nil {
				log.Info("'after' results are filtered", "by", stats.String())
			}

			if *checkLevel != "" {
				if count := diff.CheckCount(sarif.ParseSeverity(*checkLevel)); count > 0 {
					return &ExitError{
						Code:    count,
						Message: fmt.Sprintf("Check: exiting with return code %d due to increase in issues at or above %s severity", count, *checkLevel),
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file")
	cmd.Flags().StringVarP(&filterArg, "filter", "b", "", "Filter file to apply")
	return cmd
}
