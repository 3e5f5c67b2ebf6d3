// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/output"
)

func newTrendCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg, dateFormat string

	cmd := &cobra.Command{
		Use:   "trend [file_or_dir...]",
		Short: `Write a CSV file with time series data from SARIF files with "yyyymmddThhmmssZ" timestamps in their filenames`,
		RunE: func(_ *cobra.Command, args []string) error {
			switch output.DateFormat(dateFormat) {
			case output.DateFormatDMY, output.DateFormatMDY, output.DateFormatYMD:
			default:
				return fmt.Errorf("invalid dateformat %q: choose dmy, mdy or ymd", dateFormat)
			}
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			if err := initFiltering(set, filterArg); err != nil {
				return err
			}
			outputPath := outputArg
			if outputPath == "" {
				outputPath = "static_analysis_trend.csv"
			} else if err := ensureDir(filepath.Dir(outputPath)); err != nil {
				return err
			}
			log.Info("writing trend CSV", "to", outputPath)
			err = writeToFile(outputPath, func(w io.Writer) error {
				return output.WriteTrend(w, set.AllFiles(), output.DateFormat(dateFormat))
			})
			if err != nil {
				return err
			}
			logFilterStats(set.FilterStats())
			return check(set, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file")
	cmd.Flags().StringVarP(&filterArg, "filter", "b", "", "Filter file to apply")
	cmd.Flags().StringVarP(&dateFormat, "dateformat", "f", "dmy", "Date component order to use in output CSV: dmy, mdy or ymd")
	return cmd
}
