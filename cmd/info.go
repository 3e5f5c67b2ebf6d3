// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/output"
)

func newInfoCommand(checkLevel *string) *cobra.Command {
	var outputArg string

	cmd := &cobra.Command{
		Use:   "info [file_or_dir...]",
		Short: "Print information about SARIF file(s) structure",
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			files := set.AllFiles()
			if len(files) == 0 {
				log.Warn("no SARIF files found; try passing a path of a SARIF file or containing SARIF files")
				return nil
			}
			if outputArg != "" {
				err = writeToFile(outputArg, func(w io.Writer) error {
					_, err := output.WriteInfo(w, files)
					return err
				})
				if err != nil {
					return err
				}
				log.Info("wrote information about "+set.Description(), "to", outputArg)
			} else if _, err := output.WriteInfo(os.Stdout, files); err != nil {
				return err
			}
			return check(set, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file")
	return cmd
}
