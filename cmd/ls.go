// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

func newLsCommand(checkLevel *string) *cobra.Command {
	var outputArg string

	cmd := &cobra.Command{
		Use:   "ls [file_or_dir...]",
		Short: "List all SARIF files in the directories specified",
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			listing := func(w io.Writer) error {
				for _, path := range args {
					fmt.Fprintf(w, "%s:\n", path)
					set, err := sarif.LoadFiles([]string{path})
					if err != nil || set.FileCount() == 0 {
						fmt.Fprintln(w, "  (None)")
						continue
					}
					var names []string
					for _, f := range set.AllFiles() {
						names = append(names, f.FileName())
					}
					sort.Strings(names)
					for _, name := range names {
						fmt.Fprintf(w, "  %s\n", name)
					}
				}
				return nil
			}
			if outputArg != "" {
				log.Info("writing file listing", "to", outputArg)
				if err := writeToFile(outputArg, listing); err != nil {
					return err
				}
			} else if err := listing(os.Stdout); err != nil {
				return err
			}
			if *checkLevel != "" {
				set, err := loadInputs(args)
				if err != nil {
					return err
				}
				return check(set, *checkLevel)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file")
	return cmd
}
