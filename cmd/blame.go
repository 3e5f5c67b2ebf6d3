// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/blame"
	"github.com/microsoft/sarif-tools/internal/output"
)

func newBlameCommand(checkLevel *string) *cobra.Command {
	var outputArg, repoPath string

	cmd := &cobra.Command{
		Use:   "blame [file_or_dir...]",
		Short: "Enhance SARIF file with information from `git blame`",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			repo := repoPath
			if repo == "" {
				if repo, err = os.Getwd(); err != nil {
					return err
				}
			}
			if _, err := blame.Enrich(cobraCmd.Context(), set, repo); err != nil {
				return err
			}
			outputPath, multiple, err := prepareOutput(set, outputArg, ".sarif")
			if err != nil {
				return err
			}
			for _, f := range set.AllFiles() {
				if !f.HasBlameInfo() {
					log.Warn("did not find any git blame information", "file", f.FileName())
					continue
				}
				target := outputPath
				if multiple {
					target = filepath.Join(outputPath, f.FileNameWithoutExtension()+"_with_blame.sarif")
				}
				log.Info("writing SARIF with git blame information", "from", f.FileName(), "to", target)
				err := writeToFile(target, func(w io.Writer) error {
					return output.WriteJSON(w, f.Data)
				})
				if err != nil {
					return err
				}
			}
			return check(set, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file or directory")
	cmd.Flags().StringVarP(&repoPath, "code", "c", "", "Path to git repository; if not specified, the current working directory is used")
	return cmd
}
