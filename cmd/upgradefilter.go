// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/filter"
)

func newUpgradeFilterCommand() *cobra.Command {
	var outputArg string

	cmd := &cobra.Command{
		Use:   "upgrade-filter <file>...",
		Short: "Upgrade a v1-style blame filter file to a filter YAML file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			singleOutput := ""
			outputDir := ""
			if len(args) == 1 {
				if info, err := os.Stat(outputArg); outputArg != "" && err == nil && info.IsDir() {
					outputDir = outputArg
				} else if outputArg != "" {
					singleOutput = outputArg
				} else {
					singleOutput = args[0] + ".yaml"
				}
			} else {
				outputDir = outputArg
			}
			for _, old := range args {
				target := singleOutput
				if target == "" {
					target = filepath.Join(outputDir, filepath.Base(old)+".yaml")
				}
				if err := filter.UpgradeBlameFilter(old, target); err != nil {
					return err
				}
				log.Info("wrote upgraded filter file", "file", target)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file or directory")
	return cmd
}
