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

func newHTMLCommand(checkLevel *string) *cobra.Command {
	var outputArg, filterArg, imageArg string
	var noAutotrim bool
	var trimPrefixes []string

	cmd := &cobra.Command{
		Use:   "html [file_or_dir...]",
		Short: "Write an HTML representation of SARIF file(s) for viewing in a web browser",
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := loadInputs(args)
			if err != nil {
				return err
			}
			initTrimming(set, !noAutotrim, trimPrefixes)
			if err := initFiltering(set, filterArg); err != nil {
				return err
			}
			var image *output.HTMLImage
			if imageArg != "" {
				if image, err = output.LoadHTMLImage(imageArg); err != nil {
					return err
				}
			}
			outputPath, multiple, err := prepareOutput(set, outputArg, ".html")
			if err != nil {
				return err
			}
			now := time.Now()
			if multiple {
				for _, f := range set.AllFiles() {
					name := f.FileNameWithoutExtension() + ".html"
					log.Info("writing HTML report", "for", f.FileName(), "to", name)
					err := writeToFile(filepath.Join(outputPath, name), func(w io.Writer) error {
						return output.WriteHTML(w, report.FromRecords(f.Records()), f.ToolNames(), f.FilterStats(), image, now)
					})
					if err != nil {
						return err
					}
				}
				outputPath = filepath.Join(outputPath, "static_analysis_output.html")
			}
			log.Info("writing HTML report for "+set.Description(), "to", outputPath)
			err = writeToFile(outputPath, func(w io.Writer) error {
				return output.WriteHTML(w, report.FromRecords(set.Records()), set.ToolNames(), set.FilterStats(), image, now)
			})
			if err != nil {
				return err
			}
			return check(set, *checkLevel)
		},
	}
	cmd.Flags().StringVarP(&outputArg, "output", "o", "", "Output file or directory")
	cmd.Flags().StringVarP(&filterArg, "filter", "b", "", "Filter file to apply")
	cmd.Flags().StringVar(&imageArg, "image", "", "Image to include at top of the report")
	cmd.Flags().BoolVarP(&noAutotrim, "no-autotrim", "n", false, "Do not strip off the common prefix of paths in the output document")
	cmd.Flags().StringArrayVar(&trimPrefixes, "trim", nil, "Prefix to strip from issue paths, e.g. the checkout directory on the build agent")
	return cmd
}
