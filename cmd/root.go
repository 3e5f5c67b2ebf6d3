// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

// Package cmd wires the sarif subcommands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/microsoft/sarif-tools/internal/filter"
	"github.com/microsoft/sarif-tools/internal/report"
	"github.com/microsoft/sarif-tools/internal/sarif"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code with an optional message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand() *cobra.Command {
	var checkLevel string

	cmd := &cobra.Command{
		Use:     "sarif",
		Short:   "Process sets of SARIF static analysis files",
		Version: Version,
		Long: `sarif reads one or more SARIF v2.1.0 files and filters, summarizes,
converts or compares them.

Run ` + "`sarif <COMMAND> --help`" + ` for command-specific help.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&checkLevel, "check", "x", "",
		"Exit with error code if there are any issues of the specified level (or for diff, an increase in issues at that level)")

	cmd.AddCommand(
		newBlameCommand(&checkLevel),
		newCodeClimateCommand(&checkLevel),
		newCopyCommand(&checkLevel),
		newCSVCommand(&checkLevel),
		newDiffCommand(&checkLevel),
		newEmacsCommand(&checkLevel),
		newHTMLCommand(&checkLevel),
		newInfoCommand(&checkLevel),
		newLsCommand(&checkLevel),
		newSummaryCommand(&checkLevel),
		newTrendCommand(&checkLevel),
		newUpgradeFilterCommand(),
	)
	return cmd
}

// loadInputs loads SARIF files from the argument paths, defaulting to
// the current directory.
func loadInputs(args []string) (*sarif.FileSet, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	return sarif.LoadFiles(args)
}

// initFiltering applies a filter file to the inputs when one was given.
func initFiltering(set *sarif.FileSet, filterPath string) error {
	if filterPath == "" {
		return nil
	}
	cfg, err := filter.Load(filterPath)
	if err != nil {
		return err
	}
	set.InitFilter(cfg)
	return nil
}

// initTrimming sets up path prefix stripping. Rendering commands trim
// by default and take --no-autotrim; data export commands require an
// explicit --autotrim.
func initTrimming(set *sarif.FileSet, autotrim bool, trimPrefixes []string) {
	if autotrim || len(trimPrefixes) > 0 {
		set.InitPathTrimming(autotrim, trimPrefixes)
	}
}

// check exits non-zero when issues exist at or above the given level.
func check(set *sarif.FileSet, level string) error {
	if level == "" {
		return nil
	}
	checkSeverity := sarif.ParseSeverity(level)
	rep := report.FromRecords(set.Records())
	count := 0
	for _, severity := range sarif.SeveritiesWithNone {
		count += rep.IssueCount(severity)
		if severity == checkSeverity {
			break
		}
	}
	if count > 0 {
		return &ExitError{
			Code:    count,
			Message: fmt.Sprintf("Check: exiting with return code %d due to issues at or above %s severity", count, level),
		}
	}
	return nil
}

// prepareOutput resolves the output flag against the inputs. It returns
// the output path (a directory when multiple is true) and whether one
// file per input plus a totals file should be written. A single output
// file is used when there is one input, or the flag names an existing
// file or carries the expected extension.
func prepareOutput(set *sarif.FileSet, outputArg, extension string) (string, bool, error) {
	files := set.AllFiles()
	if len(files) == 0 {
		return "static_analysis_output" + extension, false, nil
	}
	if len(files) == 1 {
		derived := files[0].FileNameWithoutExtension() + extension
		if outputArg == "" {
			return derived, false, nil
		}
		if info, err := os.Stat(outputArg); err == nil && info.IsDir() {
			return filepath.Join(outputArg, derived), false, nil
		}
		if err := ensureDir(filepath.Dir(outputArg)); err != nil {
			return "", false, err
		}
		return outputArg, false, nil
	}
	if outputArg != "" {
		info, err := os.Stat(outputArg)
		isFile := err == nil && !info.IsDir()
		if isFile || strings.HasSuffix(strings.ToUpper(strings.TrimSpace(outputArg)), strings.ToUpper(extension)) {
			if err := ensureDir(filepath.Dir(outputArg)); err != nil {
				return "", false, err
			}
			return outputArg, false, nil
		}
		if err := ensureDir(outputArg); err != nil {
			return "", false, err
		}
		return outputArg, true, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	return cwd, true, nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// writeToFile runs write against a freshly created file.
func writeToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
