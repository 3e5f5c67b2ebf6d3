// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package sarif

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Parse reads raw bytes as a SARIF file. path and the file's
// modification time are recorded on the returned File.
func Parse(path string, data []byte) (*File, error) {
	// Probe the JSON to check this really is SARIF before decoding the
	// whole document into a generic structure.
	var probe struct {
		Schema  string          `json:"$schema"`
		Version string          `json:"version"`
		Runs    json.RawMessage `json:"runs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if probe.Runs == nil || (probe.Version != "2.1.0" && !strings.Contains(probe.Schema, "sarif")) {
		return nil, fmt.Errorf("%s is not a SARIF file: no runs or unrecognized version", path)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing SARIF from %s: %w", path, err)
	}

	return NewFile(path, fileModTime(path), doc), nil
}

// LoadFile reads one SARIF file from disk.
func LoadFile(path string) (*File, error) {
	if !hasSarifExtension(path) {
		log.Warn("loading file without a .sarif extension", "path", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadFiles loads SARIF files from the given paths into a file set.
// Each path may be a file, a directory searched recursively for .sarif
// files, or a glob pattern. Directories get their own subset so
// per-directory summaries stay grouped. A path that does not exist is
// skipped with a warning.
func LoadFiles(paths []string) (*FileSet, error) {
	set := &FileSet{}
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			sub, err := loadDir(path)
			if err != nil {
				return nil, err
			}
			set.AddSubset(sub)
		case err == nil:
			f, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			set.AddFile(f)
		default:
			matches, globErr := filepath.Glob(path)
			if globErr != nil || len(matches) == 0 {
				// A missing path skips only itself so the remaining
				// inputs still load.
				log.Warn("path not found", "path", path)
				continue
			}
			sort.Strings(matches)
			for _, match := range matches {
				if info, err := os.Stat(match); err == nil && info.IsDir() {
					sub, err := loadDir(match)
					if err != nil {
						return nil, err
					}
					set.AddSubset(sub)
					continue
				}
				f, err := LoadFile(match)
				if err != nil {
					return nil, err
				}
				set.AddFile(f)
			}
		}
	}
	return set, nil
}

// loadDir loads every .sarif file under dir, descending into
// subdirectories in lexical order.
func loadDir(dir string) (*FileSet, error) {
	set := &FileSet{}
	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !hasSarifExtension(entry.Name()) {
			return nil
		}
		f, err := LoadFile(path)
		if err != nil {
			return err
		}
		set.AddFile(f)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, walkErr)
	}
	if len(set.Files) == 0 {
		log.Warn("no .sarif files found in directory", "dir", dir)
	}
	return set, nil
}

func hasSarifExtension(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".sarif") || strings.HasSuffix(lower, ".sarif.json")
}

func fileModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		// Data not backed by a real file, e.g. in tests.
		return time.Time{}
	}
	return info.ModTime()
}
