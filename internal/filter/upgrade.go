// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package filter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// blameFilterV1 holds the patterns of a legacy v1 blame-filter text
// file: one author-mail pattern per line, "+: " and "-: " prefixes
// marking includes and excludes, bare lines counting as includes.
type blameFilterV1 struct {
	description string
	include     []string
	exclude     []string
}

// UpgradeBlameFilter converts a v1 blame-filter text file into the
// YAML filter file format and writes it to outputPath.
func UpgradeBlameFilter(path, outputPath string) error {
	old, err := loadBlameFilterV1(path)
	if err != nil {
		return err
	}

	type rule map[string]string
	doc := map[string]any{
		"description": old.description,
		"configuration": map[string]any{
			"default-include":   true,
			"check-line-number": true,
		},
	}
	if len(old.include) > 0 {
		rules := make([]rule, 0, len(old.include))
		for _, pattern := range old.include {
			rules = append(rules, rule{"author-mail": pattern})
		}
		doc["include"] = rules
	}
	if len(old.exclude) > 0 {
		rules := make([]rule, 0, len(old.exclude))
		for _, pattern := range old.exclude {
			rules = append(rules, rule{"author-mail": pattern})
		}
		doc["exclude"] = rules
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding filter YAML: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func loadBlameFilterV1(path string) (blameFilterV1, error) {
	old := blameFilterV1{description: filepath.Base(path)}
	f, err := os.Open(path)
	if err != nil {
		return old, fmt.Errorf("reading blame filter file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimPrefix(scanner.Text(), "\uFEFF")
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "description:"):
			old.description = strings.TrimSpace(line[len("description:"):])
		case strings.HasPrefix(line, "+: "):
			old.include = append(old.include, strings.TrimSpace(line[3:]))
		case strings.HasPrefix(line, "-: "):
			old.exclude = append(old.exclude, strings.TrimSpace(line[3:]))
		default:
			old.include = append(old.include, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return old, fmt.Errorf("reading blame filter file %s: %w", path, err)
	}
	return old, nil
}
