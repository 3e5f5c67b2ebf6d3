// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

// Package blame enriches SARIF results with authorship read from
// git blame.
package blame

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/microsoft/sarif-tools/internal/sarif"
)

// fileBlame holds the parsed blame output for one file: commit
// properties per hash and the commit each final line belongs to.
type fileBlame struct {
	commits      map[string]map[string]any
	lineToCommit map[string]string
}

// Enrich runs git blame --porcelain in repoPath for every file location
// in the set and writes the matching commit's properties into each
// result's "blame" property bag entry. It returns the number of results
// that received blame information.
func Enrich(ctx context.Context, set *sarif.FileSet, repoPath string) (int, error) {
	info, err := os.Stat(repoPath)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("no git repository directory found at %s", repoPath)
	}

	paths := map[string]bool{}
	for _, record := range set.Records() {
		paths[record.Location] = true
	}
	files := make([]string, 0, len(paths))
	for path := range paths {
		files = append(files, path)
	}
	sort.Strings(files)
	log.Info("running git blame", "files", len(files), "repo", repoPath)

	blames := map[string]*fileBlame{}
	for _, path := range files {
		blame, err := runGitBlame(ctx, repoPath, path)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			log.Warn("git blame failed", "file", path, "err", err)
			continue
		}
		blames[path] = blame
	}

	enriched := 0
	total := 0
	for _, run := range set.Runs() {
		results := run.Results()
		records := run.Records()
		for i, record := range records {
			total++
			blame, ok := blames[record.Location]
			if !ok {
				continue
			}
			hash, ok := blame.lineToCommit[record.Line]
			if !ok {
				continue
			}
			properties, _ := results[i]["properties"].(map[string]any)
			if properties == nil {
				properties = map[string]any{}
				results[i]["properties"] = properties
			}
			properties["blame"] = blame.commits[hash]
			enriched++
		}
	}
	log.Info("blame information found", "results", enriched, "of", total)
	return enriched, nil
}

// runGitBlame blames one file and parses the porcelain output.
func runGitBlame(ctx context.Context, repoPath, file string) (*fileBlame, error) {
	cmd := exec.CommandContext(ctx, "git", "blame", "--porcelain", file)
	cmd.Dir = repoPath
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	blame, parseErr := parsePorcelain(out)
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("git blame --porcelain %s: %w", file, err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return blame, nil
}

// parsePorcelain reads git blame porcelain output. Each block starts
// with "<hash> <orig-line> <final-line> [<group-size>]", followed by
// commit header lines until a tab-prefixed content line ends the block.
// See https://git-scm.com/docs/git-blame#_the_porcelain_format.
func parsePorcelain(r io.Reader) (*fileBlame, error) {
	blame := &fileBlame{
		commits:      map[string]map[string]any{},
		lineToCommit: map[string]string{},
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inHeaders := false
	hash := ""
	for scanner.Scan() {
		line := scanner.Text()
		if inHeaders {
			switch {
			case strings.HasPrefix(line, "\t"):
				// Source line contents, end of the commit block.
				inHeaders = false
			case strings.Contains(line, " "):
				space := strings.Index(line, " ")
				blame.commits[hash][line[:space]] = strings.TrimSpace(line[space+1:])
			default:
				// Flag headers without a value, e.g. "boundary".
				blame.commits[hash][line] = true
			}
			continue
		}
		fields := strings.Split(line, " ")
		if len(fields) < 3 {
			return nil, fmt.Errorf("malformed blame line %q", line)
		}
		hash = fields[0]
		if _, ok := blame.commits[hash]; !ok {
			blame.commits[hash] = map[string]any{}
		}
		blame.lineToCommit[fields[2]] = hash
		inHeaders = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return blame, nil
}
