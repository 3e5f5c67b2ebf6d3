// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

// Package jsonpath resolves dotted path expressions against generic JSON
// trees, as used by filter rules to address arbitrary fields of a SARIF
// result object.
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// segKind discriminates the segment variants of a parsed path.
type segKind int

const (
	segKey segKind = iota
	segIndex
	segWildcard
)

// segment is one step of a path: a map key, a fixed array index, or a
// wildcard over all array elements.
type segment struct {
	kind  segKind
	key   string
	index int
}

// Path is a compiled path expression such as
// "locations[*].physicalLocation.artifactLocation.uri".
type Path struct {
	expr     string
	segments []segment
}

// Parse compiles a path expression. Supported syntax: dot-separated keys,
// each optionally followed by one or more "[N]" or "[*]" suffixes.
// A structurally invalid expression is an error; resolution against data
// that does not have the addressed shape is not.
func Parse(expr string) (Path, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Path{}, fmt.Errorf("empty path expression")
	}
	var segments []segment
	for _, component := range strings.Split(trimmed, ".") {
		key := component
		var suffixes []segment
		for strings.HasSuffix(key, "]") {
			open := strings.LastIndex(key, "[")
			if open < 0 {
				return Path{}, fmt.Errorf("unbalanced bracket in path %q", expr)
			}
			inner := key[open+1 : len(key)-1]
			key = key[:open]
			if inner == "*" {
				suffixes = append([]segment{{kind: segWildcard}}, suffixes...)
				continue
			}
			index, err := strconv.Atoi(inner)
			if err != nil || index < 0 {
				return Path{}, fmt.Errorf("invalid array index %q in path %q", inner, expr)
			}
			suffixes = append([]segment{{kind: segIndex, index: index}}, suffixes...)
		}
		if key == "" {
			return Path{}, fmt.Errorf("empty key in path %q", expr)
		}
		if strings.ContainsAny(key, "[]") {
			return Path{}, fmt.Errorf("unbalanced bracket in path %q", expr)
		}
		segments = append(segments, segment{kind: segKey, key: key})
		segments = append(segments, suffixes...)
	}
	return Path{expr: trimmed, segments: segments}, nil
}

// MustParse is like Parse but panics on error. For fixed expressions.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original expression.
func (p Path) String() string {
	return p.expr
}

// LastKey returns the final key component of the path, e.g. "uri" for
// "locations[*].physicalLocation.artifactLocation.uri".
func (p Path) LastKey() string {
	for i := len(p.segments) - 1; i >= 0; i-- {
		if p.segments[i].kind == segKey {
			return p.segments[i].key
		}
	}
	return ""
}

// Resolve evaluates the path against a generic JSON tree (maps, slices and
// scalars as produced by encoding/json into any). It returns the string
// forms of all scalar values found, in document order. Missing keys and
// out-of-range indexes yield an empty result, never an error.
func (p Path) Resolve(root any) []string {
	nodes := []any{root}
	for _, seg := range p.segments {
		var next []any
		for _, node := range nodes {
			switch seg.kind {
			case segKey:
				if m, ok := node.(map[string]any); ok {
					if v, ok := m[seg.key]; ok {
						next = append(next, v)
					}
				}
			case segIndex:
				if list, ok := node.([]any); ok && seg.index < len(list) {
					next = append(next, list[seg.index])
				}
			case segWildcard:
				if list, ok := node.([]any); ok {
					next = append(next, list...)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		nodes = next
	}
	var values []string
	for _, node := range nodes {
		if s, ok := scalarString(node); ok {
			values = append(values, s)
		}
	}
	return values
}

// scalarString converts a scalar JSON value to its string form. Objects,
// arrays and nulls have no string form.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
