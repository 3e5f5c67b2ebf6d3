// SPDX-FileCopyrightText: 2026 Microsoft Corporation
// SPDX-License-Identifier: MIT

package sarif

import (
	"strconv"
	"strings"
)

// issueKeyMaxLen bounds the combined code + description key used to group
// records into issue types.
const issueKeyMaxLen = 120

// Record is the canonical flattened form of one SARIF result.
type Record struct {
	Tool        string
	Severity    Severity
	Code        string
	Description string
	Location    string
	Line        string
	// Author is the blame attribution mail address, empty without blame.
	Author string

	// Raw is the backing result object, for field resolution of arbitrary
	// paths (blame properties, suppressions, rule configuration).
	Raw map[string]any
}

// BasicHeadings are the record fields every renderer consumes, in
// presentation order.
var BasicHeadings = []string{"Tool", "Severity", "Code", "Description", "Location", "Line"}

// RecordHeadings returns BasicHeadings, extended with Author when blame
// information is present.
func RecordHeadings(withBlame bool) []string {
	if withBlame {
		return append(append([]string{}, BasicHeadings...), "Author")
	}
	return BasicHeadings
}

// IssueKey derives the issue-type grouping key: code and description
// joined by a single space and truncated to a fixed length bound. The
// separating space is kept even when either side is empty, so that a
// code-only key never collides with an identical description-only key.
func (r Record) IssueKey() string {
	return CombineCodeAndDescription(r.Code, r.Description)
}

// CombineCodeAndDescription builds the issue-type key for a code and
// description pair.
func CombineCodeAndDescription(code, description string) string {
	key := code + " " + description
	if len(key) > issueKeyMaxLen {
		key = key[:issueKeyMaxLen]
	}
	return key
}

// resultToRecord flattens a raw SARIF result. Results missing locations or
// levels degrade to defaults rather than failing the run.
func resultToRecord(result map[string]any, toolName string, trim func(string) string, withBlame bool) Record {
	code, _ := result["ruleId"].(string)
	location, line := readResultLocation(result)
	if location == "" {
		// A non-empty location is only a SHOULD in SARIF 3.27.12; GCC 13
		// for one can emit issues without any.
		location = "-"
	}
	if line == "" {
		line = "1"
	}
	if trim != nil {
		location = trim(location)
	}

	level, _ := result["level"].(string)

	message := code
	if messageData, ok := result["message"].(map[string]any); ok {
		if text, ok := messageData["text"].(string); ok {
			message = text
		} else if id, ok := messageData["id"].(string); ok {
			message = id
		}
	}
	description := message
	// Don't duplicate the code at the start of the description.
	if code != "" && strings.HasPrefix(message, code) && len(message) > len(code)+1 {
		description = strings.TrimSpace(message[len(code)+1:])
	}

	record := Record{
		Tool:        toolName,
		Severity:    ParseSeverity(level),
		Code:        code,
		Description: description,
		Location:    location,
		Line:        line,
		Raw:         result,
	}
	if withBlame {
		record.Author = authorMailFromBlame(result)
	}
	return record
}

// readResultLocation extracts the file path and line number strings from a
// result. Tools store these differently, so a few locations are tried:
// the address written by DevSkim, the physical location written by MobSF
// and SpotBugs, and finally the logical location SpotBugs uses for some
// errors.
func readResultLocation(result map[string]any) (string, string) {
	locations, ok := result["locations"].([]any)
	if !ok || len(locations) == 0 {
		return "", ""
	}
	location, ok := locations[0].(map[string]any)
	if !ok {
		return "", ""
	}
	physical, _ := location["physicalLocation"].(map[string]any)

	line := ""
	if region, ok := physical["region"].(map[string]any); ok {
		line = numberString(region["startLine"])
	}

	if address, ok := physical["address"].(map[string]any); ok {
		if name, ok := address["fullyQualifiedName"].(string); ok && name != "" {
			return name, line
		}
	}
	if artifact, ok := physical["artifactLocation"].(map[string]any); ok {
		if uri, ok := artifact["uri"].(string); ok && uri != "" {
			return uri, line
		}
	}
	if logical, ok := location["logicalLocations"].([]any); ok && len(logical) > 0 {
		if first, ok := logical[0].(map[string]any); ok {
			if name, ok := first["fullyQualifiedName"].(string); ok {
				return name, line
			}
		}
	}
	return "", line
}

// numberString renders a JSON-decoded line number as its string form.
func numberString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return ""
	}
}

// authorMailFromBlame reads the author mail from a result's blame property
// bag, falling back to the committer mail.
func authorMailFromBlame(result map[string]any) string {
	properties, _ := result["properties"].(map[string]any)
	blame, _ := properties["blame"].(map[string]any)
	if blame == nil {
		return ""
	}
	if mail, ok := blame["author-mail"].(string); ok && mail != "" {
		return stripMailBrackets(mail)
	}
	if mail, ok := blame["committer-mail"].(string); ok && mail != "" {
		return stripMailBrackets(mail)
	}
	return ""
}

// stripMailBrackets removes the angle brackets git blame porcelain output
// puts around mail addresses.
func stripMailBrackets(mail string) string {
	return strings.TrimSuffix(strings.TrimPrefix(mail, "<"), ">")
}
