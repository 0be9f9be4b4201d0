package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceRe        = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingComma  = regexp.MustCompile(`,\s*([}\]])`)
)

// parseExtraction recovers an Extraction from a model response. Models
// occasionally wrap the JSON in markdown fences or emit minor syntax
// slips, so parsing tries the raw candidate first, then a repaired form,
// then the largest balanced object in the response.
func parseExtraction(response string) (*Extraction, error) {
	candidate := response
	if m := fenceRe.FindStringSubmatch(response); m != nil {
		candidate = m[1]
	} else if start := strings.Index(response, "{"); start >= 0 {
		candidate = response[start:]
		if end := strings.LastIndex(candidate, "}"); end >= 0 {
			candidate = candidate[:end+1]
		}
	} else {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var out Extraction
	if err := json.Unmarshal([]byte(candidate), &out); err == nil {
		return &out, nil
	}

	if err := json.Unmarshal([]byte(repairJSON(candidate)), &out); err == nil {
		return &out, nil
	}

	balanced := largestBalancedObject(response)
	if balanced == "" {
		return nil, fmt.Errorf("response is not parseable JSON: %s", truncate(response, 200))
	}
	if err := json.Unmarshal([]byte(repairJSON(balanced)), &out); err != nil {
		return nil, fmt.Errorf("response is not parseable JSON: %w (%s)", err, truncate(response, 200))
	}
	return &out, nil
}

// repairJSON fixes the malformations seen in practice: markdown fences,
// JavaScript-style comments, and trailing commas.
func repairJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = blockCommentRe.ReplaceAllString(s, "")
	s = lineCommentRe.ReplaceAllString(s, "")
	s = trailingComma.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// largestBalancedObject returns the longest top-level {...} span in s, or
// "" when none closes.
func largestBalancedObject(s string) string {
	depth, start := 0, -1
	best := ""
	inString, escaped := false, false
	for i, ch := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && i+1-start > len(best) {
					best = s[start : i+1]
				}
			}
		}
	}
	return best
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
