package generation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrParseFailure reports that a generation response could not be coerced
// into the expected structure by any parsing strategy.
var ErrParseFailure = errors.New("could not parse generation response")

var fencedBlockRegex = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// jsonStrategy extracts a JSON candidate from a raw model response.
// It returns false when the strategy does not apply to the response.
type jsonStrategy func(response string, requiredKeys []string) (string, bool)

// Strategies are tried in order; the first one whose candidate unmarshals
// wins. Model output is free-form, so a single strict parse is not enough:
// responses arrive as bare JSON, JSON inside a fenced code block, or JSON
// surrounded by prose.
var jsonStrategies = []jsonStrategy{
	directJSON,
	fencedBlockJSON,
	braceDelimitedJSON,
}

// directJSON treats the whole trimmed response as JSON
func directJSON(response string, _ []string) (string, bool) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// fencedBlockJSON extracts the contents of the first fenced code block
func fencedBlockJSON(response string, _ []string) (string, bool) {
	match := fencedBlockRegex.FindStringSubmatch(response)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// braceDelimitedJSON extracts the first brace-delimited substring that
// contains all expected keys
func braceDelimitedJSON(response string, requiredKeys []string) (string, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return "", false
	}

	candidate := response[start : end+1]
	for _, key := range requiredKeys {
		if !strings.Contains(candidate, `"`+key+`"`) {
			return "", false
		}
	}

	return candidate, true
}

// extractJSON runs the parsing cascade and unmarshals the first successful
// candidate into v. It returns ErrParseFailure when every strategy fails.
func extractJSON(response string, requiredKeys []string, v interface{}) error {
	for _, strategy := range jsonStrategies {
		candidate, ok := strategy(response, requiredKeys)
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(candidate), v); err == nil {
			return nil
		}
	}

	return ErrParseFailure
}

// parseLabeledLines parses "LABEL: value" formatted responses into a map of
// lowercased labels. Lines without a known label are ignored.
func parseLabeledLines(response string, labels []string) map[string]string {
	fields := map[string]string{}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		for _, label := range labels {
			prefix := label + ":"
			if strings.HasPrefix(line, prefix) {
				fields[strings.ToLower(label)] = strings.TrimSpace(strings.TrimPrefix(line, prefix))
				break
			}
		}
	}

	return fields
}
