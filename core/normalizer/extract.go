// ABOUTME: Best-effort extraction of a JSON object from free-form model output
// ABOUTME: Never fails: unparseable text yields an empty mapping

package normalizer

import (
	"encoding/json"
	"regexp"
	"strings"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// Candidate returns the text that ExtractJSON will try to parse: the interior
// of the first fenced code block if there is one, then narrowed to the span
// from the first '{' to the last '}'.
func Candidate(text string) string {
	candidate := text
	if m := fencedBlock.FindStringSubmatch(candidate); m != nil {
		candidate = m[1]
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start >= 0 && end > start {
		candidate = candidate[start : end+1]
	}
	return candidate
}

// ExtractJSON parses the JSON object embedded in model output. A strict parse
// is tried first, then a lenient JSON5 parse. Anything that is not an object
// yields an empty, non-nil map.
func ExtractJSON(text string) map[string]interface{} {
	candidate := Candidate(text)

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &data); err == nil && data != nil {
		return data
	}

	data = nil
	if err := json5.Unmarshal([]byte(candidate), &data); err == nil && data != nil {
		return data
	}

	return map[string]interface{}{}
}
