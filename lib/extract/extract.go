package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError means no parseable JSON object could be located in
// a model completion.
type MalformedResponseError struct {
	Reason string
}

func (e MalformedResponseError) Error() string {
	return e.Reason
}

// Object locates the JSON object inside a model's free-text completion and
// parses it. Generative models routinely wrap the payload in prose ("Here is
// the JSON:"), so the region between the first '{' and the last '}' is taken
// as the object. This is a deliberately permissive heuristic, not a strict
// parser. Semantic validation is the caller's job.
func Object(raw string) (map[string]interface{}, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return nil, MalformedResponseError{Reason: "no JSON object found in response"}
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, MalformedResponseError{Reason: fmt.Sprintf("failed to parse model response as valid JSON: %v", err)}
	}

	return obj, nil
}
