package analysis

import (
	"fmt"
	"math"
	"time"
)

// Options are the task-specific knobs supplied alongside the input text.
// Values arrive through JSON unmarshalling, so numbers are float64.
type Options map[string]interface{}

func (o Options) Bool(key string) bool {
	v, ok := o[key].(bool)
	return ok && v
}

func (o Options) Int(key string, fallback int) int {
	if n, ok := number(o[key]); ok {
		return int(n)
	}
	return fallback
}

func (o Options) String(key, fallback string) string {
	if s, ok := o[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// Strings returns the option as a string slice. The second return value is
// false when the option is absent; an error is returned when the option is
// present but contains non-string elements.
func (o Options) Strings(key string) ([]string, bool, error) {
	v, ok := o[key]
	if !ok {
		return nil, false, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, true, fmt.Errorf("option %s must be a list of strings", key)
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, true, fmt.Errorf("option %s must be a list of strings", key)
		}
		out[i] = s
	}
	return out, true, nil
}

// Request is a single task invocation. It is not mutated after construction.
type Request struct {
	Text     string
	Options  Options
	Received time.Time
}

// Result is a task-typed analysis outcome. Every result carries the model it
// was computed under; the runner uses it to invalidate cache entries written
// by a different model.
type Result interface {
	ModelName() string
	StampModel(model string)
}

// Computer holds the prompt template and the validation/repair rules for one
// task. Validate receives the object extracted from the raw completion plus
// the original request, and returns the typed result or a typed error.
type Computer interface {
	Prefix() string
	Prompt(req Request) string
	NewResult() Result
	Validate(req Request, obj map[string]interface{}) (Result, error)
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

func coerceString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
