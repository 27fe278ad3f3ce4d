package analysis

import (
	"fmt"
	"strings"
)

const classifyPrompt = `You are a text classifier. Return ONLY a valid JSON object.
Format EXACTLY like this (including the curly braces):
{
    "primary_category": "Category name",
    "confidence": 0.85,
    "all_categories": [
        {"category": "Category1", "confidence": 0.85},
        {"category": "Category2", "confidence": 0.45}
    ],
    "explanation": "Brief explanation for the classification"
}

RULES:
1. Classify into these categories only: %s
2. Return %s
3. primary_category must be the highest confidence entry of all_categories
4. Confidence values must be numbers between 0 and 1
5. Return ONLY the JSON object, nothing else

Text to classify: "%s"
`

// DefaultCategories is the category set used when the caller does not
// supply one.
var DefaultCategories = []string{
	"Business", "Technology", "Politics", "Sports",
	"Entertainment", "Science", "Health", "Education",
}

type CategoryScore struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type ClassificationResult struct {
	Text            string          `json:"text"`
	PrimaryCategory string          `json:"primary_category"`
	Confidence      float64         `json:"confidence"`
	AllCategories   []CategoryScore `json:"all_categories"`
	Explanation     string          `json:"explanation"`
	Model           string          `json:"model"`
}

func (r *ClassificationResult) ModelName() string   { return r.Model }
func (r *ClassificationResult) StampModel(m string) { r.Model = m }

func NewClassifyComputer() Computer {
	return &classifyComputer{}
}

type classifyComputer struct{}

func (cc *classifyComputer) Prefix() string {
	return "classify"
}

func (cc *classifyComputer) NewResult() Result {
	return &ClassificationResult{}
}

// requestCategories resolves the category set for a request. Malformed
// overrides are rejected at the HTTP boundary, so a bad value here falls
// back to the defaults.
func requestCategories(opts Options) ([]string, map[string]bool) {
	categories, present, err := opts.Strings("categories")
	if !present || err != nil || len(categories) == 0 {
		categories = DefaultCategories
	}

	set := make(map[string]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return categories, set
}

func (cc *classifyComputer) Prompt(req Request) string {
	categories, _ := requestCategories(req.Options)

	labelling := "a single category"
	if req.Options.Bool("multi_label") {
		labelling = "multiple categories"
	}

	return fmt.Sprintf(classifyPrompt, strings.Join(categories, ", "), labelling, req.Text)
}

// Validate is strict: unlike NER there is no repair here. Any category
// outside the requested set fails the whole request.
func (cc *classifyComputer) Validate(req Request, obj map[string]interface{}) (Result, error) {
	_, set := requestCategories(req.Options)

	primary, ok := obj["primary_category"].(string)
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or non-string primary_category field"}
	}
	if !set[primary] {
		return nil, InvalidModelResponseError{Reason: fmt.Sprintf("invalid primary category: %s", primary)}
	}

	confidence, ok := number(obj["confidence"])
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or non-numeric confidence field"}
	}
	if confidence < 0 || confidence > 1 {
		return nil, InvalidModelResponseError{Reason: fmt.Sprintf("invalid confidence value: %v", confidence)}
	}

	rawScores, ok := obj["all_categories"].([]interface{})
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or invalid all_categories list"}
	}

	scores := make([]CategoryScore, 0, len(rawScores))
	for _, raw := range rawScores {
		fields, ok := raw.(map[string]interface{})
		if !ok {
			return nil, InvalidModelResponseError{Reason: "all_categories entry is not an object"}
		}

		category, ok := fields["category"].(string)
		if !ok {
			return nil, InvalidModelResponseError{Reason: "all_categories entry is missing its category field"}
		}
		if !set[category] {
			return nil, InvalidModelResponseError{Reason: fmt.Sprintf("invalid category: %s", category)}
		}

		score, ok := number(fields["confidence"])
		if !ok {
			return nil, InvalidModelResponseError{Reason: "all_categories entry is missing its confidence field"}
		}
		if score < 0 || score > 1 {
			return nil, InvalidModelResponseError{Reason: fmt.Sprintf("invalid confidence value: %v", score)}
		}

		scores = append(scores, CategoryScore{
			Category:   category,
			Confidence: round(score, 3),
		})
	}

	explanation, ok := obj["explanation"]
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing explanation field"}
	}

	return &ClassificationResult{
		Text:            req.Text,
		PrimaryCategory: primary,
		Confidence:      round(confidence, 3),
		AllCategories:   scores,
		Explanation:     coerceString(explanation),
	}, nil
}
