package analysis

import (
	"fmt"

	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/text"
)

const summarizePrompt = `You are a text summarizer. Return ONLY a valid JSON object.
Format EXACTLY like this (including the curly braces):
{
    "summary": "The generated summary here",
    "key_points": ["Point 1", "Point 2", "Point 3"]
}

RULES:
1. Generate a %s summary
2. Keep the summary under %d words
3. Include 2-3 key points
4. Return ONLY the JSON object, nothing else
5. Ensure proper JSON formatting with closing braces

Text to summarize: %s
`

const (
	SummaryTypeAbstractive = "abstractive"
	SummaryTypeExtractive  = "extractive"

	defaultSummaryMaxLength = 150
)

type SummarizationMetadata struct {
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
	SummaryType      string  `json:"summary_type"`
}

type SummarizationResult struct {
	OriginalText string                `json:"original_text"`
	Summary      string                `json:"summary"`
	Metadata     SummarizationMetadata `json:"metadata"`
	KeyPoints    []string              `json:"key_points"`
	Model        string                `json:"model"`
}

func (r *SummarizationResult) ModelName() string   { return r.Model }
func (r *SummarizationResult) StampModel(m string) { r.Model = m }

func NewSummarizeComputer() Computer {
	return &summarizeComputer{}
}

type summarizeComputer struct{}

func (sc *summarizeComputer) Prefix() string {
	return "summarize"
}

func (sc *summarizeComputer) NewResult() Result {
	return &SummarizationResult{}
}

func (sc *summarizeComputer) Prompt(req Request) string {
	summaryType := req.Options.String("type", SummaryTypeAbstractive)
	maxLength := req.Options.Int("max_length", defaultSummaryMaxLength)
	return fmt.Sprintf(summarizePrompt, summaryType, maxLength, req.Text)
}

func (sc *summarizeComputer) Validate(req Request, obj map[string]interface{}) (Result, error) {
	summary, ok := obj["summary"].(string)
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or non-string summary field"}
	}

	rawPoints, ok := obj["key_points"].([]interface{})
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or invalid key_points list"}
	}
	keyPoints := make([]string, len(rawPoints))
	for i, raw := range rawPoints {
		point, ok := raw.(string)
		if !ok {
			return nil, InvalidModelResponseError{Reason: "key_points entry is not a string"}
		}
		keyPoints[i] = point
	}

	// lengths and the compression ratio are derived here, never trusted
	// from the model
	originalLength := text.WordCount(req.Text)
	summaryLength := text.WordCount(summary)
	var compressionRatio float64
	if originalLength > 0 {
		compressionRatio = round(1-float64(summaryLength)/float64(originalLength), 2)
	}

	return &SummarizationResult{
		OriginalText: req.Text,
		Summary:      summary,
		Metadata: SummarizationMetadata{
			OriginalLength:   originalLength,
			SummaryLength:    summaryLength,
			CompressionRatio: compressionRatio,
			SummaryType:      req.Options.String("type", SummaryTypeAbstractive),
		},
		KeyPoints: keyPoints,
	}, nil
}
