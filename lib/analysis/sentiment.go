package analysis

import (
	"fmt"
	"time"

	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/text"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/wordlist"
)

const sentimentPrompt = `You are a sentiment analyzer. Return ONLY a valid JSON object.
Format EXACTLY like this (including the curly braces):
{
    "sentiment": "POSITIVE/NEGATIVE/NEUTRAL",
    "confidence": 0.9,
    "explanation": "Brief explanation here"
}

RULES:
1. sentiment must be EXACTLY one of: POSITIVE, NEGATIVE, or NEUTRAL
2. confidence must be a number between 0 and 1
3. explanation must be one SHORT sentence
4. Return ONLY the JSON object, nothing else
5. Ensure the JSON has proper closing braces

Analyze this text: "%s"
`

var sentimentLiterals = map[string]bool{
	"POSITIVE": true,
	"NEGATIVE": true,
	"NEUTRAL":  true,
}

type SentimentResult struct {
	Text        string             `json:"text"`
	Sentiment   string             `json:"sentiment"`
	Confidence  float64            `json:"confidence"`
	Explanation string             `json:"explanation"`
	Model       string             `json:"model"`
	Metadata    *SentimentMetadata `json:"metadata,omitempty"`
}

func (r *SentimentResult) ModelName() string    { return r.Model }
func (r *SentimentResult) StampModel(m string)  { r.Model = m }

type SentimentMetadata struct {
	SentimentBreakdown    map[string][]string `json:"sentiment_breakdown"`
	ProcessingTimeSeconds int                 `json:"processing_time_seconds"`
}

func NewSentimentComputer(words *wordlist.Lists) Computer {
	return &sentimentComputer{words: words}
}

type sentimentComputer struct {
	words *wordlist.Lists
}

func (sc *sentimentComputer) Prefix() string {
	return "sentiment"
}

func (sc *sentimentComputer) NewResult() Result {
	return &SentimentResult{}
}

func (sc *sentimentComputer) Prompt(req Request) string {
	return fmt.Sprintf(sentimentPrompt, req.Text)
}

func (sc *sentimentComputer) Validate(req Request, obj map[string]interface{}) (Result, error) {
	sentiment, ok := obj["sentiment"].(string)
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or non-string sentiment field"}
	}
	if !sentimentLiterals[sentiment] {
		return nil, InvalidModelResponseError{Reason: fmt.Sprintf("invalid sentiment value: %s", sentiment)}
	}

	confidence, ok := number(obj["confidence"])
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or non-numeric confidence field"}
	}
	if confidence < 0 || confidence > 1 {
		return nil, InvalidModelResponseError{Reason: fmt.Sprintf("invalid confidence value: %v", confidence)}
	}

	explanation, ok := obj["explanation"]
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing explanation field"}
	}

	result := &SentimentResult{
		Text:        req.Text,
		Sentiment:   sentiment,
		Confidence:  round(confidence, 4),
		Explanation: coerceString(explanation),
	}

	if req.Options.Bool("include_metadata") {
		result.Metadata = sc.metadata(req)
	}

	return result, nil
}

// metadata is computed from the input text alone, never from the model.
func (sc *sentimentComputer) metadata(req Request) *SentimentMetadata {
	breakdown := map[string][]string{
		"positive_words": {},
		"negative_words": {},
		"intensifiers":   {},
	}
	for _, word := range text.Words(req.Text) {
		switch {
		case sc.words.Positive[word]:
			breakdown["positive_words"] = append(breakdown["positive_words"], word)
		case sc.words.Negative[word]:
			breakdown["negative_words"] = append(breakdown["negative_words"], word)
		case sc.words.Intensifiers[word]:
			breakdown["intensifiers"] = append(breakdown["intensifiers"], word)
		}
	}

	var elapsed int
	if !req.Received.IsZero() {
		elapsed = int(time.Since(req.Received).Seconds())
	}

	return &SentimentMetadata{
		SentimentBreakdown:    breakdown,
		ProcessingTimeSeconds: elapsed,
	}
}
