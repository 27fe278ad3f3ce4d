package analysis

import (
	"fmt"
	"strings"
)

const nerPrompt = `You are a Named Entity Recognition system. Extract entities from the text and return ONLY a valid JSON object.
Format EXACTLY like this:
{
    "entities": [
        {"text": "John", "type": "PERSON", "start": 0, "end": 4},
        {"text": "Microsoft", "type": "ORG", "start": 11, "end": 20},
        {"text": "Seattle", "type": "LOC", "start": 24, "end": 31}
    ]
}

RULES:
1. Entity types must be: %s
2. Start/end indices must match actual positions in text
3. Return ONLY the JSON object, nothing else
4. Ensure proper JSON formatting

Analyze this text: "%s"
`

// defaultEntityConfidence is assigned when the model omits a usable
// confidence for an entity.
const defaultEntityConfidence = 0.85

type Entity struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

type NERResult struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
	Model    string   `json:"model"`
}

func (r *NERResult) ModelName() string   { return r.Model }
func (r *NERResult) StampModel(m string) { r.Model = m }

func NewNERComputer() Computer {
	return &nerComputer{}
}

type nerComputer struct{}

func (nc *nerComputer) Prefix() string {
	return "ner"
}

func (nc *nerComputer) NewResult() Result {
	return &NERResult{}
}

// allowedEntityTypes derives the type filter from the request options.
// PERSON, ORG, LOC and OTHER are always extracted; TIME, NUMBER and EMAIL
// only when explicitly requested.
func allowedEntityTypes(opts Options) ([]string, map[string]bool) {
	types := []string{"PERSON", "ORG", "LOC"}
	if opts.Bool("extract_time") {
		types = append(types, "TIME")
	}
	if opts.Bool("extract_numerical") {
		types = append(types, "NUMBER")
	}
	if opts.Bool("extract_email") {
		types = append(types, "EMAIL")
	}
	types = append(types, "OTHER")

	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return types, allowed
}

func (nc *nerComputer) Prompt(req Request) string {
	types, _ := allowedEntityTypes(req.Options)
	return fmt.Sprintf(nerPrompt, strings.Join(types, ", "), req.Text)
}

func (nc *nerComputer) Validate(req Request, obj map[string]interface{}) (Result, error) {
	rawEntities, ok := obj["entities"].([]interface{})
	if !ok {
		return nil, InvalidModelResponseError{Reason: "missing or invalid entities list"}
	}

	_, allowed := allowedEntityTypes(req.Options)

	entities := make([]Entity, 0, len(rawEntities))
	for _, raw := range rawEntities {
		fields, ok := raw.(map[string]interface{})
		if !ok {
			return nil, InvalidModelResponseError{Reason: "entity is not an object"}
		}

		entityText, ok := fields["text"].(string)
		if !ok || entityText == "" {
			return nil, InvalidModelResponseError{Reason: "entity is missing its text field"}
		}
		entityType, ok := fields["type"].(string)
		if !ok {
			return nil, InvalidModelResponseError{Reason: "entity is missing its type field"}
		}

		// entities of types outside the filter are dropped, not errored
		if !allowed[entityType] {
			continue
		}

		entity := Entity{
			Text:  entityText,
			Type:  entityType,
			Start: -1,
			End:   -1,
		}
		if n, ok := number(fields["start"]); ok {
			entity.Start = int(n)
		}
		if n, ok := number(fields["end"]); ok {
			entity.End = int(n)
		}

		entity, ok = repairPosition(req.Text, entity)
		if !ok {
			continue
		}

		entity.Confidence = defaultEntityConfidence
		if c, ok := number(fields["confidence"]); ok && c >= 0 && c <= 1 {
			entity.Confidence = c
		}

		entities = append(entities, entity)
	}

	return &NERResult{Text: req.Text, Entities: entities}, nil
}

// repairPosition enforces source[start:end] == text. Offsets that do not
// line up are recomputed from the first occurrence of the entity text in the
// source, because models frequently miscount indices. An entity whose text
// does not appear verbatim in the source cannot be repaired and is dropped.
func repairPosition(source string, e Entity) (Entity, bool) {
	if e.Start >= 0 && e.Start < e.End && e.End <= len(source) && source[e.Start:e.End] == e.Text {
		return e, true
	}

	idx := strings.Index(source, e.Text)
	if idx == -1 {
		return e, false
	}

	e.Start = idx
	e.End = idx + len(e.Text)
	return e, true
}
