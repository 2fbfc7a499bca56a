package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

// resumeSchema constrains the structured output requested from the model.
var resumeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":    {Type: genai.TypeString},
		"email":   {Type: genai.TypeString},
		"phone":   {Type: genai.TypeString},
		"summary": {Type: genai.TypeString},
		"skills": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"experience": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":    {Type: genai.TypeString},
					"company":  {Type: genai.TypeString},
					"duration": {Type: genai.TypeString},
					"responsibilities": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
				},
			},
		},
		"education": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"degree":      {Type: genai.TypeString},
					"institution": {Type: genai.TypeString},
					"year":        {Type: genai.TypeString},
				},
			},
		},
		"githubUrl": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"publications": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"name", "email", "skills", "experience", "education", "summary"},
}

var assessmentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":      {Type: genai.TypeNumber, Description: "A score from 0 to 100"},
		"strengths":  {Type: genai.TypeString},
		"weaknesses": {Type: genai.TypeString},
		"reasoning":  {Type: genai.TypeString},
	},
	Required: []string{"score", "strengths", "weaknesses", "reasoning"},
}

// The validation schemas are looser than the generation schemas: the model
// sometimes answers with nulls, numeric strings or lists where text is expected,
// and those are coerced during decoding.
const resumeValidationJSON = `{
  "type": "object",
  "required": ["skills", "experience", "education"],
  "properties": {
    "name": {"type": ["string", "null"]},
    "email": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "summary": {"type": ["string", "null"]},
    "skills": {"type": ["array", "string", "null"], "items": {"type": ["string", "null"]}},
    "experience": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": ["string", "null"]},
          "company": {"type": ["string", "null"]},
          "duration": {"type": ["string", "null"]},
          "responsibilities": {"type": ["string", "array", "null"]}
        }
      }
    },
    "education": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "degree": {"type": ["string", "null"]},
          "institution": {"type": ["string", "null"]},
          "year": {"type": ["string", "number", "null"]}
        }
      }
    },
    "githubUrl": {"type": ["string", "null"]},
    "publications": {"type": ["array", "null"], "items": {"type": ["string", "null"]}}
  }
}`

const assessmentValidationJSON = `{
  "type": "object",
  "required": ["score"],
  "properties": {
    "score": {"type": ["number", "string"]},
    "strengths": {"type": ["string", "array", "null"]},
    "weaknesses": {"type": ["string", "array", "null"]},
    "reasoning": {"type": ["string", "null"]}
  }
}`

var (
	resumeValidator     = mustSchema(resumeValidationJSON)
	assessmentValidator = mustSchema(assessmentValidationJSON)
)

func mustSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile json schema: %v", err))
	}
	return schema
}

// decodeResponse strips code fences, validates the payload against schema and
// decodes it into out using weakly typed mapstructure rules.
func decodeResponse(raw string, schema *gojsonschema.Schema, out any) error {
	payload := extractJSON(raw)
	if payload == "" {
		return errors.New("response does not contain a JSON object")
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return fmt.Errorf("parse response json: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("response does not match schema: %s", strings.Join(msgs, "; "))
	}

	var generic map[string]any
	if err := json.Unmarshal([]byte(payload), &generic); err != nil {
		return fmt.Errorf("parse response json: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       joinStringSlices,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(generic); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// joinStringSlices turns a list into newline separated text when the target field is a string.
func joinStringSlices(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Slice {
		return data, nil
	}
	items, ok := data.([]any)
	if !ok {
		return data, nil
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if text := strings.TrimSpace(fmt.Sprint(item)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSpace(strings.TrimPrefix(text, "json"))
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}
