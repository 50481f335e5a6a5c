// backend/src/ai/parse.go
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/username/saathi/backend/src/models"
)

// insightsSchemaJSON constrains the recognized insight keys to their
// expected shapes. All keys are optional and unknown keys are allowed, so
// a partially-filled response still validates.
const insightsSchemaJSON = `{
	"type": "object",
	"properties": {
		"executive_summary_en": {"type": "string"},
		"executive_summary_hi": {"type": "string"},
		"recommendations":      {"type": "array", "items": {"type": "string"}},
		"recommendations_hi":   {"type": "array", "items": {"type": "string"}},
		"kpi_commentary":       {"type": "object", "additionalProperties": {"type": "string"}},
		"kpi_commentary_hi":    {"type": "object", "additionalProperties": {"type": "string"}},
		"risks":                {"type": "array", "items": {"type": "string"}},
		"opportunities":        {"type": "array", "items": {"type": "string"}}
	}
}`

var insightsSchema = jsonschema.MustCompileString("insights.json", insightsSchemaJSON)

// ParseInsights validates and decodes a raw model response into the
// insights object. Markdown fences and surrounding prose are stripped
// first, since models ignore strict-JSON instructions often enough.
func ParseInsights(raw string) (models.Insights, error) {
	clean := CleanModelJSON(raw)
	if clean == "" {
		return models.Insights{}, fmt.Errorf("empty model response")
	}

	var generic interface{}
	if err := json.Unmarshal([]byte(clean), &generic); err != nil {
		return models.Insights{}, fmt.Errorf("unmarshal model response: %w", err)
	}
	if err := insightsSchema.Validate(generic); err != nil {
		return models.Insights{}, fmt.Errorf("model response failed schema validation: %w", err)
	}

	var out models.Insights
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return models.Insights{}, fmt.Errorf("decode insights: %w", err)
	}
	return out, nil
}

// CleanModelJSON strips ```json fences and any text around the outermost
// JSON object from a model response.
func CleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
