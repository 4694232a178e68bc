// internal/api/schema.go
package api

import (
	"github.com/xeipuuv/gojsonschema"
)

// pitchRequestSchema is the shape contract for POST /api/v1/pitches. It
// only pins what the pipeline cannot degrade around: the user, the level,
// and a named business. Everything else tolerates missing or dirty values
// downstream.
var pitchRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"userId", "level", "inputs"},
	"properties": map[string]interface{}{
		"userId": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"level": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"plan": map[string]interface{}{
			"type": "string",
		},
		"inputs": map[string]interface{}{
			"type":     "object",
			"required": []string{"businessName"},
			"properties": map[string]interface{}{
				"businessName": map[string]interface{}{
					"type":      "string",
					"minLength": 1,
				},
				"contactName": map[string]interface{}{"type": "string"},
				"email":       map[string]interface{}{"type": "string"},
				"phone":       map[string]interface{}{"type": "string"},
				"city":        map[string]interface{}{"type": "string"},
				"state":       map[string]interface{}{"type": "string"},
				"industry":    map[string]interface{}{"type": "string"},
				"rawReviews":  map[string]interface{}{"type": "array"},
			},
		},
		"branding":    map[string]interface{}{"type": "object"},
		"profile":     map[string]interface{}{"type": "object"},
		"icpId":       map[string]interface{}{"type": "string"},
		"pricingTier": map[string]interface{}{"type": "string"},
	},
}

// validatePitchRequest checks a raw request body against the schema and
// returns the violation descriptions. A body that is not JSON at all
// reports as a single violation.
func validatePitchRequest(body []byte) []string {
	schemaLoader := gojsonschema.NewGoLoader(pitchRequestSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []string{err.Error()}
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		details[i] = desc.String()
	}
	return details
}
