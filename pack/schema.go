package pack

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// manifestSchema is the JSON schema for AnalysisPack manifests. Structure and
// required fields are enforced here; referential integrity (prerequisite ids
// and so on) is the graph validation pass's job.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "AnalysisPack",
  "type": "object",
  "required": ["apiVersion", "kind", "metadata", "spec"],
  "properties": {
    "apiVersion": {"type": "string"},
    "kind": {"type": "string"},
    "metadata": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string"}
      }
    },
    "spec": {
      "type": "object",
      "required": ["steps"],
      "properties": {
        "engineVersion": {"type": "string"},
        "adaptiveGuidance": {"type": "boolean"},
        "steps": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["id", "title", "category", "complexity"],
            "properties": {
              "id": {"type": "string", "minLength": 1},
              "title": {"type": "string"},
              "category": {
                "enum": ["site_selection", "terrain", "wind", "layout", "performance", "reporting"]
              },
              "complexity": {
                "enum": ["basic", "intermediate", "advanced", "expert"]
              },
              "prerequisites": {"type": "array", "items": {"type": "string"}},
              "next_steps": {"type": "array", "items": {"type": "string"}},
              "estimated_duration": {"type": "integer", "minimum": 0},
              "optional": {"type": "boolean"},
              "requirements": {"type": "array", "items": {"type": "string"}},
              "success_criteria": {"type": "array", "items": {"type": "string"}}
            }
          }
        },
        "gates": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["level"],
            "properties": {
              "level": {"enum": ["intermediate", "advanced", "expert"]},
              "unlocked_features": {"type": "array", "items": {"type": "string"}},
              "description": {"type": "string"},
              "criteria": {
                "type": "object",
                "properties": {
                  "required_steps": {"type": "array", "items": {"type": "string"}},
                  "min_success_rate": {"type": "number", "minimum": 0, "maximum": 1},
                  "min_time_spent_minutes": {"type": "integer", "minimum": 0},
                  "requires_explicit_request": {"type": "boolean"}
                }
              }
            }
          }
        },
        "triggers": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "reveals"],
            "properties": {
              "id": {"type": "string", "minLength": 1},
              "type": {
                "enum": ["step_completion", "user_action", "data_threshold", "time_based"]
              },
              "condition": {
                "type": "object",
                "properties": {
                  "required_steps": {"type": "array", "items": {"type": "string"}},
                  "time_threshold_minutes": {"type": "integer", "minimum": 0},
                  "complexity_level": {
                    "enum": ["basic", "intermediate", "advanced", "expert"]
                  },
                  "expression": {"type": "string"}
                }
              },
              "reveals": {"type": "array", "minItems": 1, "items": {"type": "string"}},
              "priority": {"type": "integer"}
            }
          }
        }
      }
    }
  }
}`

// validateSchema checks raw manifest YAML against the JSON schema.
func validateSchema(yamlData []byte) error {
	var doc any
	if err := yaml.Unmarshal(yamlData, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	jsonData, err := json.Marshal(normalizeKeys(doc))
	if err != nil {
		return fmt.Errorf("cannot convert manifest to JSON: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(manifestSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// normalizeKeys converts map[any]any nodes (which yaml can produce for
// non-scalar keys) into map[string]any so the document marshals to JSON.
func normalizeKeys(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeKeys(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeKeys(item)
		}
		return out
	default:
		return v
	}
}
