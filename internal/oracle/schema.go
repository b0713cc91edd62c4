package oracle

import "github.com/pwspen/vlmcar/internal/decision"

// responseFormatFor builds the structured-output contract the model
// must satisfy. Bounds declared here are re-checked at decode time;
// the declaration just steers the model.
func responseFormatFor(s decision.Schema) *responseFormat {
	switch s {
	case decision.SchemaParametric:
		return &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "drive_command",
				Strict: true,
				Schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type": "string",
							"enum": []string{string(decision.KindMove), string(decision.KindRotate)},
						},
						"magnitude": map[string]any{
							"type":        "number",
							"description": "move: meters in [-1, 1], positive forward; rotate: degrees in [-180, 180], positive clockwise",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "what the most recent image shows",
						},
						"notes": map[string]any{
							"type":        "string",
							"description": "where you want to get to and how this movement helps",
						},
					},
					"required":             []string{"kind", "magnitude", "description", "notes"},
					"additionalProperties": false,
				},
			},
		}
	default:
		return &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "drive_command",
				Strict: true,
				Schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"command": map[string]any{
							"type": "string",
							"enum": []string{
								string(decision.CommandForward),
								string(decision.CommandReverse),
								string(decision.CommandRotateRight),
								string(decision.CommandRotateLeft),
							},
						},
						"notes": map[string]any{
							"type":        "string",
							"description": "where you want to get to and how this movement helps",
						},
					},
					"required":             []string{"command", "notes"},
					"additionalProperties": false,
				},
			},
		}
	}
}
