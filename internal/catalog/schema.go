package catalog

// documentSchema is the JSON Schema a catalog document must satisfy before
// it is decoded.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "quests"},
	"properties": map[string]any{
		"version": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"quests": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "questions"},
				"properties": map[string]any{
					"id":         map[string]any{"type": "integer", "minimum": 1},
					"title":      map[string]any{"type": "string", "minLength": 1},
					"topic":      map[string]any{"type": "string"},
					"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
					"lesson":     map[string]any{"type": "string"},
					"questions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "prompt", "choices", "correct_index"},
							"properties": map[string]any{
								"id":     map[string]any{"type": "integer", "minimum": 1},
								"prompt": map[string]any{"type": "string", "minLength": 1},
								"choices": map[string]any{
									"type":     "array",
									"minItems": 2,
									"items":    map[string]any{"type": "string"},
								},
								"correct_index": map[string]any{"type": "integer", "minimum": 0},
								"xp":            map[string]any{"type": "integer", "minimum": 0},
							},
						},
					},
				},
			},
		},
		"daily_tasks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title"},
				"properties": map[string]any{
					"id":     map[string]any{"type": "integer", "minimum": 1},
					"title":  map[string]any{"type": "string", "minLength": 1},
					"xp":     map[string]any{"type": "integer", "minimum": 0},
					"active": map[string]any{"type": "boolean"},
				},
			},
		},
	},
}
