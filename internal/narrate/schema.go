package narrate

import "github.com/abhisek/mathsheet/internal/llm"

// NarrationSchema defines the JSON schema for narrated explanations.
var NarrationSchema = &llm.Schema{
	Name:        "narration",
	Description: "A learner-facing explanation of a worked solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Short prose walking through the given steps in order",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "One sentence nudging the learner toward the first step without giving the answer",
			},
		},
		"required":             []any{"explanation", "hint"},
		"additionalProperties": false,
	},
}
