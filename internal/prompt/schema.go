package prompt

// IdeaSchema returns the response-schema descriptor for idea generation:
// an array of idea objects with every field, nested shape, and the
// Low/Medium/High risk enum declared. All core fields are required;
// successStories and resourceLinks are not.
//
// Shaped as a plain map so it marshals straight into the generationConfig
// of the transport request.
func IdeaSchema() map[string]interface{} {
	linkRef := map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{"type": "STRING"},
			"link":  map[string]interface{}{"type": "STRING"},
		},
		"required": []string{"title", "link"},
	}

	return map[string]interface{}{
		"type": "ARRAY",
		"items": map[string]interface{}{
			"type": "OBJECT",
			"properties": map[string]interface{}{
				"title":                        map[string]interface{}{"type": "STRING"},
				"description":                  map[string]interface{}{"type": "STRING"},
				"marketOpportunityScore":       map[string]interface{}{"type": "NUMBER"},
				"marketOpportunityExplanation": map[string]interface{}{"type": "STRING"},
				"targetMarketSize":             map[string]interface{}{"type": "STRING"},
				"keyCompetitors": map[string]interface{}{
					"type": "ARRAY",
					"items": map[string]interface{}{
						"type": "OBJECT",
						"properties": map[string]interface{}{
							"name":        map[string]interface{}{"type": "STRING"},
							"description": map[string]interface{}{"type": "STRING"},
						},
						"required": []string{"name", "description"},
					},
				},
				"currentTrends": map[string]interface{}{
					"type": "ARRAY",
					"items": map[string]interface{}{
						"type": "OBJECT",
						"properties": map[string]interface{}{
							"trend":   map[string]interface{}{"type": "STRING"},
							"insight": map[string]interface{}{"type": "STRING"},
						},
						"required": []string{"trend", "insight"},
					},
				},
				"estimatedStartupCosts": map[string]interface{}{"type": "STRING"},
				"revenuePotential":      map[string]interface{}{"type": "STRING"},
				"riskAnalysis": map[string]interface{}{
					"type": "STRING",
					"enum": []string{"Low", "Medium", "High"},
				},
				"riskFactors": map[string]interface{}{
					"type":  "ARRAY",
					"items": map[string]interface{}{"type": "STRING"},
				},
				"nextSteps": map[string]interface{}{
					"type":  "ARRAY",
					"items": map[string]interface{}{"type": "STRING"},
				},
				"requiredResources": map[string]interface{}{
					"type": "OBJECT",
					"properties": map[string]interface{}{
						"team":       map[string]interface{}{"type": "ARRAY", "items": map[string]interface{}{"type": "STRING"}},
						"tools":      map[string]interface{}{"type": "ARRAY", "items": map[string]interface{}{"type": "STRING"}},
						"technology": map[string]interface{}{"type": "ARRAY", "items": map[string]interface{}{"type": "STRING"}},
					},
					"required": []string{"team", "tools", "technology"},
				},
				"timeToMarket": map[string]interface{}{"type": "STRING"},
				"successStories": map[string]interface{}{
					"type":  "ARRAY",
					"items": linkRef,
				},
				"resourceLinks": map[string]interface{}{
					"type":  "ARRAY",
					"items": linkRef,
				},
			},
			"required": []string{
				"title", "description", "marketOpportunityScore", "marketOpportunityExplanation",
				"targetMarketSize", "keyCompetitors", "currentTrends", "estimatedStartupCosts",
				"revenuePotential", "riskAnalysis", "riskFactors", "nextSteps",
				"requiredResources", "timeToMarket",
			},
		},
	}
}
