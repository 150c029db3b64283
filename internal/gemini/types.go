package gemini

import "time"

// Config holds the transport settings for the Gemini client.
type Config struct {
	APIKey          string
	BaseURL         string
	IdeaModel       string // schema-constrained, search-grounded generation
	PlanModel       string // plain text generation
	Timeout         time.Duration
	MaxOutputTokens int
	ThinkingBudget  int // token budget for the idea model's reasoning phase
}

// DefaultConfig returns the settings used when the config file carries none.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		IdeaModel:       "gemini-2.5-pro",
		PlanModel:       "gemini-2.5-flash",
		Timeout:         5 * time.Minute,
		MaxOutputTokens: 65536,
		ThinkingBudget:  32768,
	}
}

// Wire types for the generateContent REST endpoint.

// Content is a role-tagged sequence of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is one fragment of request or response content.
type Part struct {
	Text string `json:"text,omitempty"`
}

// ThinkingConfig sets the reasoning token budget.
type ThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget,omitempty"`
}

// GenerationConfig carries the generation parameters.
type GenerationConfig struct {
	Temperature      float64                `json:"temperature,omitempty"`
	MaxOutputTokens  int                    `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
	ThinkingConfig   *ThinkingConfig        `json:"thinkingConfig,omitempty"`
}

// Tool declares a built-in tool. Only Google Search grounding is used here.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"googleSearch,omitempty"`
}

// GoogleSearch enables retrieval-augmented grounding.
type GoogleSearch struct{}

// Request is the generateContent request body.
type Request struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
}

// WebSource is a generic web citation.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ReviewSnippet is a review citation nested inside a maps source.
type ReviewSnippet struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// PlaceAnswerSources holds the nested citations of a maps source.
type PlaceAnswerSources struct {
	ReviewSnippets []ReviewSnippet `json:"reviewSnippets"`
}

// MapsSource is a Google Maps citation, optionally carrying review snippets.
type MapsSource struct {
	URI                string              `json:"uri"`
	Title              string              `json:"title"`
	PlaceAnswerSources *PlaceAnswerSources `json:"placeAnswerSources,omitempty"`
}

// GroundingChunk is one citation entry from groundingMetadata. Exactly one
// of the source shapes is set per entry.
type GroundingChunk struct {
	Web  *WebSource  `json:"web,omitempty"`
	Maps *MapsSource `json:"maps,omitempty"`
}

// GroundingMetadata carries the search-grounding citations of a candidate.
type GroundingMetadata struct {
	GroundingChunks  []GroundingChunk `json:"groundingChunks"`
	WebSearchQueries []string         `json:"webSearchQueries"`
}

// Response is the generateContent response body.
type Response struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
			Role  string `json:"role"`
		} `json:"content"`
		FinishReason      string             `json:"finishReason"`
		GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Completion is what the client hands back to callers: the concatenated
// text parts plus the raw grounding chunks of the first candidate.
type Completion struct {
	Text            string
	GroundingChunks []GroundingChunk
}
