// Package gemini is a thin client for the Gemini generateContent REST API.
// It knows nothing about startup ideas; it sends prompts with an optional
// response schema and Google Search grounding, and returns the text plus
// raw citation chunks.
//
// A missing API key does not fail construction: the call is still attempted
// so the transport error reaches the caller instead of a silent
// short-circuit. Calls are single best-effort attempts with no retries.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the Gemini API over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient builds a client from cfg, filling unset fields from defaults.
func NewClient(cfg Config, log *zap.Logger) *Client {
	def := DefaultConfig(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = def.BaseURL
	}
	if strings.TrimSpace(cfg.IdeaModel) == "" {
		cfg.IdeaModel = def.IdeaModel
	}
	if strings.TrimSpace(cfg.PlanModel) == "" {
		cfg.PlanModel = def.PlanModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = def.MaxOutputTokens
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// GenerateStructured sends a schema-constrained, search-grounded request to
// the idea model and returns the completion with its grounding chunks.
func (c *Client) GenerateStructured(ctx context.Context, systemInstruction, userPrompt string, schema map[string]interface{}) (*Completion, error) {
	req := Request{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: userPrompt}}}},
		SystemInstruction: &Content{
			Parts: []Part{{Text: systemInstruction}},
		},
		GenerationConfig: &GenerationConfig{
			MaxOutputTokens:  c.cfg.MaxOutputTokens,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
		Tools: []Tool{{GoogleSearch: &GoogleSearch{}}},
	}
	if c.cfg.ThinkingBudget > 0 {
		req.GenerationConfig.ThinkingConfig = &ThinkingConfig{ThinkingBudget: c.cfg.ThinkingBudget}
	}
	return c.generate(ctx, c.cfg.IdeaModel, req)
}

// GenerateText sends an unconstrained request to the plan model.
func (c *Client) GenerateText(ctx context.Context, userPrompt string) (*Completion, error) {
	req := Request{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: userPrompt}}}},
	}
	return c.generate(ctx, c.cfg.PlanModel, req)
}

func (c *Client) generate(ctx context.Context, model string, reqBody Request) (*Completion, error) {
	// Apply the configured timeout when the caller's context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, c.cfg.APIKey)

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp Response
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	var text strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	completion := &Completion{Text: strings.TrimSpace(text.String())}
	if gm := apiResp.Candidates[0].GroundingMetadata; gm != nil {
		completion.GroundingChunks = gm.GroundingChunks
		c.log.Debug("grounded completion",
			zap.String("model", model),
			zap.Int("grounding_chunks", len(gm.GroundingChunks)),
			zap.Strings("search_queries", gm.WebSearchQueries))
	}

	c.log.Info("completion",
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(completion.Text)),
		zap.Int("total_tokens", apiResp.UsageMetadata.TotalTokenCount))
	return completion, nil
}
