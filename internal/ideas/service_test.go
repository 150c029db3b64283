package ideas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ideaforge/internal/gemini"
	"ideaforge/internal/parse"
	"ideaforge/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	structuredText   string
	structuredChunks []gemini.GroundingChunk
	structuredErr    error
	planText         string
	planErr          error

	lastSystem string
	lastPrompt string
	lastSchema map[string]interface{}
	planPrompt string
}

func (f *fakeGenerator) GenerateStructured(_ context.Context, system, prompt string, schema map[string]interface{}) (*gemini.Completion, error) {
	f.lastSystem = system
	f.lastPrompt = prompt
	f.lastSchema = schema
	if f.structuredErr != nil {
		return nil, f.structuredErr
	}
	return &gemini.Completion{Text: f.structuredText, GroundingChunks: f.structuredChunks}, nil
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (*gemini.Completion, error) {
	f.planPrompt = prompt
	if f.planErr != nil {
		return nil, f.planErr
	}
	return &gemini.Completion{Text: f.planText}, nil
}

const threeIdeas = `[
  {"title":"Idea One","description":"d1","marketOpportunityScore":9,"riskAnalysis":"Low","estimatedStartupCosts":"$5k - $10k"},
  {"title":"Idea Two","description":"d2","marketOpportunityScore":7,"riskAnalysis":"Medium","estimatedStartupCosts":"$50k"},
  {"title":"Idea Three","description":"d3","marketOpportunityScore":8,"riskAnalysis":"High","estimatedStartupCosts":"$100,000+"}
]`

func TestGenerateIdeas(t *testing.T) {
	fake := &fakeGenerator{
		structuredText: threeIdeas,
		structuredChunks: []gemini.GroundingChunk{
			{Web: &gemini.WebSource{URI: "https://src.example", Title: "Source"}},
		},
	}
	svc := NewService(fake, nil)

	result, err := svc.GenerateIdeas(context.Background(), types.UserRequest{Industry: "Tech"})
	require.NoError(t, err)
	require.Len(t, result.Ideas, 3)

	titles := map[string]bool{}
	for _, idea := range result.Ideas {
		titles[idea.Title] = true
	}
	assert.Len(t, titles, 3, "titles should be distinct")

	require.Len(t, result.GroundingLinks, 1)
	assert.Equal(t, "https://src.example", result.GroundingLinks[0].URI)

	assert.Contains(t, fake.lastPrompt, "- Industry/Sector: Tech")
	assert.Contains(t, fake.lastSystem, "startup idea validator")
	assert.NotNil(t, fake.lastSchema)
}

func TestGenerateIdeasTransportError(t *testing.T) {
	fake := &fakeGenerator{structuredErr: fmt.Errorf("connection refused")}
	svc := NewService(fake, nil)

	_, err := svc.GenerateIdeas(context.Background(), types.UserRequest{})
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to generate ideas:"), err.Error())
}

func TestGenerateIdeasParseErrorPassesThrough(t *testing.T) {
	fake := &fakeGenerator{structuredText: "not json at all"}
	svc := NewService(fake, nil)

	_, err := svc.GenerateIdeas(context.Background(), types.UserRequest{})
	require.Error(t, err)

	var formatErr *parse.ResponseFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "not json at all", formatErr.Raw)

	var genErr *GenerationError
	assert.False(t, errors.As(err, &genErr), "parse failures must not be wrapped as generation errors")
}

func TestGeneratePlan(t *testing.T) {
	fake := &fakeGenerator{planText: "## Executive Summary\n\nA plan."}
	svc := NewService(fake, nil)

	plan, err := svc.GeneratePlan(context.Background(), "Idea One")
	require.NoError(t, err)
	assert.Contains(t, plan, "Executive Summary")
	assert.Contains(t, fake.planPrompt, `"Idea One"`)
	assert.Contains(t, fake.planPrompt, "300-500 words")
}

func TestGeneratePlanEmptyTitle(t *testing.T) {
	svc := NewService(&fakeGenerator{}, nil)

	_, err := svc.GeneratePlan(context.Background(), "  ")
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "plan", genErr.Op)
}

func TestGeneratePlanTransportError(t *testing.T) {
	fake := &fakeGenerator{planErr: fmt.Errorf("timeout")}
	svc := NewService(fake, nil)

	_, err := svc.GeneratePlan(context.Background(), "Idea One")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to generate business plan:"), err.Error())
}
