// Package ideas orchestrates the generation pipeline: prompt rendering,
// one transport round trip, and response parsing. Idea generation and plan
// generation are independent operations; each call is a single best-effort
// attempt with no retries and no shared mutable state.
package ideas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ideaforge/internal/gemini"
	"ideaforge/internal/parse"
	"ideaforge/internal/prompt"
	"ideaforge/internal/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator is the transport surface the service needs. *gemini.Client
// satisfies it; tests substitute fakes.
type Generator interface {
	GenerateStructured(ctx context.Context, systemInstruction, userPrompt string, schema map[string]interface{}) (*gemini.Completion, error)
	GenerateText(ctx context.Context, userPrompt string) (*gemini.Completion, error)
}

// GenerationError wraps a transport or credential failure with the
// user-facing message for the operation that failed.
type GenerationError struct {
	Op  string // "ideas" or "plan"
	Err error
}

func (e *GenerationError) Error() string {
	switch e.Op {
	case "plan":
		return fmt.Sprintf("Failed to generate business plan: %v", e.Err)
	default:
		return fmt.Sprintf("Failed to generate ideas: %v", e.Err)
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Service generates idea batches and business plans.
type Service struct {
	client Generator
	log    *zap.Logger
}

// NewService wires the service to a transport.
func NewService(client Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{client: client, log: log}
}

// GenerateIdeas performs one schema-constrained, search-grounded round trip
// and returns the parsed batch with its citation links. Parse failures pass
// through as *parse.ResponseFormatError; everything else is wrapped as a
// *GenerationError.
func (s *Service) GenerateIdeas(ctx context.Context, req types.UserRequest) (*types.GenerationResult, error) {
	reqID := uuid.NewString()
	userPrompt := prompt.BuildIdeaPrompt(req)
	s.log.Info("generating ideas",
		zap.String("request_id", reqID),
		zap.String("industry", req.Industry),
		zap.String("budget", req.BudgetRange))

	completion, err := s.client.GenerateStructured(ctx, prompt.SystemInstruction, userPrompt, prompt.IdeaSchema())
	if err != nil {
		s.log.Warn("idea generation failed", zap.String("request_id", reqID), zap.Error(err))
		return nil, &GenerationError{Op: "ideas", Err: err}
	}

	ideasList, err := parse.DecodeIdeas(completion.Text)
	if err != nil {
		var formatErr *parse.ResponseFormatError
		if errors.As(err, &formatErr) {
			s.log.Warn("unparseable idea response",
				zap.String("request_id", reqID),
				zap.Int("raw_len", len(formatErr.Raw)))
		}
		return nil, err
	}

	result := &types.GenerationResult{
		Ideas:          ideasList,
		GroundingLinks: parse.CollectGroundingLinks(completion.GroundingChunks),
	}
	s.log.Info("ideas generated",
		zap.String("request_id", reqID),
		zap.Int("ideas", len(result.Ideas)),
		zap.Int("grounding_links", len(result.GroundingLinks)))
	return result, nil
}

// GeneratePlan performs one unconstrained round trip for a mini business
// plan. The title must be non-empty.
func (s *Service) GeneratePlan(ctx context.Context, ideaTitle string) (string, error) {
	if strings.TrimSpace(ideaTitle) == "" {
		return "", &GenerationError{Op: "plan", Err: fmt.Errorf("idea title is empty")}
	}

	reqID := uuid.NewString()
	s.log.Info("generating business plan",
		zap.String("request_id", reqID),
		zap.String("title", ideaTitle))

	completion, err := s.client.GenerateText(ctx, prompt.BuildPlanPrompt(ideaTitle))
	if err != nil {
		s.log.Warn("plan generation failed", zap.String("request_id", reqID), zap.Error(err))
		return "", &GenerationError{Op: "plan", Err: err}
	}
	return completion.Text, nil
}
