// Package parse converts raw model responses into domain records. The
// decode is structural only: a payload that parses as JSON but omits
// fields passes through, and callers that want guarantees opt into
// Strict explicitly.
package parse

import (
	"encoding/json"
	"fmt"
	"regexp"

	"ideaforge/internal/types"
)

// ResponseFormatError reports a model response that could not be
// interpreted as the expected structured payload. Raw carries the full
// response text for diagnosis.
type ResponseFormatError struct {
	Raw string
	Err error
}

func (e *ResponseFormatError) Error() string {
	return "Failed to parse AI response. Please try again or refine your prompt."
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// Models often wrap the payload in a fenced block with prose around it;
// when such a block exists it wins over the surrounding text.
var fencedJSON = regexp.MustCompile("(?s)```json\n(.*?)\n```")

// ExtractJSON returns the JSON candidate from a raw response: the content
// of the first ```json fence when present, otherwise the raw text itself.
func ExtractJSON(raw string) string {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// DecodeIdeas parses a raw response into idea records. On failure under
// either extraction strategy it returns a *ResponseFormatError and no
// partial result.
func DecodeIdeas(raw string) ([]types.StartupIdea, error) {
	candidate := ExtractJSON(raw)

	var ideas []types.StartupIdea
	if err := json.Unmarshal([]byte(candidate), &ideas); err != nil {
		return nil, &ResponseFormatError{Raw: raw, Err: err}
	}
	return ideas, nil
}

// Strict validates that an idea carries every required field, a score in
// range, and a known risk classification. It is an explicit opt-in pass;
// the generation path deliberately accepts under-specified records.
func Strict(idea types.StartupIdea) error {
	if idea.Title == "" {
		return fmt.Errorf("idea missing title")
	}
	if idea.Description == "" {
		return fmt.Errorf("idea %q missing description", idea.Title)
	}
	if idea.MarketOpportunityScore < 0 || idea.MarketOpportunityScore > 10 {
		return fmt.Errorf("idea %q has out-of-range score %v", idea.Title, idea.MarketOpportunityScore)
	}
	if !idea.RiskAnalysis.Valid() {
		return fmt.Errorf("idea %q has unknown risk level %q", idea.Title, idea.RiskAnalysis)
	}
	if idea.EstimatedStartupCosts == "" {
		return fmt.Errorf("idea %q missing estimated startup costs", idea.Title)
	}
	if idea.RevenuePotential == "" {
		return fmt.Errorf("idea %q missing revenue potential", idea.Title)
	}
	if idea.TimeToMarket == "" {
		return fmt.Errorf("idea %q missing time to market", idea.Title)
	}
	if len(idea.NextSteps) == 0 {
		return fmt.Errorf("idea %q missing next steps", idea.Title)
	}
	return nil
}
