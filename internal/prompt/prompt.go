// Package prompt renders a user's preferences into the instruction text and
// output-schema descriptor sent with a generation request. Everything here is
// a pure function of its input; unset fields resolve to neutral phrases so
// the rendered prompt never contains an empty placeholder.
package prompt

import (
	"fmt"
	"strings"

	"ideaforge/internal/types"
)

// SystemInstruction frames the model as a startup validator and pins the
// output expectations for each schema field.
const SystemInstruction = `You are an expert startup idea validator and market analyst.
Your goal is to generate highly detailed and realistic business ideas based on user inputs,
providing comprehensive market analysis, competitor insights, trend data, and viability ratings.
You MUST leverage up-to-date information from Google Search for market data, trends, and competitor analysis.
Provide specific numbers, statistics, and actionable insights.

When validating ideas, consider the following criteria:
- Current market trends and demand
- Competition saturation level
- Profitability potential
- Scalability
- Required expertise match
- Market timing
- Regulatory challenges
- Technology availability

Generate 3 distinct startup ideas, each following the exact JSON structure provided in the response schema.
Ensure all fields are populated with specific, data-driven content based on real-world information.
For 'Estimated Startup Costs' and 'Revenue Potential', provide realistic financial figures (e.g., "$5,000 - $15,000" or "$20,000/month - $50,000/month").
For 'Target Market Size', provide estimated numbers.
For 'Key Competitors', list 3-5 actual companies with brief descriptions of their offerings.
For 'Current Trends', list 3-5 relevant and verifiable trends, and for each trend, provide a brief insight on how it directly impacts the viability or potential of the startup idea.
For 'Risk Analysis', provide 3-5 specific factors.
For 'Next Steps', provide 5 actionable items.
For 'Required Resources', provide specific examples for team roles, tools, and technologies.
For 'Time to Market', provide a realistic timeline.
If applicable, include success stories and resource links, making sure they are real and verifiable URLs.`

// Fallback phrases for unset request fields.
const (
	FallbackIndustry  = "Any"
	FallbackAudience  = "General consumers/businesses"
	FallbackTimeframe = "Flexible"
	FallbackSkills    = "no specific skills"
	FallbackBudget    = "unspecified budget"
)

// BudgetPhrase expands a budget range value into a descriptive phrase.
// Unknown or empty values map to the unspecified-budget fallback.
func BudgetPhrase(budgetRange string) string {
	switch budgetRange {
	case "$0-$10k":
		return "very low budget (under $10,000)"
	case "$10k-$50k":
		return "low to medium budget ($10,000 - $50,000)"
	case "$50k-$100k":
		return "medium budget ($50,000 - $100,000)"
	case "$100k+":
		return "high budget (over $100,000)"
	default:
		return FallbackBudget
	}
}

// SkillsPhrase joins skill tags with commas, with a fallback when empty.
func SkillsPhrase(skills []string) string {
	if len(skills) == 0 {
		return FallbackSkills
	}
	return strings.Join(skills, ", ")
}

func orFallback(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// BuildIdeaPrompt renders the user prompt for idea generation. Exactly 3
// ideas are requested; every line carries a concrete value.
func BuildIdeaPrompt(req types.UserRequest) string {
	var b strings.Builder
	b.WriteString("Generate 3 innovative startup ideas considering the following:\n")
	fmt.Fprintf(&b, "- Industry/Sector: %s\n", orFallback(req.Industry, FallbackIndustry))
	fmt.Fprintf(&b, "- Target Audience: %s\n", orFallback(req.TargetAudience, FallbackAudience))
	fmt.Fprintf(&b, "- Budget Range: %s\n", BudgetPhrase(req.BudgetRange))
	fmt.Fprintf(&b, "- Time to Market Preference: %s\n", orFallback(req.TimeToMarket, FallbackTimeframe))
	fmt.Fprintf(&b, "- Available Skills: %s\n", SkillsPhrase(req.Skills))
	b.WriteString("\nPlease ensure the ideas are highly relevant to current market conditions, ")
	b.WriteString("address specific pain points, and have clear paths to profitability and scalability.\n")
	b.WriteString("Provide detailed analysis as per the specified JSON schema.")
	return b.String()
}

// BuildPlanPrompt renders the prompt for a mini business plan. The section
// list and word budget are fixed.
func BuildPlanPrompt(ideaTitle string) string {
	return fmt.Sprintf(`Generate a concise business plan outline for the startup idea: %q.
Include sections like Executive Summary, Problem Statement, Solution, Target Market, Competition, Marketing Strategy, Operations Plan, Management Team, and Financial Projections Summary.
Keep it to around 300-500 words.`, ideaTitle)
}
