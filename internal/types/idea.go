// Package types defines the shared data contracts for ideaforge:
// the user's generation request, the structured startup idea analysis
// returned by the model, and the citation metadata attached to a
// search-grounded response. These are pure records with no behavior.
package types

// RiskLevel classifies the overall risk of a startup idea.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Valid reports whether r is one of the three known classifications.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// UserRequest captures the preferences a user submits for one generation
// round. Every field is optional; the prompt builder substitutes neutral
// phrases for anything left unset. A request is created fresh per
// generation and never mutated afterwards.
type UserRequest struct {
	Industry       string   `json:"industry" yaml:"industry"`
	TargetAudience string   `json:"targetAudience" yaml:"target_audience"`
	BudgetRange    string   `json:"budgetRange" yaml:"budget_range"`
	TimeToMarket   string   `json:"timeToMarket" yaml:"time_to_market"`
	Skills         []string `json:"skills" yaml:"skills"`
}

// Competitor is one known player in the idea's market.
type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Trend pairs a market trend with an insight on how it affects the idea.
type Trend struct {
	Trend   string `json:"trend"`
	Insight string `json:"insight"`
}

// LinkRef is a titled URL (success story or resource link).
type LinkRef struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// RequiredResources names what building the idea takes, split into
// team roles, tools, and technology.
type RequiredResources struct {
	Team       []string `json:"team"`
	Tools      []string `json:"tools"`
	Technology []string `json:"technology"`
}

// StartupIdea is one structured analysis record produced by the model.
// JSON field names mirror the response schema sent with the generation
// request, so a conformant reply decodes directly into this struct.
//
// Titles act as identifiers for favoriting and list keys within a batch.
// Uniqueness is not enforced; downstream logic assumes it holds well
// enough for a 3-idea batch.
type StartupIdea struct {
	Title                        string            `json:"title"`
	Description                  string            `json:"description"`
	MarketOpportunityScore       float64           `json:"marketOpportunityScore"`
	MarketOpportunityExplanation string            `json:"marketOpportunityExplanation"`
	TargetMarketSize             string            `json:"targetMarketSize"`
	KeyCompetitors               []Competitor      `json:"keyCompetitors"`
	CurrentTrends                []Trend           `json:"currentTrends"`
	EstimatedStartupCosts        string            `json:"estimatedStartupCosts"`
	RevenuePotential             string            `json:"revenuePotential"`
	RiskAnalysis                 RiskLevel         `json:"riskAnalysis"`
	RiskFactors                  []string          `json:"riskFactors"`
	NextSteps                    []string          `json:"nextSteps"`
	RequiredResources            RequiredResources `json:"requiredResources"`
	TimeToMarket                 string            `json:"timeToMarket"`

	// Optional extras; the schema does not require them.
	SuccessStories []LinkRef `json:"successStories,omitempty"`
	ResourceLinks  []LinkRef `json:"resourceLinks,omitempty"`
}

// GroundingLink is a citation surfaced by a search-grounded model call.
// Title falls back to the URI when the source carried none.
type GroundingLink struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GenerationResult is the outcome of one idea-generation round trip.
// It is transient session state owned by the caller.
type GenerationResult struct {
	Ideas          []StartupIdea   `json:"ideas"`
	GroundingLinks []GroundingLink `json:"groundingLinks"`
}

// BusinessPlan is the unstructured narrative generated for a single idea.
// At most one plan is held at a time; generating a new one replaces it.
type BusinessPlan struct {
	IdeaTitle string `json:"ideaTitle"`
	Text      string `json:"text"`
}
