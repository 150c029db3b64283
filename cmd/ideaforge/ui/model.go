package ui

import (
	"context"
	"image"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"ideaforge/internal/types"
	"ideaforge/internal/view"
)

// Generator produces idea batches and business plans.
type Generator interface {
	GenerateIdeas(ctx context.Context, req types.UserRequest) (*types.GenerationResult, error)
	GeneratePlan(ctx context.Context, ideaTitle string) (string, error)
}

// FavoriteStore persists the favorited idea list.
type FavoriteStore interface {
	Toggle(idea types.StartupIdea) error
	All() []types.StartupIdea
	IsFavorite(title string) bool
}

// Exporter writes the current batch to a document.
type Exporter interface {
	Export(img image.Image) (string, error)
}

// Renderer turns ideas and links into a raster for export.
type Renderer interface {
	Render(ideas []types.StartupIdea, links []types.GroundingLink) (image.Image, error)
}

// Page identifies the active screen.
type Page int

const (
	FormPage Page = iota
	ResultsPage
	FavoritesPage
)

// Form field indices, traversed top to bottom.
const (
	fieldIndustry = iota
	fieldAudience
	fieldBudget
	fieldTimeToMarket
	fieldSkills
	fieldGenerate
	fieldCount
)

// Messages delivered by async commands.

type ideasResultMsg struct {
	seq    uint64
	result *types.GenerationResult
	err    error
}

type planResultMsg struct {
	seq   uint64
	title string
	plan  string
	err   error
}

type exportDoneMsg struct {
	path string
	err  error
}

// Deps bundles what the interface needs from the rest of the app.
type Deps struct {
	Ideas     Generator
	Favorites FavoriteStore
	Renderer  Renderer
	Exporter  Exporter
	Log       *zap.Logger
}

// Model is the root bubbletea model.
type Model struct {
	deps   Deps
	styles Styles

	page   Page
	width  int
	height int

	// Form state.
	focusField    int
	industryIdx   int
	budgetIdx     int
	timeIdx       int
	skillIdx      int
	skillsChosen  map[string]bool
	audienceInput textinput.Model

	// Results state. result holds the live batch; derivation happens per
	// render so sort and filter changes never mutate it.
	result     *types.GenerationResult
	sortKey    view.SortKey
	riskFilter string
	cursor     int

	// Business plan state; at most one plan at a time.
	plan     string
	planFor  string
	showPlan bool

	// Async state. ideaSeq fences generation: only the response carrying
	// the latest sequence number is applied, so a slow earlier request
	// can never overwrite a newer batch.
	ideaSeq     uint64
	planSeq     uint64
	loading     bool
	planLoading bool
	ideaSpin    spinner.Model
	planSpin    spinner.Model

	errMsg     string
	statusMsg  string
	mdRenderer *glamour.TermRenderer
}

// New builds the root model.
func New(deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	styles := NewStyles(DetectTheme())

	audience := textinput.New()
	audience.Placeholder = "e.g. remote workers, small retailers"
	audience.CharLimit = 120
	audience.Width = 40

	ideaSpin := spinner.New()
	ideaSpin.Spinner = spinner.Dot
	ideaSpin.Style = styles.Cursor

	planSpin := spinner.New()
	planSpin.Spinner = spinner.MiniDot
	planSpin.Style = styles.Cursor

	return Model{
		deps:          deps,
		styles:        styles,
		page:          FormPage,
		industryIdx:   -1,
		budgetIdx:     -1,
		timeIdx:       -1,
		skillsChosen:  map[string]bool{},
		audienceInput: audience,
		sortKey:       view.SortNone,
		riskFilter:    view.RiskFilterAll,
		ideaSpin:      ideaSpin,
		planSpin:      planSpin,
	}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// request assembles the UserRequest from the form state.
func (m Model) request() types.UserRequest {
	req := types.UserRequest{
		TargetAudience: m.audienceInput.Value(),
	}
	if m.industryIdx >= 0 {
		req.Industry = types.IndustryOptions[m.industryIdx]
	}
	if m.budgetIdx >= 0 {
		req.BudgetRange = types.BudgetRangeOptions[m.budgetIdx]
	}
	if m.timeIdx >= 0 {
		req.TimeToMarket = types.TimeToMarketOptions[m.timeIdx]
	}
	for _, skill := range types.SkillOptions {
		if m.skillsChosen[skill] {
			req.Skills = append(req.Skills, skill)
		}
	}
	return req
}

// visibleIdeas derives the list the results page renders.
func (m Model) visibleIdeas() []types.StartupIdea {
	if m.page == FavoritesPage {
		return m.deps.Favorites.All()
	}
	if m.result == nil {
		return nil
	}
	return view.Derive(m.result.Ideas, m.sortKey, m.riskFilter)
}

func (m Model) generateCmd(seq uint64, req types.UserRequest) tea.Cmd {
	svc := m.deps.Ideas
	return func() tea.Msg {
		result, err := svc.GenerateIdeas(context.Background(), req)
		return ideasResultMsg{seq: seq, result: result, err: err}
	}
}

func (m Model) planCmd(seq uint64, title string) tea.Cmd {
	svc := m.deps.Ideas
	return func() tea.Msg {
		plan, err := svc.GeneratePlan(context.Background(), title)
		return planResultMsg{seq: seq, title: title, plan: plan, err: err}
	}
}

func (m Model) exportCmd(ideas []types.StartupIdea, links []types.GroundingLink) tea.Cmd {
	renderer := m.deps.Renderer
	exporter := m.deps.Exporter
	return func() tea.Msg {
		img, err := renderer.Render(ideas, links)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := exporter.Export(img)
		return exportDoneMsg{path: path, err: err}
	}
}

// renderMarkdown renders a business plan for terminal display, falling
// back to the raw text when the renderer is unavailable.
func (m *Model) renderMarkdown(text string) string {
	if m.mdRenderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(m.width-4, 100)),
		)
		if err != nil {
			return text
		}
		m.mdRenderer = r
	}
	out, err := m.mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// Run starts the interactive interface and blocks until exit.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
