package ui

import (
	"context"
	"image"
	"testing"

	"ideaforge/internal/types"
	"ideaforge/internal/view"
)

type stubGenerator struct{}

func (stubGenerator) GenerateIdeas(context.Context, types.UserRequest) (*types.GenerationResult, error) {
	return &types.GenerationResult{}, nil
}

func (stubGenerator) GeneratePlan(context.Context, string) (string, error) {
	return "", nil
}

type memFavorites struct {
	ideas []types.StartupIdea
}

func (f *memFavorites) Toggle(idea types.StartupIdea) error {
	for i, existing := range f.ideas {
		if existing.Title == idea.Title {
			f.ideas = append(f.ideas[:i], f.ideas[i+1:]...)
			return nil
		}
	}
	f.ideas = append(f.ideas, idea)
	return nil
}

func (f *memFavorites) All() []types.StartupIdea { return f.ideas }

func (f *memFavorites) IsFavorite(title string) bool {
	for _, idea := range f.ideas {
		if idea.Title == title {
			return true
		}
	}
	return false
}

type stubRenderer struct{}

func (stubRenderer) Render([]types.StartupIdea, []types.GroundingLink) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

type stubExporter struct{}

func (stubExporter) Export(image.Image) (string, error) { return "out.pdf", nil }

func testModel() Model {
	return New(Deps{
		Ideas:     stubGenerator{},
		Favorites: &memFavorites{},
		Renderer:  stubRenderer{},
		Exporter:  stubExporter{},
	})
}

func batch(titles ...string) *types.GenerationResult {
	result := &types.GenerationResult{}
	for _, title := range titles {
		result.Ideas = append(result.Ideas, types.StartupIdea{Title: title})
	}
	return result
}

func TestStaleGenerationResultDropped(t *testing.T) {
	m := testModel()

	// Two generations issued back to back; only the second may land.
	next, _ := m.startGeneration()
	m = next.(Model)
	next, _ = m.startGeneration()
	m = next.(Model)
	if m.ideaSeq != 2 {
		t.Fatalf("ideaSeq = %d, want 2", m.ideaSeq)
	}

	next, _ = m.Update(ideasResultMsg{seq: 1, result: batch("Stale")})
	m = next.(Model)
	if m.result != nil {
		t.Fatal("stale result was applied")
	}
	if !m.loading {
		t.Fatal("stale result cleared the loading state")
	}

	next, _ = m.Update(ideasResultMsg{seq: 2, result: batch("Fresh")})
	m = next.(Model)
	if m.loading {
		t.Error("current result left loading set")
	}
	if m.result == nil || m.result.Ideas[0].Title != "Fresh" {
		t.Errorf("result = %+v, want the fresh batch", m.result)
	}
	if m.page != ResultsPage {
		t.Errorf("page = %v, want ResultsPage", m.page)
	}
}

func TestStaleResultAfterFreshOneIgnored(t *testing.T) {
	m := testModel()

	next, _ := m.startGeneration()
	m = next.(Model)
	next, _ = m.startGeneration()
	m = next.(Model)

	next, _ = m.Update(ideasResultMsg{seq: 2, result: batch("Fresh")})
	m = next.(Model)
	next, _ = m.Update(ideasResultMsg{seq: 1, result: batch("Stale")})
	m = next.(Model)

	if m.result.Ideas[0].Title != "Fresh" {
		t.Errorf("late stale result overwrote the current batch: %+v", m.result)
	}
}

func TestGenerationErrorSurfacesAndClears(t *testing.T) {
	m := testModel()

	next, _ := m.startGeneration()
	m = next.(Model)
	next, _ = m.Update(ideasResultMsg{seq: 1, err: errFake("boom")})
	m = next.(Model)
	if m.errMsg != "boom" {
		t.Fatalf("errMsg = %q", m.errMsg)
	}

	// A new attempt clears the previous error immediately.
	next, _ = m.startGeneration()
	m = next.(Model)
	if m.errMsg != "" {
		t.Error("starting a generation did not clear the error")
	}
}

func TestNewGenerationResetsDerivationState(t *testing.T) {
	m := testModel()
	next, _ := m.startGeneration()
	m = next.(Model)
	next, _ = m.Update(ideasResultMsg{seq: 1, result: batch("A", "B")})
	m = next.(Model)

	m.sortKey = view.SortScore
	m.riskFilter = string(types.RiskLow)
	m.cursor = 1
	m.plan = "old plan"
	m.planFor = "A"

	next, _ = m.startGeneration()
	m = next.(Model)
	next, _ = m.Update(ideasResultMsg{seq: 2, result: batch("C")})
	m = next.(Model)

	if m.sortKey != view.SortNone || m.riskFilter != view.RiskFilterAll {
		t.Errorf("derivation state survived: sort=%v filter=%q", m.sortKey, m.riskFilter)
	}
	if m.cursor != 0 || m.plan != "" || m.planFor != "" {
		t.Error("selection or plan state survived a new batch")
	}
}

func TestNextRiskFilterCycles(t *testing.T) {
	got := view.RiskFilterAll
	want := []string{"Low", "Medium", "High", view.RiskFilterAll}
	for i, expected := range want {
		got = nextRiskFilter(got)
		if got != expected {
			t.Fatalf("step %d: filter = %q, want %q", i, got, expected)
		}
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
