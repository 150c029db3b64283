package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ideaforge/internal/types"
	"ideaforge/internal/view"
)

// Update is the root message handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mdRenderer = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.loading {
			var cmd tea.Cmd
			m.ideaSpin, cmd = m.ideaSpin.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.planLoading {
			var cmd tea.Cmd
			m.planSpin, cmd = m.planSpin.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case ideasResultMsg:
		return m.applyIdeasResult(msg)

	case planResultMsg:
		return m.applyPlanResult(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved %s", msg.path)
		return m, nil
	}

	if m.page == FormPage && m.focusField == fieldAudience {
		var cmd tea.Cmd
		m.audienceInput, cmd = m.audienceInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyIdeasResult installs a finished generation, unless a newer request
// has been issued since; stale responses are dropped on the floor.
func (m Model) applyIdeasResult(msg ideasResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.ideaSeq {
		m.deps.Log.Debug("dropping stale generation result",
			zap.Uint64("got_seq", msg.seq),
			zap.Uint64("want_seq", m.ideaSeq))
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return m, nil
	}
	m.result = msg.result
	m.cursor = 0
	m.sortKey = view.SortNone
	m.riskFilter = view.RiskFilterAll
	m.plan = ""
	m.planFor = ""
	m.showPlan = false
	m.page = ResultsPage
	return m, nil
}

func (m Model) applyPlanResult(msg planResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.planSeq {
		return m, nil
	}
	m.planLoading = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return m, nil
	}
	m.plan = msg.plan
	m.planFor = msg.title
	m.showPlan = true
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.page != FormPage || m.focusField != fieldAudience {
			return m, tea.Quit
		}
	}

	switch m.page {
	case FormPage:
		return m.handleFormKey(msg)
	case ResultsPage, FavoritesPage:
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		m.audienceInput.Blur()
		if m.focusField > 0 {
			m.focusField--
		}
	case "down", "tab":
		m.audienceInput.Blur()
		if m.focusField < fieldCount-1 {
			m.focusField++
		}
	case "left":
		m.cycleOption(-1)
	case "right":
		m.cycleOption(1)
	case " ":
		if m.focusField == fieldSkills {
			skill := types.SkillOptions[m.skillIdx]
			m.skillsChosen[skill] = !m.skillsChosen[skill]
			return m, nil
		}
	case "enter":
		if m.focusField == fieldGenerate {
			return m.startGeneration()
		}
		m.audienceInput.Blur()
		if m.focusField < fieldCount-1 {
			m.focusField++
		}
	}

	if m.focusField == fieldAudience {
		cmd := m.audienceInput.Focus()
		var inputCmd tea.Cmd
		m.audienceInput, inputCmd = m.audienceInput.Update(msg)
		return m, tea.Batch(cmd, inputCmd)
	}
	return m, nil
}

// cycleOption moves the option cursor of the focused selector field.
func (m *Model) cycleOption(dir int) {
	cycle := func(idx, n int) int {
		idx += dir
		if idx < -1 {
			idx = n - 1
		}
		if idx >= n {
			idx = -1
		}
		return idx
	}
	switch m.focusField {
	case fieldIndustry:
		m.industryIdx = cycle(m.industryIdx, len(types.IndustryOptions))
	case fieldBudget:
		m.budgetIdx = cycle(m.budgetIdx, len(types.BudgetRangeOptions))
	case fieldTimeToMarket:
		m.timeIdx = cycle(m.timeIdx, len(types.TimeToMarketOptions))
	case fieldSkills:
		m.skillIdx += dir
		if m.skillIdx < 0 {
			m.skillIdx = len(types.SkillOptions) - 1
		}
		if m.skillIdx >= len(types.SkillOptions) {
			m.skillIdx = 0
		}
	}
}

// startGeneration clears the previous error, bumps the request fence, and
// kicks off an async generation.
func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.statusMsg = ""
	m.loading = true
	m.ideaSeq++
	return m, tea.Batch(
		m.ideaSpin.Tick,
		m.generateCmd(m.ideaSeq, m.request()),
	)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showPlan {
		switch msg.String() {
		case "esc", "p", "enter":
			m.showPlan = false
		}
		return m, nil
	}

	ideas := m.visibleIdeas()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(ideas)-1 {
			m.cursor++
		}
	case "g":
		m.page = FormPage
		m.cursor = 0
	case "tab":
		if m.page == ResultsPage {
			m.page = FavoritesPage
		} else {
			m.page = ResultsPage
		}
		m.cursor = 0
	case "s":
		if m.page == ResultsPage {
			switch m.sortKey {
			case view.SortNone:
				m.sortKey = view.SortScore
			case view.SortScore:
				m.sortKey = view.SortCost
			default:
				m.sortKey = view.SortNone
			}
			m.cursor = 0
		}
	case "r":
		if m.page == ResultsPage {
			m.riskFilter = nextRiskFilter(m.riskFilter)
			m.cursor = 0
		}
	case "f":
		if len(ideas) > 0 && m.cursor < len(ideas) {
			if err := m.deps.Favorites.Toggle(ideas[m.cursor]); err != nil {
				m.errMsg = err.Error()
			}
			// The favorites view shrinks when the current row is removed.
			if m.page == FavoritesPage && m.cursor >= len(m.deps.Favorites.All()) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "p":
		if len(ideas) > 0 && m.cursor < len(ideas) {
			title := ideas[m.cursor].Title
			if title == m.planFor && m.plan != "" {
				m.showPlan = true
				return m, nil
			}
			m.errMsg = ""
			m.planLoading = true
			m.planSeq++
			return m, tea.Batch(m.planSpin.Tick, m.planCmd(m.planSeq, title))
		}
	case "e":
		if len(ideas) == 0 {
			m.errMsg = "No content to export for PDF."
			return m, nil
		}
		m.errMsg = ""
		var links []types.GroundingLink
		if m.page == ResultsPage && m.result != nil {
			links = m.result.GroundingLinks
		}
		return m, m.exportCmd(ideas, links)
	}
	return m, nil
}

func nextRiskFilter(current string) string {
	order := []string{
		view.RiskFilterAll,
		string(types.RiskLow),
		string(types.RiskMedium),
		string(types.RiskHigh),
	}
	for i, f := range order {
		if f == current {
			return order[(i+1)%len(order)]
		}
	}
	return view.RiskFilterAll
}
