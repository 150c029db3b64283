package ui

import (
	"fmt"
	"strings"

	"ideaforge/internal/types"
)

// View renders the active page.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("ideaforge"))
	b.WriteString("\n\n")

	switch m.page {
	case FormPage:
		b.WriteString(m.viewForm())
	case ResultsPage, FavoritesPage:
		if m.showPlan {
			b.WriteString(m.viewPlan())
		} else {
			b.WriteString(m.viewList())
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.footerHelp()))
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Describe your constraints"))
	b.WriteString("\n\n")

	row := func(field int, label, value string) {
		marker := "  "
		if m.focusField == field {
			marker = m.styles.Cursor.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			marker, m.styles.Label.Render(label), value))
	}

	row(fieldIndustry, "Industry:", m.optionValue(m.industryIdx, types.IndustryOptions))
	row(fieldAudience, "Target audience:", m.audienceInput.View())
	row(fieldBudget, "Budget range:", m.optionValue(m.budgetIdx, types.BudgetRangeOptions))
	row(fieldTimeToMarket, "Time to market:", m.optionValue(m.timeIdx, types.TimeToMarketOptions))
	row(fieldSkills, "Skills:", m.skillsValue())

	b.WriteString("\n")
	button := "[ Generate ideas ]"
	if m.loading {
		button = m.ideaSpin.View() + " Validating ideas with live market data..."
	}
	if m.focusField == fieldGenerate && !m.loading {
		button = m.styles.Selected.Render(button)
	}
	b.WriteString("  " + button + "\n")
	return b.String()
}

func (m Model) optionValue(idx int, options []string) string {
	if idx < 0 {
		return m.styles.Muted.Render("(any)")
	}
	return m.styles.Value.Render(options[idx])
}

func (m Model) skillsValue() string {
	var parts []string
	for i, skill := range types.SkillOptions {
		label := skill
		if m.skillsChosen[skill] {
			label = "[x] " + label
		} else {
			label = "[ ] " + label
		}
		if m.focusField == fieldSkills && i == m.skillIdx {
			label = m.styles.Selected.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewList() string {
	var b strings.Builder

	if m.page == FavoritesPage {
		b.WriteString(m.styles.Title.Render("Favorites"))
	} else {
		b.WriteString(m.styles.Title.Render("Validated ideas"))
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("   sort: %s   risk: %s", m.sortKey, m.riskFilter)))
	}
	b.WriteString("\n\n")

	ideas := m.visibleIdeas()
	if len(ideas) == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing here yet."))
		b.WriteString("\n")
		return b.String()
	}

	for i, idea := range ideas {
		b.WriteString(m.viewIdea(i, idea))
		b.WriteString("\n")
	}

	if m.page == ResultsPage && m.result != nil && len(m.result.GroundingLinks) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Sources"))
		b.WriteString("\n")
		for _, link := range m.result.GroundingLinks {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %s - %s", link.Title, link.URI)))
			b.WriteString("\n")
		}
	}

	if m.planLoading {
		b.WriteString("\n")
		b.WriteString(m.planSpin.View() + " Writing business plan...")
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewIdea(i int, idea types.StartupIdea) string {
	marker := "  "
	if i == m.cursor {
		marker = m.styles.Cursor.Render("> ")
	}
	star := "  "
	if m.deps.Favorites.IsFavorite(idea.Title) {
		star = m.styles.Favorite.Render("* ")
	}

	head := fmt.Sprintf("%s%s%s  %s  %s",
		marker, star,
		m.styles.Subtitle.Render(idea.Title),
		m.styles.RiskStyle(string(idea.RiskAnalysis)).Render(string(idea.RiskAnalysis)),
		m.styles.Muted.Render(fmt.Sprintf("%.1f/10", idea.MarketOpportunityScore)))

	if i != m.cursor {
		return head + "\n"
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n")
	detail := []string{
		idea.Description,
		fmt.Sprintf("Costs: %s   Revenue: %s   Time to market: %s",
			idea.EstimatedStartupCosts, idea.RevenuePotential, idea.TimeToMarket),
	}
	if idea.TargetMarketSize != "" {
		detail = append(detail, "Market size: "+idea.TargetMarketSize)
	}
	if len(idea.NextSteps) > 0 {
		detail = append(detail, "Next: "+strings.Join(idea.NextSteps, "; "))
	}
	b.WriteString(m.styles.Card.Width(max(m.width-6, 40)).Render(strings.Join(detail, "\n")))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewPlan() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Business plan: " + m.planFor))
	b.WriteString("\n")
	mm := m
	b.WriteString(mm.renderMarkdown(m.plan))
	return b.String()
}

func (m Model) footerHelp() string {
	switch {
	case m.page == FormPage:
		return "tab/arrows move - left/right pick - space toggle skill - enter generate - q quit"
	case m.showPlan:
		return "esc close plan"
	default:
		return "j/k move - s sort - r risk filter - f favorite - p plan - e export - tab favorites - g new - q quit"
	}
}
