package export

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"ideaforge/internal/types"
)

// Renderer draws an idea list into a single tall raster that the
// exporter later slices into pages.
type Renderer struct {
	width    int
	margin   float64
	bodyFace font.Face
	boldFace font.Face
	lineH    float64
}

// NewRenderer builds a renderer for the given raster width in pixels.
// A non-positive width falls back to 1240.
func NewRenderer(width int) (*Renderer, error) {
	if width <= 0 {
		width = 1240
	}
	const bodySize = 16

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	return &Renderer{
		width:    width,
		margin:   40,
		bodyFace: truetype.NewFace(regular, &truetype.Options{Size: bodySize}),
		boldFace: truetype.NewFace(bold, &truetype.Options{Size: 20}),
		lineH:    bodySize * 1.5,
	}, nil
}

type block struct {
	text     string
	bold     bool
	gapAfter float64
}

// Render lays out the ideas and source links top to bottom and returns
// the finished raster. The height is computed from a measuring pass so
// the canvas fits the content exactly.
func (r *Renderer) Render(ideas []types.StartupIdea, links []types.GroundingLink) (image.Image, error) {
	blocks := r.blocks(ideas, links)
	contentW := float64(r.width) - 2*r.margin

	// Measuring pass.
	measure := gg.NewContext(r.width, 1)
	height := 2 * r.margin
	for _, b := range blocks {
		measure.SetFontFace(r.face(b.bold))
		lines := measure.WordWrap(b.text, contentW)
		height += float64(len(lines))*r.lineH + b.gapAfter
	}

	dc := gg.NewContext(r.width, int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.06, 0.12, 0.22)

	y := r.margin
	for _, b := range blocks {
		dc.SetFontFace(r.face(b.bold))
		for _, line := range dc.WordWrap(b.text, contentW) {
			y += r.lineH
			dc.DrawString(line, r.margin, y)
		}
		y += b.gapAfter
	}
	return dc.Image(), nil
}

func (r *Renderer) face(bold bool) font.Face {
	if bold {
		return r.boldFace
	}
	return r.bodyFace
}

func (r *Renderer) blocks(ideas []types.StartupIdea, links []types.GroundingLink) []block {
	var out []block
	head := func(text string, gap float64) {
		out = append(out, block{text: text, bold: true, gapAfter: gap})
	}
	line := func(text string) {
		out = append(out, block{text: text})
	}

	head("Startup Ideas Validation", 20)

	for i, idea := range ideas {
		head(fmt.Sprintf("%d. %s", i+1, idea.Title), 8)
		line(idea.Description)
		line(fmt.Sprintf("Market opportunity: %.1f/10 - %s",
			idea.MarketOpportunityScore, idea.MarketOpportunityExplanation))
		if idea.TargetMarketSize != "" {
			line(fmt.Sprintf("Target market size: %s", idea.TargetMarketSize))
		}
		line(fmt.Sprintf("Estimated startup costs: %s   Revenue potential: %s",
			idea.EstimatedStartupCosts, idea.RevenuePotential))
		line(fmt.Sprintf("Risk: %s (%s)", idea.RiskAnalysis, strings.Join(idea.RiskFactors, "; ")))
		if len(idea.KeyCompetitors) > 0 {
			names := make([]string, len(idea.KeyCompetitors))
			for j, c := range idea.KeyCompetitors {
				names[j] = c.Name
			}
			line(fmt.Sprintf("Competitors: %s", strings.Join(names, ", ")))
		}
		for _, trend := range idea.CurrentTrends {
			line(fmt.Sprintf("Trend: %s - %s", trend.Trend, trend.Insight))
		}
		if len(idea.NextSteps) > 0 {
			line(fmt.Sprintf("Next steps: %s", strings.Join(idea.NextSteps, "; ")))
		}
		line(fmt.Sprintf("Team: %s | Tools: %s | Technology: %s",
			strings.Join(idea.RequiredResources.Team, ", "),
			strings.Join(idea.RequiredResources.Tools, ", "),
			strings.Join(idea.RequiredResources.Technology, ", ")))
		out = append(out, block{
			text:     fmt.Sprintf("Time to market: %s", idea.TimeToMarket),
			gapAfter: 24,
		})
	}

	if len(links) > 0 {
		head("Sources", 8)
		for _, link := range links {
			line(fmt.Sprintf("%s - %s", link.Title, link.URI))
		}
	}
	return out
}
