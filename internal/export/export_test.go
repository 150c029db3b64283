package export

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"ideaforge/internal/types"

	"github.com/google/go-cmp/cmp"
)

func TestPageOffsets(t *testing.T) {
	tests := []struct {
		name  string
		total int
		page  int
		want  []int
	}{
		{"zero height still yields one page", 0, 100, []int{0}},
		{"shorter than a page", 99, 100, []int{0}},
		{"exactly one page", 100, 100, []int{0}},
		{"exact multiple", 300, 100, []int{0, 100, 200}},
		{"remainder adds a page", 250, 100, []int{0, 100, 200}},
		{"one past a boundary", 201, 100, []int{0, 100, 200}},
		{"degenerate page height", 500, 0, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageOffsets(tt.total, tt.page)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PageOffsets(%d, %d) mismatch (-want +got):\n%s", tt.total, tt.page, diff)
			}
		})
	}
}

func TestExportNoContent(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)

	for _, img := range []image.Image{nil, image.NewRGBA(image.Rect(0, 0, 0, 0))} {
		_, err := e.Export(img)
		var exportErr *ExportError
		if !errors.As(err, &exportErr) {
			t.Fatalf("err = %v, want *ExportError", err)
		}
		if !errors.Is(err, ErrNoContent) {
			t.Errorf("err = %v, want ErrNoContent", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir not empty after failed export: %v", entries)
	}
}

func TestRenderAndExport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping raster round trip in short mode")
	}

	r, err := NewRenderer(600)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	ideas := []types.StartupIdea{{
		Title:                  "Test Venture",
		Description:            "A venture used to exercise the render and export path.",
		MarketOpportunityScore: 8.5,
		EstimatedStartupCosts:  "$5k - $10k",
		RevenuePotential:       "$20k/month",
		RiskAnalysis:           types.RiskLow,
		RiskFactors:            []string{"small market"},
		NextSteps:              []string{"build a prototype"},
		TimeToMarket:           "3 months",
	}}
	links := []types.GroundingLink{{URI: "https://example.com", Title: "Example"}}

	img, err := r.Render(ideas, links)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() == 0 {
		t.Fatalf("unexpected raster bounds %v", img.Bounds())
	}

	dir := t.TempDir()
	path, err := NewExporter(dir, nil).Export(img)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != Filename {
		t.Errorf("exported file = %q, want %q", filepath.Base(path), Filename)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exported file is empty")
	}
}
