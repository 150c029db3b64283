// Package export turns a rendered idea list into a paginated A4 PDF.
// The raster is upscaled 2x for legibility, sliced into page-height
// bands, written out as page images, and assembled with pdfcpu.
// Pagination math lives in PageOffsets so it can be tested without a
// rendering surface.
package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Filename is the fixed name of the exported document.
const Filename = "Startup_Ideas_Validation.pdf"

// A4 aspect ratio, 210mm x 297mm.
const a4HeightPerWidth = 297.0 / 210.0

// upscale factor applied before slicing, for print legibility.
const upscale = 2

// ErrNoContent reports an export attempt with nothing rendered yet.
var ErrNoContent = errors.New("no rendered content to export")

// ExportError is the user-facing failure for any export problem.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	if errors.Is(e.Err, ErrNoContent) {
		return "No content to export for PDF."
	}
	return fmt.Sprintf("Failed to export to PDF: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Exporter writes the paginated document into OutputDir.
type Exporter struct {
	OutputDir string
	log       *zap.Logger
}

// NewExporter creates an exporter targeting dir (default: working dir).
func NewExporter(dir string, log *zap.Logger) *Exporter {
	if dir == "" {
		dir = "."
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{OutputDir: dir, log: log}
}

// Export rasterizes img into consecutive A4 pages and saves the document.
// A nil or empty image fails with an *ExportError wrapping ErrNoContent
// before anything touches the filesystem.
func (e *Exporter) Export(img image.Image) (string, error) {
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return "", &ExportError{Err: ErrNoContent}
	}

	outPath := filepath.Join(e.OutputDir, Filename)
	if err := e.export(img, outPath); err != nil {
		return "", &ExportError{Err: err}
	}
	return outPath, nil
}

func (e *Exporter) export(img image.Image, outPath string) error {
	src := img.Bounds()
	w := src.Dx() * upscale
	h := src.Dy() * upscale

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, src, draw.Over, nil)

	pageH := int(float64(w) * a4HeightPerWidth)
	offsets := PageOffsets(h, pageH)
	e.log.Debug("paginating export",
		zap.Int("raster_width", w),
		zap.Int("raster_height", h),
		zap.Int("pages", len(offsets)))

	tmpDir, err := os.MkdirTemp("", "ideaforge-export-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// One PNG per band; encoding is independent per page.
	pages := make([]string, len(offsets))
	var g errgroup.Group
	for i, off := range offsets {
		pages[i] = filepath.Join(tmpDir, fmt.Sprintf("page_%03d.png", i))
		g.Go(func() error {
			band := image.NewRGBA(image.Rect(0, 0, w, pageH))
			// Area below the raster stays white on the last page.
			draw.Draw(band, band.Bounds(), image.White, image.Point{}, draw.Src)
			draw.Draw(band, band.Bounds(), scaled, image.Pt(0, off), draw.Over)
			if err := gg.SavePNG(pages[i], band); err != nil {
				return fmt.Errorf("failed to encode page %d: %w", i+1, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	imp, err := api.Import("form:A4, pos:full", pdftypes.POINTS)
	if err != nil {
		return fmt.Errorf("failed to build import config: %w", err)
	}
	if err := api.ImportImagesFile(pages, outPath, imp, nil); err != nil {
		return fmt.Errorf("failed to assemble PDF: %w", err)
	}

	e.log.Info("exported document", zap.String("path", outPath), zap.Int("pages", len(pages)))
	return nil
}
