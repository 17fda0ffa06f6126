package service

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"red-tag-extractor/internal/domain"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultRenderDPI is the resolution pages are rasterized at
const DefaultRenderDPI = 300

// FitzRasterizer renders PDF pages with MuPDF (go-fitz). pdfcpu checks the
// file first so broken or encrypted uploads fail before rendering starts.
type FitzRasterizer struct {
	dpi    float64
	logger domain.Logger
}

// NewFitzRasterizer creates a rasterizer; dpi <= 0 falls back to DefaultRenderDPI
func NewFitzRasterizer(dpi float64, logger domain.Logger) *FitzRasterizer {
	if dpi <= 0 {
		dpi = DefaultRenderDPI
	}
	return &FitzRasterizer{dpi: dpi, logger: logger}
}

// DPI returns the resolution pages are rendered at
func (r *FitzRasterizer) DPI() float64 {
	return r.dpi
}

// Rasterize renders every page of pdfPath in order. When workDir is set each
// page is also saved there as page_<n>.png, numbered from 1.
func (r *FitzRasterizer) Rasterize(ctx context.Context, pdfPath string, workDir string) ([]domain.PageImage, error) {
	pageCount, err := r.pageCount(pdfPath)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", domain.ErrDocumentUnreadable, err)
	}
	defer doc.Close()

	if n := doc.NumPage(); n != pageCount {
		r.logger.Warn("Page count mismatch between pdfcpu and mupdf", "pdfcpu", pageCount, "mupdf", n)
		pageCount = n
	}

	pages := make([]domain.PageImage, 0, pageCount)
	for idx := 0; idx < pageCount; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(idx, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to render page %d: %v", domain.ErrDocumentUnreadable, idx+1, err)
		}

		page := domain.PageImage{Number: idx + 1, Image: img}
		if workDir != "" {
			page.Path = filepath.Join(workDir, fmt.Sprintf("page_%d.png", page.Number))
			if err := writePNG(page.Path, img); err != nil {
				return nil, fmt.Errorf("failed to save page %d: %w", page.Number, err)
			}
		}
		r.logger.Debug("PDF page rasterized", "page", page.Number, "total", pageCount, "dpi", r.dpi)
		pages = append(pages, page)
	}

	return pages, nil
}

func (r *FitzRasterizer) pageCount(pdfPath string) (int, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: document has no pages", domain.ErrDocumentUnreadable)
	}
	return count, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
