package service

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"red-tag-extractor/internal/domain"
)

// MockLogger records log lines; safe for concurrent page workers.
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) add(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg + " " + fmt.Sprint(args...))
}

func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.messages {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// MockRasterizer hands back prepared pages instead of rendering a PDF
type MockRasterizer struct {
	pages []domain.PageImage
	err   error
	calls int
}

func (m *MockRasterizer) Rasterize(ctx context.Context, pdfPath string, workDir string) ([]domain.PageImage, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.pages, nil
}

// inkRegion is a rectangle of a synthetic page and the word printed in it
type inkRegion struct {
	rect image.Rectangle
	ink  color.RGBA
	word string
}

// RegionRecognizer stands in for tesseract: it "reads" a word wherever the
// mask still has foreground pixels inside that word's rectangle.
type RegionRecognizer struct {
	regions map[int][]inkRegion
	failOn  map[int]error
}

func (r *RegionRecognizer) Recognize(ctx context.Context, mask domain.Mask) ([]string, error) {
	if err, ok := r.failOn[mask.Number]; ok {
		return nil, err
	}
	var words []string
	for _, reg := range r.regions[mask.Number] {
		if hasForeground(mask.Image, reg.rect) {
			words = append(words, reg.word)
		}
	}
	return words, nil
}

func hasForeground(img *image.Gray, rect image.Rectangle) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.GrayAt(x, y).Y == 255 {
				return true
			}
		}
	}
	return false
}

var (
	red   = color.RGBA{R: 220, G: 20, B: 30, A: 255}
	black = color.RGBA{R: 10, G: 10, B: 10, A: 255}
)

// syntheticPage paints a white page with the given ink regions
func syntheticPage(number int, regions []inkRegion) domain.PageImage {
	img := image.NewRGBA(image.Rect(0, 0, 200, 120))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	for _, reg := range regions {
		draw.Draw(img, reg.rect, &image.Uniform{C: reg.ink}, image.Point{}, draw.Src)
	}
	return domain.PageImage{Number: number, Image: img}
}
