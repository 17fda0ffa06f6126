package domain

import (
	"context"
	"image"
	"io"
	"time"
)

// Rasterizer renders every page of a PDF on disk into a raster image
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string, workDir string) ([]PageImage, error)
}

// InkIsolator reduces a page to a binary mask of red ink
type InkIsolator interface {
	Isolate(img image.Image) *image.Gray
}

// TextRecognizer runs OCR over a mask and returns whitespace-delimited words
type TextRecognizer interface {
	Recognize(ctx context.Context, mask Mask) ([]string, error)
}

// Artifact is an open handle on the most recently published report
type Artifact struct {
	Name    string
	ModTime time.Time
	Content io.ReadSeekCloser
}

// ReportStore owns the single most recent report artifact
type ReportStore interface {
	Publish(report *Report) error
	Open() (*Artifact, error)
	TagCounts() ([]TagCount, error)
}

// ExtractionService is the boundary the HTTP layer and CLI drive
type ExtractionService interface {
	Submit(ctx context.Context, filename string, payload io.Reader) (*RunResult, error)
	OpenArtifact() (*Artifact, error)
	TagSummary() ([]TagCount, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetOutputPath() string
	GetArtifactName() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetPageWorkers() int
	GetOCRLanguages() []string
	GetAllowedOrigins() []string
}
