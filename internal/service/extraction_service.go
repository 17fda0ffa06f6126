package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"red-tag-extractor/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PipelineConfig holds the staging locations and tuning of a pipeline.
// It is passed in at construction so tests and concurrent instances can use
// isolated directories.
type PipelineConfig struct {
	UploadPath  string // per-run directories with the upload and page PNGs
	PageWorkers int    // pages isolated and recognized concurrently
}

// ExtractionService runs the red-ink pipeline for one submitted PDF and
// publishes the resulting report. Submissions are serialized so the single
// published artifact always belongs to the last completed run.
type ExtractionService struct {
	cfg        PipelineConfig
	rasterizer domain.Rasterizer
	isolator   domain.InkIsolator
	recognizer domain.TextRecognizer
	store      domain.ReportStore
	logger     domain.Logger
	newRunID   func() string
	now        func() time.Time

	runMu sync.Mutex
}

// NewExtractionService wires the pipeline stages together
func NewExtractionService(
	cfg PipelineConfig,
	rasterizer domain.Rasterizer,
	isolator domain.InkIsolator,
	recognizer domain.TextRecognizer,
	store domain.ReportStore,
	logger domain.Logger,
) *ExtractionService {
	if cfg.PageWorkers < 1 {
		cfg.PageWorkers = 1
	}
	return &ExtractionService{
		cfg:        cfg,
		rasterizer: rasterizer,
		isolator:   isolator,
		recognizer: recognizer,
		store:      store,
		logger:     logger,
		newRunID:   func() string { return uuid.New().String() },
		now:        time.Now,
	}
}

// Submit stages the uploaded PDF, runs the pipeline and publishes the report.
// On any failure nothing is published and the previous artifact stays intact.
func (s *ExtractionService) Submit(ctx context.Context, filename string, payload io.Reader) (*domain.RunResult, error) {
	if payload == nil || strings.TrimSpace(filename) == "" {
		return nil, &domain.ValidationError{Field: "file", Message: "no file provided", Err: domain.ErrInputMissing}
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, &domain.ValidationError{Field: "file", Message: "filename must end in .pdf", Err: domain.ErrInputFormatInvalid}
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	runID := s.newRunID()
	runDir := filepath.Join(s.cfg.UploadPath, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}

	pdfPath := filepath.Join(runDir, "document.pdf")
	size, err := saveUpload(pdfPath, payload)
	if err != nil {
		os.RemoveAll(runDir)
		return nil, fmt.Errorf("save upload: %w", err)
	}
	if size == 0 {
		os.RemoveAll(runDir)
		return nil, &domain.ValidationError{Field: "file", Message: "uploaded file is empty", Err: domain.ErrInputMissing}
	}

	s.logger.Info("Processing document", "run_id", runID, "filename", filepath.Base(filename), "size", size)

	report, err := s.run(ctx, runID, pdfPath, runDir)
	if err != nil {
		s.logger.Error("Extraction run failed", err, "run_id", runID)
		return nil, err
	}
	if err := s.store.Publish(report); err != nil {
		return nil, fmt.Errorf("publish report: %w", err)
	}

	return &domain.RunResult{
		RunID:       runID,
		Pages:       report.Pages,
		Records:     len(report.Records),
		Tags:        len(report.TagCounts),
		CompletedAt: s.now(),
	}, nil
}

// run executes rasterize -> isolate -> recognize -> extract for every page.
// A recognition failure on any page fails the whole run.
func (s *ExtractionService) run(ctx context.Context, runID, pdfPath, runDir string) (*domain.Report, error) {
	pages, err := s.rasterizer.Rasterize(ctx, pdfPath, runDir)
	if err != nil {
		return nil, err
	}

	perPage := make([][]domain.Record, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.PageWorkers)

	for i, page := range pages {
		g.Go(func() error {
			mask := domain.Mask{Number: page.Number, Image: s.isolator.Isolate(page.Image)}
			words, err := s.recognizer.Recognize(gctx, mask)
			if err != nil {
				return fmt.Errorf("page %d: %w", page.Number, err)
			}
			perPage[i] = ExtractRecords(page.Number, words)
			s.logger.Debug("Page processed", "run_id", runID, "page", page.Number,
				"words", len(words), "records", len(perPage[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildReport(runID, perPage), nil
}

// OpenArtifact returns the most recently published report
func (s *ExtractionService) OpenArtifact() (*domain.Artifact, error) {
	return s.store.Open()
}

// TagSummary returns the tag counts of the latest report; empty when no
// report has been published yet.
func (s *ExtractionService) TagSummary() ([]domain.TagCount, error) {
	counts, err := s.store.TagCounts()
	if err != nil {
		if errors.Is(err, domain.ErrArtifactAbsent) {
			return []domain.TagCount{}, nil
		}
		return nil, err
	}
	return counts, nil
}

func saveUpload(path string, payload io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, payload)
	if err != nil {
		f.Close()
		return n, err
	}
	return n, f.Close()
}
