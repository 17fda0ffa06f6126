package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"red-tag-extractor/internal/domain"

	"github.com/xuri/excelize/v2"
)

// FileReportStore keeps the single most recent report on local disk.
// Publishing writes a staging file next to the artifact and renames it into
// place, so readers see either the previous artifact or the new one.
type FileReportStore struct {
	dir    string
	name   string
	logger domain.Logger
	mu     sync.RWMutex
}

// NewFileReportStore creates a store publishing dir/name
func NewFileReportStore(dir, name string, logger domain.Logger) *FileReportStore {
	return &FileReportStore{dir: dir, name: name, logger: logger}
}

// Path returns where the artifact is published
func (s *FileReportStore) Path() string {
	return filepath.Join(s.dir, s.name)
}

// Publish renders report to xlsx and atomically replaces the current artifact
func (s *FileReportStore) Publish(report *domain.Report) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	autosizeColumns(f, report, s.logger)

	staging, err := os.CreateTemp(s.dir, "."+report.RunID+"-*.xlsx")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	stagingPath := staging.Name()
	published := false
	defer func() {
		if !published {
			os.Remove(stagingPath)
		}
	}()

	if err := f.Write(staging); err != nil {
		staging.Close()
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := staging.Sync(); err != nil {
		staging.Close()
		return fmt.Errorf("sync staging file: %w", err)
	}
	if err := staging.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}

	s.mu.Lock()
	err = os.Rename(stagingPath, s.Path())
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish artifact: %w", err)
	}
	published = true

	s.logger.Info("Report published", "run_id", report.RunID, "path", s.Path(),
		"records", len(report.Records), "tags", len(report.TagCounts))
	return nil
}

// Open returns a handle on the current artifact, or domain.ErrArtifactAbsent
func (s *FileReportStore) Open() (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrArtifactAbsent
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	return &domain.Artifact{Name: s.name, ModTime: info.ModTime(), Content: f}, nil
}

// TagCounts reads the Tag Counts sheet of the current artifact
func (s *FileReportStore) TagCounts() ([]domain.TagCount, error) {
	artifact, err := s.Open()
	if err != nil {
		return nil, err
	}
	defer artifact.Content.Close()

	wb, err := excelize.OpenReader(artifact.Content)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	defer wb.Close()

	return readTagCounts(wb)
}
