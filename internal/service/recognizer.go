package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"red-tag-extractor/internal/domain"

	"github.com/otiai10/gosseract/v2"
)

// ocrClient is the subset of *gosseract.Client the recognizer drives
type ocrClient interface {
	SetImageFromBytes(data []byte) error
	SetPageSegMode(mode gosseract.PageSegMode) error
	SetLanguage(langs ...string) error
	Text() (string, error)
	Close() error
}

// TesseractRecognizer reads words off red-ink masks. The mask has no
// paragraph layout, so tesseract is run in single uniform block mode.
// Every token is returned regardless of confidence.
type TesseractRecognizer struct {
	languages     []string
	clientFactory func() ocrClient
	logger        domain.Logger
}

// NewTesseractRecognizer creates a recognizer using the given language packs
func NewTesseractRecognizer(languages []string, logger domain.Logger) *TesseractRecognizer {
	return &TesseractRecognizer{
		languages:     languages,
		clientFactory: func() ocrClient { return gosseract.NewClient() },
		logger:        logger,
	}
}

// Recognize returns the whitespace-separated words found on the mask in
// tesseract's reading order.
func (r *TesseractRecognizer) Recognize(ctx context.Context, mask domain.Mask) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mask.Image == nil {
		return nil, fmt.Errorf("%w: page %d has no mask", domain.ErrRecognitionFailure, mask.Number)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, mask.Image); err != nil {
		return nil, fmt.Errorf("encode mask for page %d: %w", mask.Number, err)
	}

	client := r.clientFactory()
	defer client.Close()

	if len(r.languages) > 0 {
		if err := client.SetLanguage(r.languages...); err != nil {
			return nil, fmt.Errorf("%w: set languages: %v", domain.ErrRecognitionFailure, err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return nil, fmt.Errorf("%w: set page segmentation mode: %v", domain.ErrRecognitionFailure, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: set image: %v", domain.ErrRecognitionFailure, err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", domain.ErrRecognitionFailure, mask.Number, err)
	}

	words := strings.Fields(text)
	r.logger.Debug("Page recognized", "page", mask.Number, "words", len(words))
	return words, nil
}
