// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"red-tag-extractor/internal/domain"
	apperrors "red-tag-extractor/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// multipart parts above this size are spooled to disk by net/http
const multipartMemory = 32 << 20

// ExtractionHandler exposes upload, download and tag summary endpoints
type ExtractionHandler struct {
	service     domain.ExtractionService
	maxFileSize int64
	logger      domain.Logger
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(service domain.ExtractionService, maxFileSize int64, logger domain.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type uploadResponse struct {
	Message     string `json:"message"`
	DownloadURL string `json:"download_url"`
	RunID       string `json:"run_id"`
	Pages       int    `json:"pages"`
	Records     int    `json:"records"`
}

type tagsResponse struct {
	Tags []domain.TagCount `json:"tags"`
}

// Upload handles POST /upload with a multipart "file" field
func (h *ExtractionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			writeAppError(w, apperrors.NewTooLargeError(
				fmt.Sprintf("File too large. Maximum size is %d bytes", h.maxFileSize), h.maxFileSize))
			return
		}
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	filename := filepath.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	if header.Filename == "" || filename == "." || filename == "/" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	result, err := h.service.Submit(r.Context(), filename, file)
	if err != nil {
		appErr := mapExtractionError(err)
		if apperrors.GetStatusCode(appErr) >= http.StatusInternalServerError {
			h.logger.Error("Upload processing failed", err, "filename", filename)
		}
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:     "File processed successfully",
		DownloadURL: "/download",
		RunID:       result.RunID,
		Pages:       result.Pages,
		Records:     result.Records,
	})
}

// Download handles GET /download and streams the latest report
func (h *ExtractionHandler) Download(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.service.OpenArtifact()
	if err != nil {
		if errors.Is(err, domain.ErrArtifactAbsent) {
			writeAppError(w, apperrors.NewNotFoundError("No processed file available"))
			return
		}
		h.logger.Error("Failed to open report", err)
		writeError(w, http.StatusInternalServerError, "Failed to open report")
		return
	}
	defer artifact.Content.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	http.ServeContent(w, r, artifact.Name, artifact.ModTime, artifact.Content)
}

// Tags handles GET /tags
func (h *ExtractionHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.TagSummary()
	if err != nil {
		h.logger.Error("Failed to read tag counts", err)
		writeError(w, http.StatusInternalServerError, "Failed to read tag counts")
		return
	}
	if tags == nil {
		tags = []domain.TagCount{}
	}
	writeJSON(w, http.StatusOK, tagsResponse{Tags: tags})
}

// mapExtractionError converts pipeline errors into API errors
func mapExtractionError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrInputMissing):
		return apperrors.NewValidationError("No file provided", validationDetail(err))
	case errors.Is(err, domain.ErrInputFormatInvalid):
		return apperrors.NewValidationError("Invalid file format. Only PDFs are allowed", validationDetail(err))
	case errors.Is(err, domain.ErrDocumentUnreadable):
		return apperrors.NewProcessingError("Unable to read PDF document", err)
	case errors.Is(err, domain.ErrRecognitionFailure):
		return apperrors.NewRecognitionError("Text recognition failed", err)
	default:
		return apperrors.NewInternalError("Failed to process document", err)
	}
}

func validationDetail(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return ""
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
