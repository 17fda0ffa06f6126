package handler

import (
	"encoding/json"
	"net/http"

	apperrors "red-tag-extractor/pkg/errors"
)

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError writes an AppError using its status code
func writeAppError(w http.ResponseWriter, err *apperrors.AppError) {
	writeError(w, apperrors.GetStatusCode(err), err.Message)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
