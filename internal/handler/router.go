package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured. The
// extraction routes are served both at the root, where the existing
// frontend calls them, and under /api/v1.
func NewRouter(extraction *ExtractionHandler, allowedOrigins []string, middlewares ...mux.MiddlewareFunc) http.Handler {
	router := mux.NewRouter()
	for _, mw := range middlewares {
		router.Use(mw)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"red-tag-extractor"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	for _, r := range []*mux.Router{router, api} {
		r.HandleFunc("/upload", extraction.Upload).Methods("POST")
		r.HandleFunc("/download", extraction.Download).Methods("GET")
		r.HandleFunc("/tags", extraction.Tags).Methods("GET")
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
