package config

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	UploadPath     string
	OutputPath     string
	ArtifactName   string
	MaxFileSize    int64
	LogLevel       string
	PageWorkers    int
	OCRLanguages   []string
	AllowedOrigins []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() *AppConfig {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:   getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:   getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		OutputPath:   getEnvOrDefault("OUTPUT_PATH", "./output"),
		ArtifactName: getEnvOrDefault("ARTIFACT_NAME", "extracted_data.xlsx"),
		MaxFileSize:  getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		PageWorkers:  int(getEnvInt64OrDefault("PAGE_WORKERS", 1)),
		OCRLanguages: getEnvListOrDefault("OCR_LANGUAGES", []string{"eng"}),
		AllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000", // Next.js dev server
			"http://localhost:5173",
		}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the directory uploads and page images are staged in
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetOutputPath returns the directory the report artifact is published to
func (c *AppConfig) GetOutputPath() string {
	return c.OutputPath
}

// GetArtifactName returns the file name of the published report
func (c *AppConfig) GetArtifactName() string {
	return c.ArtifactName
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetPageWorkers returns how many pages are isolated and recognized at once
func (c *AppConfig) GetPageWorkers() int {
	if c.PageWorkers < 1 {
		return 1
	}
	return c.PageWorkers
}

// GetOCRLanguages returns the tesseract language packs to load
func (c *AppConfig) GetOCRLanguages() []string {
	return c.OCRLanguages
}

// GetAllowedOrigins returns the CORS origin allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
