package config

import (
	"red-tag-extractor/internal/domain"
	"red-tag-extractor/internal/service"
	"red-tag-extractor/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	Rasterizer        *service.FitzRasterizer
	ReportStore       domain.ReportStore
	ExtractionService domain.ExtractionService
}

// NewContainer wires the extraction pipeline from the given configuration
func NewContainer(config domain.Config) *Container {
	appLogger := logger.NewLogger(config.GetLogLevel())

	// pages are always rendered at the resolution the isolator is tuned for
	rasterizer := service.NewFitzRasterizer(service.DefaultRenderDPI, appLogger)
	store := service.NewFileReportStore(config.GetOutputPath(), config.GetArtifactName(), appLogger)

	extraction := service.NewExtractionService(
		service.PipelineConfig{
			UploadPath:  config.GetUploadPath(),
			PageWorkers: config.GetPageWorkers(),
		},
		rasterizer,
		service.NewRedInkIsolator(),
		service.NewTesseractRecognizer(config.GetOCRLanguages(), appLogger),
		store,
		appLogger,
	)

	return &Container{
		Config:            config,
		Logger:            appLogger,
		Rasterizer:        rasterizer,
		ReportStore:       store,
		ExtractionService: extraction,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
