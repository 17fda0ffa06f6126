package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"red-tag-extractor/internal/config"
	"red-tag-extractor/pkg/logger"
)

var (
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "redscan",
	Short: "Extract red-ink identifier codes from scanned PDFs",
	Long: `redscan runs the red-ink extraction pipeline against local files.

Each page of the PDF is rasterized, reduced to its red ink, recognized with
tesseract and matched against the four-segment identifier pattern. The
result is written as a workbook with the "Extracted Text" and "Tag Counts"
sheets, the same artifact the HTTP service publishes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		return godotenv.Load(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&envFile, "env", "", "load environment variables from this file before running",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "warn", "log level: debug, info, warn or error",
	)
}

// loadConfig reads the environment after --env has been applied
func loadConfig() *config.AppConfig {
	return config.NewConfig()
}

func newLogger() *logger.AppLogger {
	return logger.NewLoggerWithWriter(logLevel, os.Stderr)
}
