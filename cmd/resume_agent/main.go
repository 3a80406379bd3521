// Package main provides the resume_agent CLI: resume extraction, job posting
// scraping, tailoring and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/config"
	"github.com/jonathan/resume-extractor/internal/logger"
)

var (
	configPath string
	logLevel   string

	// appConfig is resolved before every subcommand runs.
	appConfig = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Resume extraction and tailoring toolkit",
	Long: `resume_agent turns PDF and DOCX resumes into structured data, scrapes job
postings, and suggests changes that bring a resume closer to a posting.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

// loadAppConfig reads the config file and environment, then sets up logging.
// CLI logs go to stderr so stdout stays clean for JSON output.
func loadAppConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	appConfig = cfg
	logger.Logger = logger.New(cfg.Log, os.Stderr)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
