package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/scraper"
	"github.com/jonathan/resume-extractor/internal/types"
)

var scrapeJobCmd = &cobra.Command{
	Use:   "scrape-job",
	Short: "Produce a job posting from a job board URL or a saved page",
	Long: `Builds a job posting JSON document. With --url the posting for that job board
is produced; with --html a saved job page is parsed, and --url (if given) is
recorded as the page address.`,
	RunE: runScrapeJob,
}

var (
	scrapeURL        string
	scrapeHTMLFile   string
	scrapeOutputFile string
)

func init() {
	scrapeJobCmd.Flags().StringVarP(&scrapeURL, "url", "u", "", "Job posting URL (https)")
	scrapeJobCmd.Flags().StringVar(&scrapeHTMLFile, "html", "", "Path to a saved job page")
	scrapeJobCmd.Flags().StringVarP(&scrapeOutputFile, "out", "o", "", "Path to write the job posting JSON")
	rootCmd.AddCommand(scrapeJobCmd)
}

func runScrapeJob(cmd *cobra.Command, _ []string) error {
	var (
		posting *types.JobPosting
		err     error
	)
	switch {
	case scrapeHTMLFile != "":
		posting, err = parseSavedPage(scrapeHTMLFile, scrapeURL)
	case scrapeURL != "":
		posting, err = scraper.Scrape(commandContext(cmd), scrapeURL)
	default:
		return errors.New("one of --url or --html is required")
	}
	if err != nil {
		return fmt.Errorf("failed to scrape job posting: %w", err)
	}

	if err := checkSchema(schemas.JobPosting, posting); err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintJobPosting(posting)

	if scrapeOutputFile != "" {
		if err := writeJSON(scrapeOutputFile, posting); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote job posting to %s\n", scrapeOutputFile)
	}
	return nil
}

func parseSavedPage(path, pageURL string) (*types.JobPosting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()
	return scraper.ParseHTML(f, pageURL)
}
