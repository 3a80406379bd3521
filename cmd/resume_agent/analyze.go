package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/tailoring"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score how well a resume fits a job posting",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeJobFile    string
	analyzeOutputFile string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to the extracted resume JSON")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to the job posting JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to write the analysis JSON")

	for _, name := range []string{"resume", "job"} {
		if err := analyzeCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark flag as required: %v", err))
		}
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	resume, err := readResume(analyzeResumeFile)
	if err != nil {
		return err
	}
	job, err := readJobPosting(analyzeJobFile)
	if err != nil {
		return err
	}

	analysis := tailoring.Analyze(resume, job)
	observability.NewPrinter(os.Stdout).PrintAnalysis(analysis)

	if analyzeOutputFile != "" {
		if err := writeJSON(analyzeOutputFile, analysis); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote analysis to %s\n", analyzeOutputFile)
	}
	return nil
}
