package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/tailoring"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Suggest resume changes for a job posting",
	Long: `Compares an extracted resume (JSON from extract --out) with a job posting
(JSON from scrape-job --out) and prints a patch plan of suggested edits.`,
	RunE: runTailor,
}

var (
	tailorResumeFile string
	tailorJobFile    string
	tailorOutputFile string
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorResumeFile, "resume", "r", "", "Path to the extracted resume JSON")
	tailorCmd.Flags().StringVarP(&tailorJobFile, "job", "j", "", "Path to the job posting JSON")
	tailorCmd.Flags().StringVarP(&tailorOutputFile, "out", "o", "", "Path to write the patch plan JSON")

	for _, name := range []string{"resume", "job"} {
		if err := tailorCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark flag as required: %v", err))
		}
	}

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	resume, err := readResume(tailorResumeFile)
	if err != nil {
		return err
	}
	job, err := readJobPosting(tailorJobFile)
	if err != nil {
		return err
	}

	plan := tailoring.GeneratePatchPlan(resume, job)
	if err := checkSchema(schemas.PatchPlan, plan); err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintPatchPlan(plan)

	if tailorOutputFile != "" {
		if err := writeJSON(tailorOutputFile, plan); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote patch plan with %d items to %s\n", len(plan.Items), tailorOutputFile)
	}
	return nil
}
