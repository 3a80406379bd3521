package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/observability"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the positioned lines and detected headers of a PDF",
	Long: `Runs positional parsing on a PDF and prints each line with its font size and
header flag, followed by the sections they were grouped into. Useful when
tuning --config extraction settings.`,
	RunE: runInspect,
}

var inspectInputFile string

func init() {
	inspectCmd.Flags().StringVarP(&inspectInputFile, "in", "i", "", "Path to the PDF resume")

	if err := inspectCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	layout, err := newConverter(appConfig).ExtractLayout(commandContext(cmd), inspectInputFile)
	if err != nil {
		return fmt.Errorf("failed to build layout: %w", err)
	}
	observability.NewPrinter(os.Stdout).PrintLayout(layout)
	return nil
}
