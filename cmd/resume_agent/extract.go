package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/schemas"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured data from a PDF or DOCX resume",
	Long: `Converts a resume to text, parses contact details, education, experience,
skills and additional sections, and prints a summary. With --out the extracted
mapping is written as JSON.`,
	RunE: runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractShowText   bool
	extractShowTrace  bool
	extractNoValidate bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the resume (.pdf or .docx)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to write the extracted JSON")
	extractCmd.Flags().BoolVar(&extractShowText, "text", false, "Also print the raw converted text")
	extractCmd.Flags().BoolVar(&extractShowTrace, "trace", false, "Print the extraction state transitions")
	extractCmd.Flags().BoolVar(&extractNoValidate, "no-validate", false, "Skip schema validation of the output")

	if err := extractCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	extractor, err := newExtractor(appConfig, nil)
	if err != nil {
		return err
	}

	data, trace, err := extractor.ExtractWithTrace(commandContext(cmd), extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", extractInputFile, err)
	}

	wire := data.ToMap()
	if !extractNoValidate {
		if err := checkSchema(schemas.ResumeData, wire); err != nil {
			return err
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResume(data)
	if extractShowTrace {
		_, _ = fmt.Fprintf(os.Stdout, "Trace: %s\n", trace)
		if trace.FellBack() {
			_, _ = fmt.Fprintf(os.Stdout, "Layout fallback: %s\n", trace.Fallback)
		}
	}
	if extractShowText {
		_, _ = fmt.Fprintf(os.Stdout, "\n--- Raw text ---\n%s\n", data.RawText)
	}

	if extractOutputFile != "" {
		if err := writeJSON(extractOutputFile, wire); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote extracted resume to %s\n", extractOutputFile)
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command is run directly in tests.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
