package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/conversion"
	"github.com/jonathan/resume-extractor/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every resume in a directory",
	Long: `Extracts all .pdf and .docx files directly inside --dir in parallel and writes
one <name>.json per resume to --out-dir. Failures are reported per file and do
not stop the batch.`,
	RunE: runBatch,
}

var (
	batchInputDir  string
	batchOutputDir string
	batchWorkers   int
)

func init() {
	batchCmd.Flags().StringVarP(&batchInputDir, "dir", "d", "", "Directory containing resumes")
	batchCmd.Flags().StringVarP(&batchOutputDir, "out-dir", "o", "", "Directory to write extracted JSON files")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel extractions (defaults to the configured worker count)")

	for _, name := range []string{"dir", "out-dir"} {
		if err := batchCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark flag as required: %v", err))
		}
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	paths, err := resumeFiles(batchInputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .pdf or .docx files found in %s", batchInputDir)
	}
	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	extractor, err := newExtractor(appConfig, nil)
	if err != nil {
		return err
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = appConfig.Workers
	}
	results, err := extractor.ExtractBatch(commandContext(cmd), paths, pipeline.BatchOptions{
		Workers: workers,
		OnProgress: func(ev pipeline.ProgressEvent) {
			status := string(ev.Strategy)
			if ev.Err != nil {
				status = "failed: " + ev.Err.Error()
			}
			_, _ = fmt.Fprintf(os.Stdout, "[%d/%d] %s (%s)\n", ev.Done, ev.Total, filepath.Base(ev.Path), status)
		},
	})
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		name := strings.TrimSuffix(filepath.Base(res.Path), filepath.Ext(res.Path)) + ".json"
		if err := writeJSON(filepath.Join(batchOutputDir, name), res.Data.ToMap()); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Extracted %d of %d resumes into %s\n", len(results)-failed, len(results), batchOutputDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d resumes failed", failed, len(results))
	}
	return nil
}

// resumeFiles lists the supported documents directly inside dir, sorted.
func resumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if conversion.DetectFormat(entry.Name()) == conversion.FormatUnsupported {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
