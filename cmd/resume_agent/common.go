package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-extractor/internal/config"
	"github.com/jonathan/resume-extractor/internal/conversion"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/pipeline"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

// newConverter applies the extraction settings to the default converter.
func newConverter(cfg config.Config) *conversion.Converter {
	opts := conversion.DefaultLayoutOptions()
	if cfg.Extraction.LineTolerance > 0 {
		opts.LineTolerance = cfg.Extraction.LineTolerance
	}
	if cfg.Extraction.HeaderSignalThreshold > 0 {
		opts.HeaderSignalThreshold = cfg.Extraction.HeaderSignalThreshold
	}
	return conversion.New(conversion.WithLayoutOptions(opts))
}

// newExtractor builds the pipeline from cfg. metrics may be nil.
func newExtractor(cfg config.Config, metrics *observability.Metrics) (*pipeline.Extractor, error) {
	db := skills.Default()
	if cfg.SkillsFile != "" {
		loaded, err := skills.NewFromFile(cfg.SkillsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load skills file: %w", err)
		}
		db = loaded
	}

	opts := []pipeline.Option{pipeline.WithMetrics(metrics)}
	if cfg.Extraction.ContactBandHeight > 0 {
		opts = append(opts, pipeline.WithContactBandHeight(cfg.Extraction.ContactBandHeight))
	}
	return pipeline.New(newConverter(cfg), patterns.Default(), db, opts...), nil
}

// readResume loads a resume from the JSON mapping written by extract.
func readResume(path string) (*types.ResumeData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	resume, err := types.ResumeDataFromMap(m)
	if err != nil {
		return nil, fmt.Errorf("invalid resume data: %w", err)
	}
	return resume, nil
}

// readJobPosting loads and validates a posting written by scrape-job.
func readJobPosting(path string) (*types.JobPosting, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job posting file: %w", err)
	}
	if err := schemas.ValidateBytes(schemas.JobPosting, content); err != nil {
		return nil, fmt.Errorf("invalid job posting: %w", err)
	}
	var job types.JobPosting
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job posting JSON: %w", err)
	}
	return &job, nil
}

// writeJSON writes v indented to path.
func writeJSON(path string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// checkSchema validates v against an embedded schema. A schema that cannot be
// loaded only produces a warning.
func checkSchema(name string, v any) error {
	err := schemas.Validate(name, v)
	if err == nil {
		return nil
	}
	var loadErr *schemas.SchemaLoadError
	if errors.As(err, &loadErr) {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: could not load schema for validation: %v\n", err)
		return nil
	}
	return fmt.Errorf("schema validation failed: %w", err)
}
