// Package pipeline orchestrates resume extraction: conversion, the layout or
// text parsing strategy, and assembly of the final ResumeData.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-extractor/internal/conversion"
	"github.com/jonathan/resume-extractor/internal/extraction"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/sections"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

// Extractor turns resume files into ResumeData. It holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	converter  *conversion.Converter
	contact    *extraction.ContactExtractor
	education  *extraction.EducationExtractor
	experience *extraction.ExperienceExtractor
	skills     *extraction.SkillsExtractor

	bandHeight float64
	metrics    *observability.Metrics
	log        zerolog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMetrics records extraction counters and timings.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Extractor) { e.metrics = m }
}

// WithLogger replaces the package logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) { e.log = l }
}

// WithContactBandHeight sets the height of the top-of-page band searched for
// contact details in layout mode.
func WithContactBandHeight(h float64) Option {
	return func(e *Extractor) { e.bandHeight = h }
}

// New wires the extractors around a shared pattern library and skills database.
func New(conv *conversion.Converter, lib *patterns.Library, db *skills.Database, opts ...Option) *Extractor {
	e := &Extractor{
		converter: conv,
		log:       logger.Logger.With().Str("component", "pipeline").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.contact = extraction.NewContactExtractor(lib, e.bandHeight)
	e.education = extraction.NewEducationExtractor(lib)
	e.experience = extraction.NewExperienceExtractor(lib, db)
	e.skills = extraction.NewSkillsExtractor(db)
	return e
}

// NewDefault uses the default converter, pattern library and skills database.
func NewDefault(opts ...Option) *Extractor {
	return New(conversion.New(), patterns.Default(), skills.Default(), opts...)
}

// Extract converts the file at path and extracts its structured data.
// Unsupported extensions yield ErrUnsupportedFormat.
func (e *Extractor) Extract(ctx context.Context, path string) (*types.ResumeData, error) {
	data, _, err := e.ExtractWithTrace(ctx, path)
	return data, err
}

// ExtractWithTrace is Extract that also reports the state transitions taken.
// PDFs are parsed with the layout strategy first; a layout failure is logged
// and answered with text parsing, never returned.
func (e *Extractor) ExtractWithTrace(ctx context.Context, path string) (*types.ResumeData, *Trace, error) {
	trace := newTrace(path)

	trace.enter(stateConverting)
	raw, ok, err := e.converter.ConvertToText(ctx, path)
	if !ok {
		return nil, trace, fmt.Errorf("%w: %s", conversion.ErrUnsupportedFormat, path)
	}
	if err != nil {
		e.metrics.ObserveExtraction(string(StrategyText), err, time.Since(trace.started))
		return nil, trace, err
	}
	cleaned := sections.CleanText(raw)

	var data *types.ResumeData
	if conversion.DetectFormat(path) == conversion.FormatPDF {
		trace.enter(stateLayoutParsing)
		var layoutErr *conversion.LayoutError
		data, layoutErr, err = e.parseLayout(ctx, path, cleaned)
		if err != nil {
			e.metrics.ObserveExtraction(string(StrategyLayout), err, time.Since(trace.started))
			return nil, trace, err
		}
		if layoutErr != nil {
			e.log.Warn().Err(layoutErr).Str("path", path).Msg("layout parsing failed, falling back to text")
			e.metrics.LayoutFallback()
			trace.Fallback = layoutErr.Error()
			data = nil
		} else {
			trace.Strategy = StrategyLayout
		}
	}
	if data == nil {
		trace.enter(stateTextParsing)
		trace.Strategy = StrategyText
		data = e.parseText(cleaned)
	}

	trace.enter(stateAssembling)
	e.assemble(data, raw, cleaned)
	trace.finish()

	e.metrics.ObserveExtraction(string(trace.Strategy), nil, trace.Elapsed)
	e.log.Debug().
		Str("path", path).
		Str("strategy", string(trace.Strategy)).
		Dur("elapsed", trace.Elapsed).
		Msg("extracted resume")
	return data, trace, nil
}

// ExtractFromText runs the text strategy directly. It never fails; text
// without recognizable content yields empty fields.
func (e *Extractor) ExtractFromText(text string) *types.ResumeData {
	start := time.Now()
	cleaned := sections.CleanText(text)
	data := e.parseText(cleaned)
	e.assemble(data, text, cleaned)
	e.metrics.ObserveExtraction(string(StrategyText), nil, time.Since(start))
	return data
}

// ExtractLayout runs the layout strategy over an already extracted layout.
// It is what Extract uses for PDFs and is exposed for callers that keep the
// layout around, such as the inspect command.
func (e *Extractor) ExtractLayout(layout *types.Layout, rawText string) (*types.ResumeData, error) {
	cleaned := sections.CleanText(rawText)
	data, layoutErr := e.fromLayout(layout, cleaned)
	if layoutErr != nil {
		return nil, layoutErr
	}
	e.assemble(data, rawText, cleaned)
	return data, nil
}

// parseLayout runs the layout strategy. Recoverable failures come back as a
// *LayoutError; only a missing PDF reader is returned as err.
func (e *Extractor) parseLayout(ctx context.Context, path, text string) (*types.ResumeData, *conversion.LayoutError, error) {
	layout, err := e.converter.ExtractLayout(ctx, path)
	if err != nil {
		var unavailable *conversion.LibraryUnavailableError
		if errors.As(err, &unavailable) {
			return nil, nil, err
		}
		var layoutErr *conversion.LayoutError
		if errors.As(err, &layoutErr) {
			return nil, layoutErr, nil
		}
		return nil, &conversion.LayoutError{Path: path, Message: "unexpected failure", Cause: err}, nil
	}

	data, layoutErr := e.fromLayout(layout, text)
	if layoutErr != nil {
		layoutErr.Path = path
	}
	return data, layoutErr, nil
}

// fromLayout applies the layout variants of the extractors. A panic in any of
// them is reported as a *LayoutError.
func (e *Extractor) fromLayout(layout *types.Layout, text string) (data *types.ResumeData, layoutErr *conversion.LayoutError) {
	if layout == nil || len(layout.Lines) == 0 {
		return nil, &conversion.LayoutError{Message: "empty layout"}
	}
	defer func() {
		if r := recover(); r != nil {
			data = nil
			layoutErr = &conversion.LayoutError{Message: "layout extraction panicked", Cause: fmt.Errorf("%v", r)}
		}
	}()

	data = types.NewResumeData()
	data.Contact = e.contact.FromLayout(layout.Lines, text)
	data.Education = e.education.FromLayout(layout.Sections, text)
	data.Experience = e.experience.FromLayout(layout.Sections, text)
	data.Skills = e.skills.FromLayout(layout.Sections, text)
	return data, nil
}

func (e *Extractor) parseText(text string) *types.ResumeData {
	data := types.NewResumeData()
	data.Contact = e.contact.FromText(text)
	data.Education = e.education.FromText(text)
	data.Experience = e.experience.FromText(text)
	data.Skills = e.skills.FromText(text)
	return data
}

// assemble attaches the sections shared by both strategies and the raw text.
func (e *Extractor) assemble(data *types.ResumeData, raw, cleaned string) {
	data.AdditionalSections = extraction.AdditionalSections(cleaned)
	data.RawText = raw
	if data.Education == nil {
		data.Education = []types.Education{}
	}
	if data.Experience == nil {
		data.Experience = []types.WorkExperience{}
	}
	if data.Skills == nil {
		data.Skills = []string{}
	}
}
