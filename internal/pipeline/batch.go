package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultBatchWorkers bounds ExtractBatch when no limit is given.
const DefaultBatchWorkers = 4

// ProgressEvent reports one document finishing inside a batch.
type ProgressEvent struct {
	Path     string   `json:"path"`
	Done     int      `json:"done"`
	Total    int      `json:"total"`
	Strategy Strategy `json:"strategy,omitempty"`
	Err      error    `json:"-"`
}

// ProgressCallback is called as each document of a batch completes. Calls are
// serialized.
type ProgressCallback func(event ProgressEvent)

// BatchOptions holds configuration for ExtractBatch.
type BatchOptions struct {
	Workers    int
	OnProgress ProgressCallback
}

// BatchResult is the outcome for one path.
type BatchResult struct {
	Path  string
	Data  *types.ResumeData
	Trace *Trace
	Err   error
}

// ExtractBatch extracts every path with bounded parallelism. Per-document
// failures are reported in the results, in input order, and do not stop the
// batch; only context cancellation is returned as an error.
func (e *Extractor) ExtractBatch(ctx context.Context, paths []string, opts BatchOptions) ([]BatchResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	results := make([]BatchResult, len(paths))
	for i, path := range paths {
		results[i].Path = path
	}
	progress := make(chan ProgressEvent)
	reported := make(chan struct{})
	go func() {
		defer close(reported)
		done := 0
		for ev := range progress {
			done++
			ev.Done = done
			if opts.OnProgress != nil {
				opts.OnProgress(ev)
			}
		}
	}()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			data, trace, err := e.ExtractWithTrace(gCtx, path)
			results[i] = BatchResult{Path: path, Data: data, Trace: trace, Err: err}
			progress <- ProgressEvent{Path: path, Total: len(paths), Strategy: trace.Strategy, Err: err}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	close(progress)
	<-reported

	if err == nil {
		err = ctx.Err()
	}
	return results, err
}
