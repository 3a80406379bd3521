// Package jobqueue runs resume parsing, job scraping and plan generation on a
// bounded pool of background workers and records the outcome in a Store.
package jobqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/tailoring"
	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	// DefaultWorkers is the pool size when none is configured.
	DefaultWorkers = 4
	// DefaultJobTimeout bounds a single job attempt.
	DefaultJobTimeout = 60 * time.Second
	// defaultBacklog is the number of jobs buffered ahead of the workers.
	defaultBacklog = 64
)

// ErrClosed is returned when enqueueing into a queue that has shut down.
var ErrClosed = errors.New("job queue is closed")

// ErrNotFound is returned when a job references an unknown record.
var ErrNotFound = errors.New("record not found")

// Job is one unit of background work. TargetID is the upload, scraped job or
// plan the job operates on.
type Job struct {
	Kind     Kind   `json:"kind"`
	TargetID string `json:"target_id"`
}

// Extractor turns a stored resume file into ResumeData.
type Extractor interface {
	Extract(ctx context.Context, path string) (*types.ResumeData, error)
}

// ScrapeFunc fetches the posting behind a URL.
type ScrapeFunc func(ctx context.Context, url string) (*types.JobPosting, error)

// Queue dispatches jobs to workers.
type Queue struct {
	store     Store
	extractor Extractor
	scrape    ScrapeFunc

	workers  int
	timeout  time.Duration
	attempts int
	backoff  time.Duration
	metrics  *observability.Metrics
	log      zerolog.Logger

	jobs      chan Job
	stop      chan struct{}
	mu        sync.RWMutex
	closed    bool
	senders   sync.WaitGroup
	closeJobs sync.Once
	group     *errgroup.Group
}

// Option configures a Queue.
type Option func(*Queue)

// WithWorkers sets the pool size.
func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

// WithJobTimeout bounds each attempt.
func WithJobTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// WithRetries retries failed attempts up to attempts times in total, waiting
// backoff multiplied by the attempt number in between.
func WithRetries(attempts int, backoff time.Duration) Option {
	return func(q *Queue) {
		if attempts > 0 {
			q.attempts = attempts
		}
		q.backoff = backoff
	}
}

// WithMetrics records queue depth and job outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(q *Queue) { q.metrics = m }
}

// WithLogger replaces the package logger.
func WithLogger(l zerolog.Logger) Option {
	return func(q *Queue) { q.log = l }
}

// New returns a Queue. Call Start before Enqueue.
func New(store Store, extractor Extractor, scrape ScrapeFunc, opts ...Option) *Queue {
	q := &Queue{
		store:     store,
		extractor: extractor,
		scrape:    scrape,
		workers:   DefaultWorkers,
		timeout:   DefaultJobTimeout,
		attempts:  1,
		log:       logger.Logger.With().Str("component", "jobqueue").Logger(),
		jobs:      make(chan Job, defaultBacklog),
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start launches the workers. They stop when ctx is cancelled or Shutdown
// drains the queue.
func (q *Queue) Start(ctx context.Context) {
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < q.workers; i++ {
		g.Go(func() error {
			q.work(gCtx, i)
			return nil
		})
	}
	q.group = g
	q.log.Info().Int("workers", q.workers).Msg("job queue started")
}

// Enqueue schedules job. It blocks while the backlog is full.
func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	if _, ok := Registry[job.Kind]; !ok {
		return fmt.Errorf("unknown job kind: %s", job.Kind)
	}

	// The lock only guards the closed check. A sender blocked on a full
	// backlog must not hold it or Shutdown could never mark the queue closed.
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrClosed
	}
	q.senders.Add(1)
	q.mu.RUnlock()
	defer q.senders.Done()

	select {
	case q.jobs <- job:
		q.metrics.QueueDepth(1)
		return nil
	case <-q.stop:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for the backlog to drain or ctx to
// expire. Enqueue calls blocked on a full backlog return ErrClosed.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.stop)
	}
	q.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		q.senders.Wait()
		q.closeJobs.Do(func() { close(q.jobs) })
		if q.group == nil {
			done <- nil
			return
		}
		done <- q.group.Wait()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) work(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			q.metrics.QueueDepth(-1)
			if err := q.Process(ctx, job); err != nil {
				q.log.Error().Err(err).Int("worker", id).Str("kind", string(job.Kind)).Str("target_id", job.TargetID).Msg("job failed")
			}
		}
	}
}

// Process runs job synchronously, retrying failed attempts, and records the
// final outcome in the store. The returned error is the last attempt's.
func (q *Queue) Process(ctx context.Context, job Job) error {
	log := q.log.With().Str("kind", string(job.Kind)).Str("target_id", job.TargetID).Logger()
	log.Info().Msg("job started")
	start := time.Now()

	var err error
	for attempt := 1; attempt <= q.attempts; attempt++ {
		if err = q.attempt(ctx, job); err == nil || !retryable(err) || attempt == q.attempts {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("job attempt failed, retrying")
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(q.backoff * time.Duration(attempt)):
			continue
		}
		break
	}

	status := types.StatusReady
	if job.Kind == KindParseResume {
		status = types.StatusParsed
	}
	if err != nil {
		status = types.StatusFailed
		if recErr := q.recordFailure(context.WithoutCancel(ctx), job, err); recErr != nil {
			log.Error().Err(recErr).Msg("failed to record job failure")
		}
	}
	q.metrics.JobFinished(string(job.Kind), string(status))
	log.Info().Str("status", string(status)).Dur("elapsed", time.Since(start)).Msg("job finished")
	return err
}

func (q *Queue) attempt(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	switch job.Kind {
	case KindParseResume:
		return q.parseResume(ctx, job.TargetID)
	case KindScrapeJob:
		return q.scrapeJob(ctx, job.TargetID)
	case KindGeneratePlan:
		return q.generatePlan(ctx, job.TargetID)
	}
	return fmt.Errorf("unknown job kind: %s", job.Kind)
}

func (q *Queue) parseResume(ctx context.Context, uploadID string) error {
	u, err := q.store.GetUpload(ctx, uploadID)
	if err != nil {
		return fmt.Errorf("failed to load upload: %w", err)
	}
	if u == nil {
		return fmt.Errorf("upload %s: %w", uploadID, ErrNotFound)
	}

	data, err := q.extractor.Extract(ctx, u.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	return q.store.MarkUploadParsed(ctx, uploadID, data, time.Now().UTC())
}

func (q *Queue) scrapeJob(ctx context.Context, jobID string) error {
	j, err := q.store.GetScrapedJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load scraped job: %w", err)
	}
	if j == nil {
		return fmt.Errorf("scraped job %s: %w", jobID, ErrNotFound)
	}

	posting, err := q.scrape(ctx, j.URL)
	if err != nil {
		return fmt.Errorf("failed to scrape job: %w", err)
	}
	return q.store.CompleteScrapedJob(ctx, jobID, posting, time.Now().UTC())
}

func (q *Queue) generatePlan(ctx context.Context, planID string) error {
	p, err := q.store.GetPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if p == nil {
		return fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	if err := ValidateDependencies(ctx, q.store, KindGeneratePlan, p.UploadID, p.JobID); err != nil {
		return err
	}

	u, err := q.store.GetUpload(ctx, p.UploadID)
	if err != nil {
		return fmt.Errorf("failed to load upload: %w", err)
	}
	j, err := q.store.GetScrapedJob(ctx, p.JobID)
	if err != nil {
		return fmt.Errorf("failed to load scraped job: %w", err)
	}
	if u == nil || j == nil {
		return fmt.Errorf("plan %s inputs: %w", planID, ErrNotFound)
	}

	plan := tailoring.GeneratePatchPlan(u.ParsedData, j.Posting)
	p.Items = plan.Items
	p.MatchScore = plan.MatchScore
	p.Status = types.StatusReady
	p.ErrorMessage = ""
	if err := q.store.UpdatePlan(ctx, p); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	q.metrics.PlanGenerated()
	return nil
}

func (q *Queue) recordFailure(ctx context.Context, job Job, cause error) error {
	msg := cause.Error()
	switch job.Kind {
	case KindParseResume:
		return q.store.MarkUploadFailed(ctx, job.TargetID, msg)
	case KindScrapeJob:
		return q.store.FailScrapedJob(ctx, job.TargetID, msg)
	case KindGeneratePlan:
		p, err := q.store.GetPlan(ctx, job.TargetID)
		if err != nil || p == nil {
			return err
		}
		p.Status = types.StatusFailed
		p.ErrorMessage = msg
		return q.store.UpdatePlan(ctx, p)
	}
	return nil
}

// retryable excludes failures another attempt cannot fix.
func retryable(err error) bool {
	var depErr *DependencyError
	return !errors.Is(err, ErrNotFound) && !errors.As(err, &depErr) && !errors.Is(err, context.Canceled)
}
