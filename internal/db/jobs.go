package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-extractor/internal/types"
)

// CreateScrapedJob inserts a new scrape request.
func (db *DB) CreateScrapedJob(ctx context.Context, j *types.ScrapedJob) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO scraped_jobs (id, url, platform, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		j.ID, j.URL, j.Platform, string(j.Status), j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scraped job: %w", err)
	}
	return nil
}

// GetScrapedJob retrieves a scraped job by ID. Returns nil if not found.
func (db *DB) GetScrapedJob(ctx context.Context, id string) (*types.ScrapedJob, error) {
	var (
		j           types.ScrapedJob
		status      string
		postingJSON []byte
		errMsg      *string
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id::text, url, platform, status, posting, error_message, created_at, completed_at
		 FROM scraped_jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.URL, &j.Platform, &status, &postingJSON, &errMsg, &j.CreatedAt, &j.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scraped job: %w", err)
	}

	j.Status = types.Status(status)
	j.ErrorMessage = types.Deref(errMsg)
	if len(postingJSON) > 0 {
		var p types.JobPosting
		if err := json.Unmarshal(postingJSON, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal posting: %w", err)
		}
		j.Posting = &p
	}
	return &j, nil
}

// CompleteScrapedJob stores the posting and moves the job to READY.
func (db *DB) CompleteScrapedJob(ctx context.Context, id string, posting *types.JobPosting, at time.Time) error {
	postingJSON, err := json.Marshal(posting)
	if err != nil {
		return fmt.Errorf("failed to marshal posting: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE scraped_jobs SET status = $2, posting = $3, error_message = NULL, completed_at = $4 WHERE id = $1`,
		id, string(types.StatusReady), postingJSON, at,
	)
	if err != nil {
		return fmt.Errorf("failed to complete scraped job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scraped job %s not found", id)
	}
	return nil
}

// FailScrapedJob records a scrape failure.
func (db *DB) FailScrapedJob(ctx context.Context, id, message string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE scraped_jobs SET status = $2, error_message = $3 WHERE id = $1`,
		id, string(types.StatusFailed), message,
	)
	if err != nil {
		return fmt.Errorf("failed to mark scraped job failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scraped job %s not found", id)
	}
	return nil
}
