package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-extractor/internal/types"
)

// CreatePlan inserts a plan record.
func (db *DB) CreatePlan(ctx context.Context, p *types.StoredPlan) error {
	items, err := marshalItems(p.Items)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO patch_plans (id, upload_id, job_id, status, items, match_score, error_message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`,
		p.ID, p.UploadID, p.JobID, string(p.Status), items, p.MatchScore, p.ErrorMessage, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID. Returns nil if not found.
func (db *DB) GetPlan(ctx context.Context, id string) (*types.StoredPlan, error) {
	var (
		p         types.StoredPlan
		status    string
		itemsJSON []byte
		errMsg    *string
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id::text, upload_id::text, job_id::text, status, items, match_score, error_message, created_at
		 FROM patch_plans WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.UploadID, &p.JobID, &status, &itemsJSON, &p.MatchScore, &errMsg, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	p.Status = types.Status(status)
	p.ErrorMessage = types.Deref(errMsg)
	p.Items = []types.PatchPlanItem{}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &p.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan items: %w", err)
		}
	}
	return &p, nil
}

// UpdatePlan stores the status, items, score and error of a plan.
func (db *DB) UpdatePlan(ctx context.Context, p *types.StoredPlan) error {
	items, err := marshalItems(p.Items)
	if err != nil {
		return err
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE patch_plans SET status = $2, items = $3, match_score = $4, error_message = NULLIF($5, '')
		 WHERE id = $1`,
		p.ID, string(p.Status), items, p.MatchScore, p.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plan %s not found", p.ID)
	}
	return nil
}

// ListPlansForUpload returns the plans of an upload, newest first.
func (db *DB) ListPlansForUpload(ctx context.Context, uploadID string) ([]types.StoredPlan, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id::text FROM patch_plans WHERE upload_id = $1 ORDER BY created_at DESC`,
		uploadID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan plans: %w", err)
	}

	plans := make([]types.StoredPlan, 0, len(ids))
	for _, id := range ids {
		p, err := db.GetPlan(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			plans = append(plans, *p)
		}
	}
	return plans, nil
}

func marshalItems(items []types.PatchPlanItem) ([]byte, error) {
	if items == nil {
		items = []types.PatchPlanItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan items: %w", err)
	}
	return data, nil
}
