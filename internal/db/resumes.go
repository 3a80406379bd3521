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

// CreateUpload inserts a new upload record.
func (db *DB) CreateUpload(ctx context.Context, u *types.ResumeUpload) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_uploads (id, filename, mime_type, size_bytes, content_hash, storage_path, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Filename, u.MimeType, u.SizeBytes, u.ContentHash, u.StoragePath, string(u.Status), u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}
	return nil
}

// GetUpload retrieves an upload by ID. Returns nil if not found.
func (db *DB) GetUpload(ctx context.Context, id string) (*types.ResumeUpload, error) {
	var (
		u          types.ResumeUpload
		status     string
		parsedJSON []byte
		rawText    *string
		errMsg     *string
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id::text, filename, mime_type, size_bytes, content_hash, storage_path, status,
		        parsed_data, raw_text, error_message, created_at, parsed_at
		 FROM resume_uploads WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Filename, &u.MimeType, &u.SizeBytes, &u.ContentHash, &u.StoragePath, &status,
		&parsedJSON, &rawText, &errMsg, &u.CreatedAt, &u.ParsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}

	u.Status = types.Status(status)
	u.ErrorMessage = types.Deref(errMsg)
	if len(parsedJSON) > 0 {
		data, err := decodeResume(parsedJSON)
		if err != nil {
			return nil, err
		}
		data.RawText = types.Deref(rawText)
		u.ParsedData = data
	}
	return &u, nil
}

// MarkUploadParsed stores the parse result and moves the upload to PARSED.
func (db *DB) MarkUploadParsed(ctx context.Context, id string, data *types.ResumeData, at time.Time) error {
	parsed, err := json.Marshal(data.ToMap())
	if err != nil {
		return fmt.Errorf("failed to marshal parsed data: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE resume_uploads
		 SET status = $2, parsed_data = $3, raw_text = $4, error_message = NULL, parsed_at = $5
		 WHERE id = $1`,
		id, string(types.StatusParsed), parsed, data.RawText, at,
	)
	if err != nil {
		return fmt.Errorf("failed to mark upload parsed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("upload %s not found", id)
	}
	return nil
}

// MarkUploadFailed records a parse failure.
func (db *DB) MarkUploadFailed(ctx context.Context, id, message string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resume_uploads SET status = $2, error_message = $3 WHERE id = $1`,
		id, string(types.StatusFailed), message,
	)
	if err != nil {
		return fmt.Errorf("failed to mark upload failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("upload %s not found", id)
	}
	return nil
}

// FindUploadByHash returns the most recent parsed upload with the same
// content hash. Returns nil if there is none.
func (db *DB) FindUploadByHash(ctx context.Context, hash string) (*types.ResumeUpload, error) {
	var id string
	err := db.pool.QueryRow(ctx,
		`SELECT id::text FROM resume_uploads
		 WHERE content_hash = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT 1`,
		hash, string(types.StatusParsed),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find upload by hash: %w", err)
	}
	return db.GetUpload(ctx, id)
}

func decodeResume(raw []byte) (*types.ResumeData, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parsed data: %w", err)
	}
	return types.ResumeDataFromMap(m)
}
