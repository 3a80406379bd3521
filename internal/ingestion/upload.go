// Package ingestion validates and stores uploaded resume files.
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultMaxBytes is the upload size limit.
const DefaultMaxBytes int64 = 5 << 20

// DefaultDir is where uploads are written when no directory is configured.
const DefaultDir = "uploads/resumes"

// MIME types of the accepted formats.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var mimeByExt = map[string]string{
	".pdf":  MimePDF,
	".docx": MimeDOCX,
}

// Reason classifies a rejected upload.
type Reason string

const (
	ReasonTooLarge    Reason = "file_too_large"
	ReasonInvalidType Reason = "invalid_file_type"
	ReasonEmpty       Reason = "empty_file"
)

// FileError is returned for uploads that fail validation.
type FileError struct {
	Reason  Reason
	Message string
	Details map[string]any
}

func (e *FileError) Error() string {
	return e.Message
}

// IsFileError reports whether err is a validation failure and returns it.
func IsFileError(err error) (*FileError, bool) {
	var fe *FileError
	ok := errors.As(err, &fe)
	return fe, ok
}

// Store writes uploads into a directory as <upload_id><ext>.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore returns a Store rooted at dir. Non-positive maxBytes selects
// DefaultMaxBytes and an empty dir selects DefaultDir.
func NewStore(dir string, maxBytes int64) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{dir: dir, maxBytes: maxBytes}
}

// MaxBytes returns the size limit.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Validate checks the extension, the declared MIME type and, when known
// (size >= 0), the size. A generic MIME type is accepted when the extension
// is allowed.
func (s *Store) Validate(filename, mimeType string, size int64) error {
	if size > s.maxBytes {
		return tooLarge(s.maxBytes, size)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := mimeByExt[ext]; !ok {
		return &FileError{
			Reason:  ReasonInvalidType,
			Message: "File must have .pdf or .docx extension",
			Details: map[string]any{
				"allowed_extensions": []string{".pdf", ".docx"},
				"received_extension": ext,
				"received_type":      mimeType,
			},
		}
	}
	return nil
}

// Save validates and stores r. The content is hashed while it is written and
// the file is removed again if it turns out to exceed the limit.
func (s *Store) Save(ctx context.Context, filename, mimeType string, r io.Reader) (*types.ResumeUpload, error) {
	if err := s.Validate(filename, mimeType, -1); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.dir, id+ext)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	hash := sha256.New()
	n, copyErr := io.Copy(io.MultiWriter(f, hash), io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write upload: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write upload: %w", closeErr)
	case n > s.maxBytes:
		_ = os.Remove(path)
		return nil, tooLarge(s.maxBytes, n)
	case n == 0:
		_ = os.Remove(path)
		return nil, &FileError{Reason: ReasonEmpty, Message: "File is empty"}
	}

	if !isAllowedMime(mimeType) {
		mimeType = mimeByExt[ext]
	}
	return &types.ResumeUpload{
		ID:          id,
		Filename:    filepath.Base(filename),
		MimeType:    mimeType,
		SizeBytes:   n,
		ContentHash: hex.EncodeToString(hash.Sum(nil)),
		StoragePath: path,
		Status:      types.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Open returns the stored file of an upload.
func (s *Store) Open(u *types.ResumeUpload) (*os.File, error) {
	f, err := os.Open(u.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", u.ID, err)
	}
	return f, nil
}

// Remove deletes the stored file of an upload.
func (s *Store) Remove(u *types.ResumeUpload) error {
	if err := os.Remove(u.StoragePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload %s: %w", u.ID, err)
	}
	return nil
}

// HashContent returns the hex SHA-256 digest of data.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func isAllowedMime(mimeType string) bool {
	for _, m := range mimeByExt {
		if m == mimeType {
			return true
		}
	}
	return false
}

func tooLarge(limit, size int64) *FileError {
	return &FileError{
		Reason:  ReasonTooLarge,
		Message: "File too large",
		Details: map[string]any{
			"max_size":      fmt.Sprintf("%dMB", limit>>20),
			"received_size": fmt.Sprintf("%.2fMB", float64(size)/float64(1<<20)),
		},
	}
}
