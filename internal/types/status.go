package types

import "time"

// Status is the processing state of an upload, scrape or plan.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusParsed  Status = "PARSED"
	StatusReady   Status = "READY"
	StatusFailed  Status = "FAILED"
)

// Terminal reports whether no further transition is expected.
func (s Status) Terminal() bool {
	return s == StatusParsed || s == StatusReady || s == StatusFailed
}

// UploadResponse is returned after a resume upload.
type UploadResponse struct {
	UploadID string `json:"upload_id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Status   Status `json:"status"`
}

// ScrapeResponse is returned after a scrape request.
type ScrapeResponse struct {
	JobID  string `json:"job_id"`
	URL    string `json:"url"`
	Status Status `json:"status"`
}

// PlanResponse is returned for a generated patch plan.
type PlanResponse struct {
	PlanID     string          `json:"plan_id"`
	Patch      []PatchPlanItem `json:"patch"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UploadID   string          `json:"upload_id"`
	JobID      string          `json:"job_id"`
	MatchScore float64         `json:"match_score"`
}
