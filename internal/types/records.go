package types

import "time"

// ResumeUpload is a stored resume file and its parse outcome.
type ResumeUpload struct {
	ID           string      `json:"id"`
	Filename     string      `json:"filename"`
	MimeType     string      `json:"mime_type"`
	SizeBytes    int64       `json:"size_bytes"`
	ContentHash  string      `json:"content_hash"`
	StoragePath  string      `json:"-"`
	Status       Status      `json:"status"`
	ParsedData   *ResumeData `json:"parsed_data,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	ParsedAt     *time.Time  `json:"parsed_at,omitempty"`
}

// ScrapedJob is a scrape request and the posting it produced.
type ScrapedJob struct {
	ID           string      `json:"id"`
	URL          string      `json:"url"`
	Platform     string      `json:"platform"`
	Status       Status      `json:"status"`
	Posting      *JobPosting `json:"posting,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}

// StoredPlan is a generated patch plan tied to an upload and a scraped job.
type StoredPlan struct {
	ID           string          `json:"id"`
	UploadID     string          `json:"upload_id"`
	JobID        string          `json:"job_id"`
	Status       Status          `json:"status"`
	Items        []PatchPlanItem `json:"items"`
	MatchScore   float64         `json:"match_score"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Response converts the stored plan to its API shape.
func (p *StoredPlan) Response() PlanResponse {
	items := p.Items
	if items == nil {
		items = []PatchPlanItem{}
	}
	return PlanResponse{
		PlanID:     p.ID,
		Patch:      items,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UploadID:   p.UploadID,
		JobID:      p.JobID,
		MatchScore: p.MatchScore,
	}
}
