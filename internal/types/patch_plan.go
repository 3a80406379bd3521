package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Action is the kind of edit a patch plan item proposes.
type Action string

const (
	ActionKeep        Action = "KEEP"
	ActionDelete      Action = "DELETE"
	ActionEdit        Action = "EDIT"
	ActionInsertAfter Action = "INSERT_AFTER"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionKeep, ActionDelete, ActionEdit, ActionInsertAfter:
		return true
	}
	return false
}

// UnmarshalText rejects unknown actions.
func (a *Action) UnmarshalText(text []byte) error {
	v := Action(text)
	if !v.Valid() {
		return fmt.Errorf("unknown patch action %q", string(text))
	}
	*a = v
	return nil
}

// PatchPlanItem is a single suggested resume edit.
type PatchPlanItem struct {
	ID            string  `json:"id"`
	Action        Action  `json:"action"`
	SuggestedText *string `json:"suggested_text"`
	Rationale     string  `json:"rationale"`
}

// PatchPlan is the ordered list of suggested edits for one (resume, job) pair.
type PatchPlan struct {
	ResumeID   string          `json:"resume_id"`
	JobID      string          `json:"job_id"`
	Items      []PatchPlanItem `json:"items"`
	MatchScore float64         `json:"match_score"`
}

// CreatePlanRequest is the request body for generating a patch plan.
type CreatePlanRequest struct {
	UploadID string `json:"upload_id" validate:"required,uuid"`
	JobID    string `json:"job_id" validate:"required,uuid"`
}

// Validate validates the CreatePlanRequest using the validator.
func (r *CreatePlanRequest) Validate() error {
	return validate.Struct(r)
}
