// Package schemas holds the JSON Schemas for the documents the CLI and the
// API exchange.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	ResumeData = "resume_data.schema.json"
	PatchPlan  = "patch_plan.schema.json"
	JobPosting = "job_posting.schema.json"
)
