package types

// JobPosting is a job advertisement the resume is compared against.
type JobPosting struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
	Salary         *string  `json:"salary"`
	EmploymentType string   `json:"employment_type"`
	URL            string   `json:"url"`
}

// ScrapeJobRequest is the request body for scraping a job posting.
type ScrapeJobRequest struct {
	URL string `json:"url" validate:"required,url,startswith=https://"`
}

// Validate validates the ScrapeJobRequest using the validator.
func (r *ScrapeJobRequest) Validate() error {
	return validate.Struct(r)
}
