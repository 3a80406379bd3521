package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedJobPage = `<html><head><title>Careers</title></head><body>
<h1 class="job-title">Data Engineer</h1>
<div class="company-name">Globex</div>
<div class="job-location">Remote</div>
<div class="job-description">
  <p>Build pipelines for analytics.</p>
  <h3>Requirements</h3>
  <ul><li>Python</li><li>Airflow</li></ul>
</div>
</body></html>`

func TestRunScrapeJob_URL(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	scrapeURL = "https://www.linkedin.com/jobs/view/12345"
	scrapeOutputFile = filepath.Join(dir, "job.json")

	require.NoError(t, runScrapeJob(nil, nil))

	job := readJSONMap(t, scrapeOutputFile)
	assert.NotEmpty(t, job["title"])
	assert.Equal(t, scrapeURL, job["url"])
	assert.NotEmpty(t, job["requirements"])
}

func TestRunScrapeJob_SavedPage(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	scrapeHTMLFile = writeFile(t, dir, "job.html", savedJobPage)
	scrapeURL = "https://careers.globex.com/jobs/42"
	scrapeOutputFile = filepath.Join(dir, "job.json")

	require.NoError(t, runScrapeJob(nil, nil))

	job := readJSONMap(t, scrapeOutputFile)
	assert.Equal(t, "Data Engineer", job["title"])
	assert.Equal(t, "Globex", job["company"])
	assert.Equal(t, "Remote", job["location"])
}

func TestRunScrapeJob_Errors(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		errorString string
	}{
		{name: "no source", errorString: "one of --url or --html is required"},
		{name: "plain http", url: "http://jobs.example.com/1", errorString: "only https URLs are supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			scrapeURL = tt.url

			err := runScrapeJob(nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}
