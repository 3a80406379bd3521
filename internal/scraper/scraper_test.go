package scraper

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://www.linkedin.com/jobs/view/123", PlatformLinkedIn},
		{"https://www.indeed.com/viewjob?jk=abc", PlatformIndeed},
		{"https://www.glassdoor.com/job-listing/x", PlatformGlassdoor},
		{"https://careers.acme.io/jobs/1", PlatformGeneric},
		{"::not a url", PlatformGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestScrape_KnownBoards(t *testing.T) {
	tests := []struct {
		url      string
		title    string
		company  string
		location string
		reqs     []string
	}{
		{"https://www.linkedin.com/jobs/view/1", "Software Engineer Intern", "LinkedIn", "San Francisco, CA", []string{"Python", "JavaScript", "React", "SQL"}},
		{"https://www.indeed.com/viewjob?jk=2", "Data Science Intern", "Indeed", "Austin, TX", []string{"Python", "SQL", "Machine Learning", "Statistics"}},
		{"https://www.glassdoor.com/job/3", "Product Manager Intern", "Glassdoor", "Mill Valley, CA", []string{"Product Management", "Analytics", "Communication"}},
	}

	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			p, err := Scrape(context.Background(), tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.company, p.Company)
			assert.Equal(t, tt.location, p.Location)
			assert.Equal(t, tt.reqs, p.Requirements)
			assert.Equal(t, "Internship", p.EmploymentType)
			assert.Equal(t, tt.url, p.URL)
			assert.Contains(t, p.Description, tt.company)
		})
	}
}

func TestScrape_Generic(t *testing.T) {
	p, err := Scrape(context.Background(), "https://acme.example.com/careers/42")
	require.NoError(t, err)
	assert.Equal(t, "Software Engineering Intern", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Remote", p.Location)
	assert.Equal(t, []string{"Programming", "Problem Solving", "Teamwork"}, p.Requirements)

	p, err = Scrape(context.Background(), "https://www.globex.com/jobs")
	require.NoError(t, err)
	assert.Equal(t, "Globex", p.Company)
}

func TestScrape_Rejects(t *testing.T) {
	for _, u := range []string{"http://www.linkedin.com/jobs/1", "ftp://jobs.example.com", "not-a-url", ""} {
		_, err := Scrape(context.Background(), u)
		var scrapeErr *Error
		assert.ErrorAs(t, err, &scrapeErr, u)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scrape(ctx, "https://www.indeed.com/viewjob")
	assert.ErrorIs(t, err, context.Canceled)
}

const jobPage = `<html><head>
<meta property="og:site_name" content="Initech">
<title>Careers</title>
</head><body>
<nav>Home | Jobs</nav>
<h1 class="job-title">  Backend   Engineer </h1>
<div class="location">Remote, US</div>
<span class="salary">$120k - $150k</span>
<div class="job-description">
  <p>We build payment systems.</p>
  <h3>Responsibilities</h3>
  <ul><li>Own services</li></ul>
  <h3>Requirements</h3>
  <ul>
    <li>Go</li>
    <li>PostgreSQL</li>
    <li>  Kubernetes </li>
  </ul>
</div>
<footer>Apply now</footer>
</body></html>`

func TestParseHTML(t *testing.T) {
	p, err := ParseHTML(strings.NewReader(jobPage), "https://jobs.initech.com/42")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", p.Title)
	assert.Equal(t, "Initech", p.Company)
	assert.Equal(t, "Remote, US", p.Location)
	require.NotNil(t, p.Salary)
	assert.Equal(t, "$120k - $150k", *p.Salary)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, p.Requirements)
	assert.Contains(t, p.Description, "We build payment systems.")
	assert.NotContains(t, p.Description, "Apply now")
	assert.Equal(t, "https://jobs.initech.com/42", p.URL)
}

func TestParseHTML_FallsBackToAllListItems(t *testing.T) {
	page := `<html><body><h1>Intern</h1><main><ul><li>Python</li><li>SQL</li></ul></main></body></html>`

	p, err := ParseHTML(strings.NewReader(page), "https://www.acme.com/job")
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, []string{"Python", "SQL"}, p.Requirements)
	assert.Nil(t, p.Salary)
}

func TestParseHTML_EmptyPage(t *testing.T) {
	_, err := ParseHTML(strings.NewReader("<html><body></body></html>"), "https://x.com")
	assert.ErrorIs(t, err, ErrNoPosting)
}
