package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/ingestion"
	"github.com/jonathan/resume-extractor/internal/jobqueue"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/scraper"
	"github.com/jonathan/resume-extractor/internal/server/ratelimit"
	"github.com/jonathan/resume-extractor/internal/types"
)

// stubExtractor returns a fixed resume for every stored file.
type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, _ string) (*types.ResumeData, error) {
	r := types.NewResumeData()
	r.Contact.Name = types.StringPtr("Jane Doe")
	r.Skills = []string{"Python", "SQL"}
	r.Experience = []types.WorkExperience{{
		Company:     types.StringPtr("Acme"),
		Role:        types.StringPtr("Intern"),
		Description: types.StringPtr("Built dashboards in Python"),
		SkillsUsed:  []string{},
	}}
	r.RawText = "Jane Doe\nPython SQL\nBuilt dashboards in Python"
	return r, nil
}

type testServer struct {
	*Server
	store   *jobqueue.MemoryStore
	metrics *observability.Metrics
}

func newTestServer(t *testing.T, opts ...func(*Config)) *testServer {
	t.Helper()

	store := jobqueue.NewMemoryStore()
	metrics := observability.NewMetrics()
	nop := zerolog.Nop()
	queue := jobqueue.New(store, stubExtractor{}, scraper.Scrape,
		jobqueue.WithWorkers(2), jobqueue.WithLogger(nop), jobqueue.WithMetrics(metrics))
	ctx, cancel := context.WithCancel(context.Background())
	queue.Start(ctx)

	cfg := Config{
		Store:        store,
		Queue:        queue,
		Uploads:      ingestion.NewStore(t.TempDir(), 1024),
		Metrics:      metrics,
		RateLimit:    &ratelimit.Config{Enabled: false},
		PollInterval: 5 * time.Millisecond,
		Logger:       &nop,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		s.rateLimiter.Stop()
	})
	return &testServer{Server: s, store: store, metrics: metrics}
}

func (ts *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func (ts *testServer) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return ts.do(t, req)
}

func uploadRequest(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/uploads/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// uploadParsed uploads a resume and waits for the parse job.
func (ts *testServer) uploadParsed(t *testing.T) string {
	t.Helper()
	w := ts.do(t, uploadRequest(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4 resume")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[types.UploadResponse](t, w).UploadID

	require.Eventually(t, func() bool {
		u, _ := ts.store.GetUpload(context.Background(), id)
		return u != nil && u.Status == types.StatusParsed
	}, 2*time.Second, 5*time.Millisecond)
	return id
}

// scrapeReady scrapes a job and waits for it to be ready.
func (ts *testServer) scrapeReady(t *testing.T) string {
	t.Helper()
	w := ts.postJSON(t, "/v1/jobs/scrape", map[string]string{"url": "https://www.linkedin.com/jobs/view/42"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	id := decode[types.ScrapeResponse](t, w).JobID

	require.Eventually(t, func() bool {
		j, _ := ts.store.GetScrapedJob(context.Background(), id)
		return j != nil && j.Status == types.StatusReady
	}, 2*time.Second, 5*time.Millisecond)
	return id
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
	_, err = New(Config{Store: jobqueue.NewMemoryStore()})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestUploadResume(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, uploadRequest(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4 resume")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[types.UploadResponse](t, w)
	assert.NotEmpty(t, resp.UploadID)
	assert.Equal(t, "resume.pdf", resp.Filename)
	assert.Equal(t, "application/pdf", resp.MimeType)
	assert.Equal(t, types.StatusPending, resp.Status)

	require.Eventually(t, func() bool {
		w := ts.do(t, httptest.NewRequest(http.MethodGet, "/v1/uploads/"+resp.UploadID, nil))
		return w.Code == http.StatusOK && decode[types.ResumeUpload](t, w).Status == types.StatusParsed
	}, 2*time.Second, 5*time.Millisecond)

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/v1/uploads/"+resp.UploadID, nil))
	upload := decode[types.ResumeUpload](t, w)
	require.NotNil(t, upload.ParsedData)
	assert.Equal(t, "Jane Doe", types.Deref(upload.ParsedData.Contact.Name))
	assert.NotContains(t, w.Body.String(), "storage_path")
}

func TestUploadResume_Rejections(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		filename string
		content  []byte
		status   int
		code     string
	}{
		{"wrong extension", "resume.txt", []byte("hello"), http.StatusUnsupportedMediaType, "invalid_file_type"},
		{"empty", "resume.docx", nil, http.StatusBadRequest, "empty_file"},
		{"too large", "resume.pdf", bytes.Repeat([]byte("x"), 2048), http.StatusRequestEntityTooLarge, "file_too_large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, uploadRequest(t, tt.filename, "application/octet-stream", tt.content))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[map[string]any](t, w)["code"])
		})
	}
}

func TestUploadResume_MissingFile(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/v1/uploads/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := ts.do(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeValidation, decode[map[string]string](t, w)["code"])
}

func TestGetUploadFile(t *testing.T) {
	ts := newTestServer(t)
	id := ts.uploadParsed(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/v1/uploads/"+id+"/file", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 resume", w.Body.String())
}

func TestUploadEvents(t *testing.T) {
	ts := newTestServer(t)
	id := ts.uploadParsed(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/v1/uploads/"+id+"/events", nil))
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: status")
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, `"status":"PARSED"`)
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()

	for _, path := range []string{"/v1/uploads/" + id, "/v1/uploads/" + id + "/file", "/v1/jobs/" + id, "/v1/tailor/plan/" + id} {
		t.Run(path, func(t *testing.T) {
			w := ts.do(t, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, CodeNotFound, decode[map[string]string](t, w)["code"])
		})
	}
}

func TestScrapeJob(t *testing.T) {
	ts := newTestServer(t)
	id := ts.scrapeReady(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/v1/jobs/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	job := decode[types.ScrapedJob](t, w)
	assert.Equal(t, "linkedin", job.Platform)
	require.NotNil(t, job.Posting)
	assert.Equal(t, "Software Engineer Intern", job.Posting.Title)
}

func TestScrapeJob_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing url", map[string]string{}},
		{"http url", map[string]string{"url": "http://example.com/job"}},
		{"not a url", map[string]string{"url": "nonsense"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.postJSON(t, "/v1/jobs/scrape", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/scrape", strings.NewReader("{bad"))
	assert.Equal(t, http.StatusBadRequest, ts.do(t, req).Code)
}

func TestCreatePlan(t *testing.T) {
	ts := newTestServer(t)
	uploadID := ts.uploadParsed(t)
	jobID := ts.scrapeReady(t)

	w := ts.postJSON(t, "/v1/tailor/plan", types.CreatePlanRequest{UploadID: uploadID, JobID: jobID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	plan := decode[types.PlanResponse](t, w)
	assert.NotEmpty(t, plan.PlanID)
	assert.Equal(t, types.StatusReady, plan.Status)
	assert.Equal(t, uploadID, plan.UploadID)
	assert.Equal(t, jobID, plan.JobID)
	// Python and SQL of four requirements
	assert.InDelta(t, 0.5, plan.MatchScore, 1e-9)
	require.NotEmpty(t, plan.Patch)
	assert.Equal(t, "skills_section", plan.Patch[0].ID)

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/v1/tailor/plan/"+plan.PlanID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, plan.PlanID, decode[types.PlanResponse](t, w).PlanID)
}

func TestCreatePlan_Errors(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	pendingUpload := uuid.NewString()
	require.NoError(t, ts.store.CreateUpload(ctx, &types.ResumeUpload{ID: pendingUpload, Status: types.StatusPending}))
	readyJob := ts.scrapeReady(t)

	tests := []struct {
		name   string
		req    types.CreatePlanRequest
		status int
	}{
		{"invalid ids", types.CreatePlanRequest{UploadID: "abc", JobID: "def"}, http.StatusBadRequest},
		{"unknown upload", types.CreatePlanRequest{UploadID: uuid.NewString(), JobID: readyJob}, http.StatusNotFound},
		{"unknown job", types.CreatePlanRequest{UploadID: pendingUpload, JobID: uuid.NewString()}, http.StatusNotFound},
		{"not parsed", types.CreatePlanRequest{UploadID: pendingUpload, JobID: readyJob}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.postJSON(t, "/v1/tailor/plan", tt.req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t)
	uploadID := ts.uploadParsed(t)
	jobID := ts.scrapeReady(t)

	w := ts.postJSON(t, "/v1/tailor/analyze", types.CreatePlanRequest{UploadID: uploadID, JobID: jobID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[map[string]any](t, w)
	assert.Contains(t, resp, "compatibility_score")
	assert.Contains(t, resp, "recommendations")
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resume_extractor_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, httptest.NewRequest(http.MethodOptions, "/v1/tailor/plan", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour}
	})

	path := "/v1/jobs/" + uuid.NewString()
	first := ts.do(t, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusNotFound, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := ts.do(t, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Equal(t, CodeRateLimitExceed, decode[map[string]any](t, second)["code"])

	// health checks are never limited
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, ts.do(t, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	}
}
