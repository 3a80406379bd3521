package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/ingestion"
	"github.com/jonathan/resume-extractor/internal/jobqueue"
	"github.com/jonathan/resume-extractor/internal/scraper"
	"github.com/jonathan/resume-extractor/internal/tailoring"
	"github.com/jonathan/resume-extractor/internal/types"
)

// multipartOverhead is the slack allowed above the file limit for form
// boundaries and headers.
const multipartOverhead = 1 << 20

// handleUploadResume stores a multipart "file" and queues it for parsing.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.uploads.MaxBytes()+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.handleError(w, r, &ingestion.FileError{
				Reason:  ingestion.ReasonTooLarge,
				Message: fmt.Sprintf("File size exceeds maximum of %d bytes", s.uploads.MaxBytes()),
			})
			return
		}
		s.handleError(w, r, &ErrValidation{Field: "file", Message: "invalid multipart form: " + err.Error()})
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "file", Message: "file is required"})
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if err := s.uploads.Validate(header.Filename, mimeType, header.Size); err != nil {
		s.handleError(w, r, err)
		return
	}

	upload, err := s.uploads.Save(r.Context(), header.Filename, mimeType, file)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.CreateUpload(r.Context(), upload); err != nil {
		_ = s.uploads.Remove(upload)
		s.handleError(w, r, err)
		return
	}
	if err := s.queue.Enqueue(r.Context(), jobqueue.Job{Kind: jobqueue.KindParseResume, TargetID: upload.ID}); err != nil {
		_ = s.store.MarkUploadFailed(context.WithoutCancel(r.Context()), upload.ID, err.Error())
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.UploadResponse{
		UploadID: upload.ID,
		Filename: upload.Filename,
		MimeType: upload.MimeType,
		Status:   upload.Status,
	})
}

// handleGetUpload returns an upload's status and, once parsed, its data.
func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := s.loadUpload(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, upload)
}

// handleGetUploadFile streams the stored file back.
func (s *Server) handleGetUploadFile(w http.ResponseWriter, r *http.Request) {
	upload, err := s.loadUpload(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	f, err := s.uploads.Open(upload)
	if err != nil {
		s.handleError(w, r, &ErrNotFound{Resource: "upload file", ID: upload.ID})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", upload.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(upload.Filename)))
	http.ServeContent(w, r, upload.Filename, upload.CreatedAt, f)
}

// handleUploadEvents streams status events until the upload is terminal.
func (s *Server) handleUploadEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	upload, err := s.loadUpload(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	last := types.Status("")
	for {
		if upload.Status != last {
			last = upload.Status
			if err := sse.WriteEvent("status", map[string]string{"id": id, "status": string(last)}); err != nil {
				return
			}
		}
		if last.Terminal() {
			sse.WriteComplete(id, last)
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		upload, err = s.loadUpload(r.Context(), id)
		if err != nil {
			sse.WriteError(err.Error())
			return
		}
	}
}

// handleScrapeJob records a scrape request and queues it.
func (s *Server) handleScrapeJob(w http.ResponseWriter, r *http.Request) {
	var req types.ScrapeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	job := &types.ScrapedJob{
		ID:        uuid.New().String(),
		URL:       req.URL,
		Platform:  string(scraper.DetectPlatform(req.URL)),
		Status:    types.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateScrapedJob(r.Context(), job); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.queue.Enqueue(r.Context(), jobqueue.Job{Kind: jobqueue.KindScrapeJob, TargetID: job.ID}); err != nil {
		_ = s.store.FailScrapedJob(context.WithoutCancel(r.Context()), job.ID, err.Error())
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusAccepted, types.ScrapeResponse{
		JobID:  job.ID,
		URL:    job.URL,
		Status: job.Status,
	})
}

// handleGetJob returns a scraped job and its posting once ready.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := s.store.GetScrapedJob(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if job == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "job", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreatePlan generates a patch plan for a parsed upload and a ready job.
// Generation is quick, so it runs inline and the finished plan is returned.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePlanRequest(w, r)
	if !ok {
		return
	}
	if err := s.checkInputs(r.Context(), req); err != nil {
		s.handleError(w, r, err)
		return
	}

	plan := &types.StoredPlan{
		ID:        uuid.New().String(),
		UploadID:  req.UploadID,
		JobID:     req.JobID,
		Status:    types.StatusPending,
		Items:     []types.PatchPlanItem{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreatePlan(r.Context(), plan); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.queue.Process(r.Context(), jobqueue.Job{Kind: jobqueue.KindGeneratePlan, TargetID: plan.ID}); err != nil {
		s.handleError(w, r, err)
		return
	}

	stored, err := s.store.GetPlan(r.Context(), plan.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if stored == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "plan", ID: plan.ID})
		return
	}
	s.jsonResponse(w, http.StatusCreated, stored.Response())
}

// handleGetPlan returns a stored plan.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	plan, err := s.store.GetPlan(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if plan == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "plan", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, plan.Response())
}

// handleAnalyze scores how well a parsed resume fits a scraped job.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePlanRequest(w, r)
	if !ok {
		return
	}
	if err := s.checkInputs(r.Context(), req); err != nil {
		s.handleError(w, r, err)
		return
	}

	upload, err := s.loadUpload(r.Context(), req.UploadID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	job, err := s.store.GetScrapedJob(r.Context(), req.JobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if job == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "job", ID: req.JobID})
		return
	}

	s.jsonResponse(w, http.StatusOK, tailoring.Analyze(upload.ParsedData, job.Posting))
}

func (s *Server) decodePlanRequest(w http.ResponseWriter, r *http.Request) (*types.CreatePlanRequest, bool) {
	var req types.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return nil, false
	}
	return &req, true
}

// checkInputs reports unknown ids as not found and unfinished inputs as a
// dependency error.
func (s *Server) checkInputs(ctx context.Context, req *types.CreatePlanRequest) error {
	if _, err := s.loadUpload(ctx, req.UploadID); err != nil {
		return err
	}
	job, err := s.store.GetScrapedJob(ctx, req.JobID)
	if err != nil {
		return err
	}
	if job == nil {
		return &ErrNotFound{Resource: "job", ID: req.JobID}
	}
	return jobqueue.ValidateDependencies(ctx, s.store, jobqueue.KindGeneratePlan, req.UploadID, req.JobID)
}

func (s *Server) loadUpload(ctx context.Context, id string) (*types.ResumeUpload, error) {
	upload, err := s.store.GetUpload(ctx, id)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, &ErrNotFound{Resource: "upload", ID: id}
	}
	return upload, nil
}
