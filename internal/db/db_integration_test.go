//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	return db
}

func newUpload() *types.ResumeUpload {
	return &types.ResumeUpload{
		ID:          uuid.NewString(),
		Filename:    "resume.pdf",
		MimeType:    "application/pdf",
		SizeBytes:   1024,
		ContentHash: uuid.NewString(),
		StoragePath: "/tmp/resume.pdf",
		Status:      types.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func cleanup(t *testing.T, db *DB, uploadID, jobID string) {
	t.Helper()
	ctx := context.Background()
	if uploadID != "" {
		_, _ = db.pool.Exec(ctx, "DELETE FROM resume_uploads WHERE id = $1", uploadID)
	}
	if jobID != "" {
		_, _ = db.pool.Exec(ctx, "DELETE FROM scraped_jobs WHERE id = $1", jobID)
	}
}

func TestIntegration_Upload_Lifecycle(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	u := newUpload()
	require.NoError(t, db.CreateUpload(ctx, u))
	defer cleanup(t, db, u.ID, "")

	got, err := db.GetUpload(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.StatusPending, got.Status)
	assert.Nil(t, got.ParsedData)

	data := types.NewResumeData()
	data.Contact.Name = types.StringPtr("Jane Doe")
	data.Skills = []string{"Go"}
	data.RawText = "Jane Doe\nSkills\nGo"
	require.NoError(t, db.MarkUploadParsed(ctx, u.ID, data, time.Now()))

	got, err = db.GetUpload(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusParsed, got.Status)
	require.NotNil(t, got.ParsedData)
	assert.Equal(t, "Jane Doe", types.Deref(got.ParsedData.Contact.Name))
	assert.Equal(t, data.RawText, got.ParsedData.RawText)
	assert.NotNil(t, got.ParsedAt)

	byHash, err := db.FindUploadByHash(ctx, u.ContentHash)
	require.NoError(t, err)
	require.NotNil(t, byHash)
	assert.Equal(t, u.ID, byHash.ID)
}

func TestIntegration_Upload_Failed(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	u := newUpload()
	require.NoError(t, db.CreateUpload(ctx, u))
	defer cleanup(t, db, u.ID, "")

	require.NoError(t, db.MarkUploadFailed(ctx, u.ID, "corrupt file"))
	got, err := db.GetUpload(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, got.Status)
	assert.Equal(t, "corrupt file", got.ErrorMessage)
}

func TestIntegration_NotFound(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	id := uuid.NewString()

	u, err := db.GetUpload(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, u)

	j, err := db.GetScrapedJob(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, j)

	p, err := db.GetPlan(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.Error(t, db.MarkUploadFailed(ctx, id, "x"))
}

func TestIntegration_ScrapedJobAndPlan(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	u := newUpload()
	require.NoError(t, db.CreateUpload(ctx, u))
	job := &types.ScrapedJob{
		ID:        uuid.NewString(),
		URL:       "https://www.linkedin.com/jobs/view/1",
		Platform:  "linkedin",
		Status:    types.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateScrapedJob(ctx, job))
	defer cleanup(t, db, u.ID, job.ID)

	posting := &types.JobPosting{
		Title:        "Software Engineer",
		Company:      "Acme",
		Requirements: []string{"Go", "SQL"},
	}
	require.NoError(t, db.CompleteScrapedJob(ctx, job.ID, posting, time.Now()))

	gotJob, err := db.GetScrapedJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusReady, gotJob.Status)
	require.NotNil(t, gotJob.Posting)
	assert.Equal(t, []string{"Go", "SQL"}, gotJob.Posting.Requirements)

	plan := &types.StoredPlan{
		ID:        uuid.NewString(),
		UploadID:  u.ID,
		JobID:     job.ID,
		Status:    types.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreatePlan(ctx, plan))

	plan.Status = types.StatusReady
	plan.MatchScore = 0.5
	plan.Items = []types.PatchPlanItem{{ID: "skills_section", Action: types.ActionEdit, Rationale: "r"}}
	require.NoError(t, db.UpdatePlan(ctx, plan))

	gotPlan, err := db.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusReady, gotPlan.Status)
	assert.InDelta(t, 0.5, gotPlan.MatchScore, 1e-9)
	require.Len(t, gotPlan.Items, 1)
	assert.Equal(t, types.ActionEdit, gotPlan.Items[0].Action)

	plans, err := db.ListPlansForUpload(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}
