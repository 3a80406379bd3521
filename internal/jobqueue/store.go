package jobqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Store persists uploads, scraped jobs and plans. Getters return (nil, nil)
// for unknown ids.
type Store interface {
	CreateUpload(ctx context.Context, u *types.ResumeUpload) error
	GetUpload(ctx context.Context, id string) (*types.ResumeUpload, error)
	MarkUploadParsed(ctx context.Context, id string, data *types.ResumeData, at time.Time) error
	MarkUploadFailed(ctx context.Context, id, message string) error

	CreateScrapedJob(ctx context.Context, j *types.ScrapedJob) error
	GetScrapedJob(ctx context.Context, id string) (*types.ScrapedJob, error)
	CompleteScrapedJob(ctx context.Context, id string, posting *types.JobPosting, at time.Time) error
	FailScrapedJob(ctx context.Context, id, message string) error

	CreatePlan(ctx context.Context, p *types.StoredPlan) error
	GetPlan(ctx context.Context, id string) (*types.StoredPlan, error)
	UpdatePlan(ctx context.Context, p *types.StoredPlan) error
}

// MemoryStore is a Store kept in process memory. Values are copied on the
// way in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	uploads map[string]types.ResumeUpload
	jobs    map[string]types.ScrapedJob
	plans   map[string]types.StoredPlan
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		uploads: make(map[string]types.ResumeUpload),
		jobs:    make(map[string]types.ScrapedJob),
		plans:   make(map[string]types.StoredPlan),
	}
}

func (m *MemoryStore) CreateUpload(_ context.Context, u *types.ResumeUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.uploads[u.ID]; ok {
		return fmt.Errorf("upload %s already exists", u.ID)
	}
	m.uploads[u.ID] = *u
	return nil
}

func (m *MemoryStore) GetUpload(_ context.Context, id string) (*types.ResumeUpload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.uploads[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryStore) MarkUploadParsed(_ context.Context, id string, data *types.ResumeData, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.uploads[id]
	if !ok {
		return fmt.Errorf("upload %s not found", id)
	}
	u.Status = types.StatusParsed
	u.ParsedData = data
	u.ErrorMessage = ""
	u.ParsedAt = &at
	m.uploads[id] = u
	return nil
}

func (m *MemoryStore) MarkUploadFailed(_ context.Context, id, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.uploads[id]
	if !ok {
		return fmt.Errorf("upload %s not found", id)
	}
	u.Status = types.StatusFailed
	u.ErrorMessage = message
	m.uploads[id] = u
	return nil
}

func (m *MemoryStore) CreateScrapedJob(_ context.Context, j *types.ScrapedJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[j.ID]; ok {
		return fmt.Errorf("scraped job %s already exists", j.ID)
	}
	m.jobs[j.ID] = *j
	return nil
}

func (m *MemoryStore) GetScrapedJob(_ context.Context, id string) (*types.ScrapedJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (m *MemoryStore) CompleteScrapedJob(_ context.Context, id string, posting *types.JobPosting, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("scraped job %s not found", id)
	}
	j.Status = types.StatusReady
	j.Posting = posting
	j.ErrorMessage = ""
	j.CompletedAt = &at
	m.jobs[id] = j
	return nil
}

func (m *MemoryStore) FailScrapedJob(_ context.Context, id, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("scraped job %s not found", id)
	}
	j.Status = types.StatusFailed
	j.ErrorMessage = message
	m.jobs[id] = j
	return nil
}

func (m *MemoryStore) CreatePlan(_ context.Context, p *types.StoredPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[p.ID]; ok {
		return fmt.Errorf("plan %s already exists", p.ID)
	}
	m.plans[p.ID] = clonePlan(*p)
	return nil
}

func (m *MemoryStore) GetPlan(_ context.Context, id string) (*types.StoredPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, nil
	}
	p = clonePlan(p)
	return &p, nil
}

func (m *MemoryStore) UpdatePlan(_ context.Context, p *types.StoredPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[p.ID]; !ok {
		return fmt.Errorf("plan %s not found", p.ID)
	}
	m.plans[p.ID] = clonePlan(*p)
	return nil
}

func clonePlan(p types.StoredPlan) types.StoredPlan {
	if p.Items != nil {
		p.Items = append([]types.PatchPlanItem(nil), p.Items...)
	}
	return p
}
