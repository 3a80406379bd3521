package jobqueue

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Kind is the type of work a job performs.
type Kind string

const (
	KindParseResume  Kind = "parse_resume"
	KindScrapeJob    Kind = "scrape_job"
	KindGeneratePlan Kind = "generate_plan"
)

// KindDefinition describes a job kind and the kinds whose results it reads.
type KindDefinition struct {
	Name         Kind
	Dependencies []Kind
}

// Registry holds every job kind.
var Registry = map[Kind]KindDefinition{
	KindParseResume:  {Name: KindParseResume, Dependencies: []Kind{}},
	KindScrapeJob:    {Name: KindScrapeJob, Dependencies: []Kind{}},
	KindGeneratePlan: {Name: KindGeneratePlan, Dependencies: []Kind{KindParseResume, KindScrapeJob}},
}

// DependencyError reports the inputs a job needs that are not ready yet.
type DependencyError struct {
	Kind                Kind
	MissingDependencies []Kind
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: missing dependencies: %v", e.Kind, e.MissingDependencies)
}

// ValidateDependencies checks that the upload is parsed and the scraped job
// is ready before a plan is generated. Kinds without dependencies always pass.
func ValidateDependencies(ctx context.Context, store Store, kind Kind, uploadID, jobID string) error {
	def, ok := Registry[kind]
	if !ok {
		return fmt.Errorf("unknown job kind: %s", kind)
	}

	var missing []Kind
	for _, dep := range def.Dependencies {
		done, err := dependencyDone(ctx, store, dep, uploadID, jobID)
		if err != nil {
			return fmt.Errorf("failed to check dependency %s: %w", dep, err)
		}
		if !done {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{Kind: kind, MissingDependencies: missing}
	}
	return nil
}

func dependencyDone(ctx context.Context, store Store, dep Kind, uploadID, jobID string) (bool, error) {
	switch dep {
	case KindParseResume:
		u, err := store.GetUpload(ctx, uploadID)
		if err != nil || u == nil {
			return false, err
		}
		return u.Status == types.StatusParsed && u.ParsedData != nil, nil
	case KindScrapeJob:
		j, err := store.GetScrapedJob(ctx, jobID)
		if err != nil || j == nil {
			return false, err
		}
		return j.Status == types.StatusReady && j.Posting != nil, nil
	}
	return false, fmt.Errorf("unknown job kind: %s", dep)
}
