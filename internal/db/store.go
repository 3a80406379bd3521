package db

import "github.com/jonathan/resume-extractor/internal/jobqueue"

var _ jobqueue.Store = (*DB)(nil)
