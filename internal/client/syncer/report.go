package syncer

import (
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
)

// TypeReport counts what a pass did for one entity type.
type TypeReport struct {
	Pushed     int
	PushFailed int
	// Rejected counts pushes the backend refused in favour of a version
	// the local resolver ranks lower.
	Rejected  int
	Pulled    int
	Pages     int
	Inserted  int
	Applied   int
	KeptLocal int
	Identical int
	// Skipped counts sync-side writes that lost a race against a local edit.
	Skipped int
}

// Report summarizes one pass.
type Report struct {
	Identity    string
	StartedAt   time.Time
	FinishedAt  time.Time
	CursorReset bool
	Types       map[models.EntityType]*TypeReport
	Cursors     map[models.EntityType]int64
}

func newReport(identity string, started time.Time) *Report {
	r := &Report{
		Identity:  identity,
		StartedAt: started,
		Types:     make(map[models.EntityType]*TypeReport, len(models.SyncOrder)),
		Cursors:   make(map[models.EntityType]int64, len(models.SyncOrder)),
	}
	for _, t := range models.SyncOrder {
		r.Types[t] = &TypeReport{}
	}
	return r
}

// For returns the counters of t; never nil.
func (r *Report) For(t models.EntityType) TypeReport {
	if r == nil || r.Types[t] == nil {
		return TypeReport{}
	}
	return *r.Types[t]
}

// Total sums the counters of every type.
func (r *Report) Total() TypeReport {
	var s TypeReport
	if r == nil {
		return s
	}
	for _, t := range r.Types {
		s.Pushed += t.Pushed
		s.PushFailed += t.PushFailed
		s.Rejected += t.Rejected
		s.Pulled += t.Pulled
		s.Pages += t.Pages
		s.Inserted += t.Inserted
		s.Applied += t.Applied
		s.KeptLocal += t.KeptLocal
		s.Identical += t.Identical
		s.Skipped += t.Skipped
	}
	return s
}
