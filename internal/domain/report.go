package domain

import "time"

type FailureKind string

const (
	FailList     FailureKind = "failed_list"
	FailResolve  FailureKind = "failed_resolve"
	FailDownload FailureKind = "failed_download"
	FailPublish  FailureKind = "failed_publish"
	FailProject  FailureKind = "failed_project"
)

// AdFailure is one ad (or account listing) that did not make it into
// the catalog this run.
type AdFailure struct {
	AdID   string
	AdName string
	Brand  string
	Kind   FailureKind
	Detail string
}

// ProjectionStats summarizes one reconciliation pass against Airtable.
type ProjectionStats struct {
	Inserted   int
	Updated    int
	Pruned     int
	FailedRows int
	Degraded   bool
}

// RunReport accumulates the outcome of a full sync run.
type RunReport struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	Indexed        int
	FailedList     int
	FailedResolve  int
	FailedDownload int
	FailedPublish  int
	FailedProject  int

	Inserted int
	Updated  int
	Pruned   int
	Degraded bool

	Failures []AdFailure
}

// Fail records a failure and bumps the matching counter.
func (r *RunReport) Fail(f AdFailure) {
	switch f.Kind {
	case FailList:
		r.FailedList++
	case FailResolve:
		r.FailedResolve++
	case FailDownload:
		r.FailedDownload++
	case FailPublish:
		r.FailedPublish++
	case FailProject:
		r.FailedProject++
	}
	r.Failures = append(r.Failures, f)
}

// HasFailures reports whether any per-ad work failed; drives exit code 1.
func (r *RunReport) HasFailures() bool {
	return len(r.Failures) > 0 || r.FailedProject > 0
}
