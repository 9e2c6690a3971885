package domain

import "time"

// ItemFailure records why one entry was skipped.
type ItemFailure struct {
	Slug string
	URL  string
	Err  error
}

// Error implements error so failures can be wrapped and inspected.
func (f ItemFailure) Error() string {
	return f.Slug + ": " + f.Err.Error()
}

// Unwrap returns the underlying cause.
func (f ItemFailure) Unwrap() error {
	return f.Err
}

// FetchSummary is the outcome of a fetch run.
type FetchSummary struct {
	// Total is the number of feed items attempted.
	Total int

	// Succeeded counts entries downloaded and written.
	Succeeded int

	// Failed counts entries that were skipped.
	Failed int

	// Failures details each skipped entry, in feed order.
	Failures []ItemFailure

	// OutputDir is where entry files were written.
	OutputDir string
}

// OK reports whether the run produced at least one entry file.
func (s FetchSummary) OK() bool {
	return s.Succeeded > 0
}

// CombineSummary is the outcome of a combine run.
type CombineSummary struct {
	// Months is the number of month wrappers written.
	Months int

	// Rendered counts entries included in the document.
	Rendered int

	// Missing counts entries whose file was absent, unreadable or empty.
	Missing int

	// Undated counts entries excluded for an unparseable pubDate.
	Undated int

	// OutputPath is the combined document written.
	OutputPath string
}

// Stage names a pipeline step recorded in run history.
type Stage string

const (
	// StageFetch downloads entry files.
	StageFetch Stage = "fetch"

	// StageCombine writes the combined document.
	StageCombine Stage = "combine"
)

// ItemStatus is the outcome of one entry within a run.
type ItemStatus string

const (
	ItemSucceeded ItemStatus = "succeeded"
	ItemFailed    ItemStatus = "failed"
	ItemSkipped   ItemStatus = "skipped"
)

// RunRecord is one stage execution kept in run history.
type RunRecord struct {
	// ID is the unique identifier for the run.
	ID string

	// Stage is the step that ran.
	Stage Stage

	// StartedAt is when the run started.
	StartedAt time.Time

	// EndedAt is when the run completed.
	EndedAt time.Time

	// Succeeded and Failed count item outcomes.
	Succeeded int
	Failed    int

	// Error contains the fatal error message, if any.
	Error string
}

// Success reports whether the run finished without a fatal error.
func (r RunRecord) Success() bool {
	return r.Error == ""
}

// ItemRecord is one entry outcome within a run.
type ItemRecord struct {
	RunID  string
	Slug   string
	URL    string
	Status ItemStatus
	Error  string
}
