package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("store: not found")

// QueryOpts configures event queries with filtering and pagination.
// Results are ordered newest first.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls for one purpose tag.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates LLM calls for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// GradeEventData records one graded submission.
type GradeEventData struct {
	ProblemID string // archived problem id, empty for ad-hoc problems
	Family    string
	Tier      int
	Answer    string
	Verdict   string
	Diagnosis string
}

// GradeEvent is a stored grade event.
type GradeEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GradeEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents lists LLM events matching opts.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose tag.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendGrade records a graded submission.
	AppendGrade(ctx context.Context, data GradeEventData) error

	// QueryGrades lists grade events matching opts.
	QueryGrades(ctx context.Context, opts QueryOpts) ([]GradeEvent, error)
}

// ArchivedProblem is a generated problem kept for later grading. Data holds
// the problem's JSON encoding; the store does not interpret it.
type ArchivedProblem struct {
	ID        string
	CreatedAt time.Time
	Family    string
	Tier      int
	Seed      int64
	Version   string
	Data      []byte
}

// ProblemRepo archives generated problems.
type ProblemRepo interface {
	// Save stores p, assigning an ID when p.ID is empty, and returns the ID.
	Save(ctx context.Context, p *ArchivedProblem) (string, error)

	// Get returns the problem with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*ArchivedProblem, error)

	// List returns the most recent problems, newest first.
	List(ctx context.Context, limit int) ([]ArchivedProblem, error)
}
