package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle stage of a tracked job application.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
	StatusGhosted      Status = "ghosted"
)

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusApplied, StatusInterviewing, StatusOffered, StatusRejected, StatusGhosted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Method identifies which path produced a classification.
type Method string

const (
	MethodAI               Method = "ai"
	MethodRegex            Method = "regex"
	MethodInsufficientData Method = "insufficient_data"
)

// EmailRecord is a raw inbound email as supplied by an email source.
// The content may still contain HTML markup.
type EmailRecord struct {
	Subject   string
	From      string
	Content   string
	Date      time.Time
	MessageID string
}

// Optional is an explicit maybe-value for extraction results. An absent
// company or title is None, never a placeholder string.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None is the absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool {
	return o.ok
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as the absent value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// ClassificationResult is the outcome of classifying a single email. It is
// produced fresh per email and never mutated afterwards; persisting any of it
// is the caller's responsibility.
type ClassificationResult struct {
	Status     Status           `json:"status"`
	Company    Optional[string] `json:"company"`
	JobTitle   Optional[string] `json:"job_title"`
	Confidence float64          `json:"confidence"`
	Method     Method           `json:"method"`
	ModelUsed  string           `json:"model_used,omitempty"`
	AnalyzedAt time.Time        `json:"analyzed_at"`
}

// AIClassification is the validated structured response of an external
// classifier.
type AIClassification struct {
	Status     Status
	Company    Optional[string]
	JobTitle   Optional[string]
	Confidence float64
	Reasoning  string
	Model      string
}

// JobRecord is a tracked job application as persisted by a JobStore.
type JobRecord struct {
	ID             string    `json:"id"`
	Owner          string    `json:"owner"`
	CompanyName    string    `json:"company_name"`
	JobTitle       string    `json:"job_title"`
	Status         Status    `json:"status"`
	EmailSubject   string    `json:"email_subject,omitempty"`
	EmailFrom      string    `json:"email_from,omitempty"`
	MessageID      string    `json:"message_id,omitempty"`
	Confidence     float64   `json:"confidence"`
	AnalysisMethod Method    `json:"analysis_method,omitempty"`
	LastAnalyzed   time.Time `json:"last_analyzed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProposedUpdate carries the analysis fields a re-classification may replace
// on a stored job record. Company and title are only applied when present, so
// a weaker extraction never overwrites a previously recorded value.
type ProposedUpdate struct {
	Status         Status
	CompanyName    Optional[string]
	JobTitle       Optional[string]
	Confidence     float64
	AnalysisMethod Method
	LastAnalyzed   time.Time
}

// BatchResult summarizes a recategorization run. A batch never aborts because
// one record failed; failures are accumulated per record.
type BatchResult struct {
	Processed int      `json:"processed"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// ImportResult summarizes an email import run.
type ImportResult struct {
	Fetched        int      `json:"fetched"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	SkippedNoise   int      `json:"skipped_noise"`
	SkippedLowConf int      `json:"skipped_low_confidence"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors,omitempty"`
}
