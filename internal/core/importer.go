package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportOutcome describes what happened to one imported email.
type ImportOutcome int

const (
	ImportCreated ImportOutcome = iota
	ImportUpdated
	ImportSkippedNoise
	ImportSkippedLowConfidence
)

// Importer runs the full pipeline over emails from an EmailSource and
// persists the derived fields: noise filter, hybrid classification, dedup by
// message id, then create or update. The raw email is not stored verbatim.
type Importer struct {
	source EmailSource
	store  JobStore
	svc    *ClassifierService
	logger *zap.Logger
}

// NewImporter creates an importer. source may be nil when the host only
// ingests via SMTP or the HTTP API.
func NewImporter(source EmailSource, store JobStore, svc *ClassifierService, logger *zap.Logger) *Importer {
	return &Importer{
		source: source,
		store:  store,
		svc:    svc,
		logger: logger,
	}
}

// Run fetches emails for the lookback window and imports each one. Per-email
// failures are recorded and the run continues.
func (im *Importer) Run(ctx context.Context, owner string, since time.Time) (*ImportResult, error) {
	if im.source == nil {
		return nil, fmt.Errorf("no email source configured")
	}

	emails, err := im.source.FetchEmails(ctx, owner, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emails: %w", err)
	}

	result := &ImportResult{Fetched: len(emails)}
	for _, email := range emails {
		if ctx.Err() != nil {
			break
		}
		outcome, err := im.ImportOne(ctx, owner, email)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", email.Subject, err))
			continue
		}
		switch outcome {
		case ImportCreated:
			result.Created++
		case ImportUpdated:
			result.Updated++
		case ImportSkippedNoise:
			result.SkippedNoise++
		case ImportSkippedLowConfidence:
			result.SkippedLowConf++
		}
	}

	im.logger.Info("Email import finished",
		zap.String("owner", owner),
		zap.Int("fetched", result.Fetched),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped_noise", result.SkippedNoise),
		zap.Int("failed", result.Failed))

	return result, nil
}

// ImportOne classifies a single email and persists the result. Used by both
// the batch import and the SMTP ingest path.
func (im *Importer) ImportOne(ctx context.Context, owner string, email *EmailRecord) (ImportOutcome, error) {
	normalized := NormalizeText(email.Content)
	if !IsJobRelated(normalized, email.From, email.Subject) {
		return ImportSkippedNoise, nil
	}

	res := im.svc.ClassifyEmail(ctx, email)
	if !im.svc.Retain(res) {
		return ImportSkippedLowConfidence, nil
	}

	if email.MessageID != "" {
		existing, err := im.store.FindByMessageID(ctx, owner, email.MessageID)
		if err != nil && err != ErrJobNotFound {
			return 0, err
		}
		if existing != nil {
			upd := ProposedUpdate{
				Status:         res.Status,
				CompanyName:    res.Company,
				JobTitle:       res.JobTitle,
				Confidence:     res.Confidence,
				AnalysisMethod: res.Method,
				LastAnalyzed:   time.Now(),
			}
			if err := im.store.UpdateAnalysis(ctx, existing.ID, upd); err != nil {
				return 0, err
			}
			return ImportUpdated, nil
		}
	}

	now := time.Now()
	job := &JobRecord{
		ID:    uuid.NewString(),
		Owner: owner,
		// Placeholder belongs at the presentation boundary, which record
		// creation is; the extractors themselves only ever return None.
		CompanyName:    res.Company.OrElse("Unknown Company"),
		JobTitle:       res.JobTitle.OrElse(""),
		Status:         res.Status,
		EmailSubject:   email.Subject,
		EmailFrom:      email.From,
		MessageID:      email.MessageID,
		Confidence:     res.Confidence,
		AnalysisMethod: res.Method,
		LastAnalyzed:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := im.store.CreateJob(ctx, job); err != nil {
		return 0, err
	}
	return ImportCreated, nil
}
