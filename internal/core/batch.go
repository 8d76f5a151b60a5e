package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Recategorizer re-runs the classification pipeline over previously imported
// job records. Records are processed sequentially; a fixed delay follows each
// record that took the AI path to respect upstream rate limits.
type Recategorizer struct {
	store      JobStore
	svc        *ClassifierService
	logger     *zap.Logger
	staleAfter time.Duration
	aiDelay    time.Duration
}

// NewRecategorizer creates a batch recategorizer. staleAfter gates records
// analyzed recently; aiDelay throttles consecutive AI calls.
func NewRecategorizer(
	store JobStore,
	svc *ClassifierService,
	logger *zap.Logger,
	staleAfter time.Duration,
	aiDelay time.Duration,
) *Recategorizer {
	if staleAfter <= 0 {
		staleAfter = 7 * 24 * time.Hour
	}
	return &Recategorizer{
		store:      store,
		svc:        svc,
		logger:     logger,
		staleAfter: staleAfter,
		aiDelay:    aiDelay,
	}
}

// Run recategorizes every record for an owner. Records analyzed within the
// staleness window are skipped unless force is set. Per-record store failures
// are recorded and processing continues; cancellation stops issuing further
// updates and returns the partial result. Already-applied updates are never
// rolled back.
func (r *Recategorizer) Run(ctx context.Context, owner string, force bool) (*BatchResult, error) {
	records, err := r.store.ListJobs(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}

	result := &BatchResult{}
	for _, rec := range records {
		if ctx.Err() != nil {
			r.logger.Info("Recategorization cancelled",
				zap.Int("processed", result.Processed),
				zap.Int("remaining", len(records)-result.Processed))
			break
		}

		if !force && !rec.LastAnalyzed.IsZero() && time.Since(rec.LastAnalyzed) < r.staleAfter {
			result.Skipped++
			continue
		}

		email := &EmailRecord{
			Subject: rec.EmailSubject,
			From:    rec.EmailFrom,
		}
		res := r.svc.ClassifyEmail(ctx, email)
		if res.Method == MethodInsufficientData {
			result.Skipped++
			continue
		}
		result.Processed++

		upd := ProposedUpdate{
			Status:         res.Status,
			CompanyName:    res.Company,
			JobTitle:       res.JobTitle,
			Confidence:     res.Confidence,
			AnalysisMethod: res.Method,
			LastAnalyzed:   time.Now(),
		}
		if err := r.store.UpdateAnalysis(ctx, rec.ID, upd); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rec.ID, err))
			r.logger.Error("Failed to update job record",
				zap.String("job_id", rec.ID),
				zap.Error(err))
		} else {
			result.Updated++
		}

		if res.Method == MethodAI && r.aiDelay > 0 {
			if err := sleepCtx(ctx, r.aiDelay); err != nil {
				break
			}
		}
	}

	r.logger.Info("Recategorization finished",
		zap.String("owner", owner),
		zap.Int("processed", result.Processed),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
