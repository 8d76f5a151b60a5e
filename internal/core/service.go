package core

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ClassifierConfig tunes the hybrid classifier. MinAIConfidence is the single
// acceptance threshold for AI results; RetainMinimum is the confidence below
// which a classification should be discarded as noise by the caller.
type ClassifierConfig struct {
	MinAIConfidence float64
	RetainMinimum   float64
}

// ClassifierService is the hybrid email classifier: it attempts the external
// AI classifier when one is configured and falls back to the deterministic
// heuristic pipeline on any failure or low-confidence result. Stateless per
// message; safe for concurrent use.
type ClassifierService struct {
	llm    LLMClassifier
	logger *zap.Logger
	cfg    ClassifierConfig
}

// NewClassifierService creates a new classifier service. llm may be nil, in
// which case every classification takes the heuristic path.
func NewClassifierService(llm LLMClassifier, logger *zap.Logger, cfg ClassifierConfig) *ClassifierService {
	if cfg.MinAIConfidence <= 0 {
		cfg.MinAIConfidence = 0.25
	}
	if cfg.RetainMinimum <= 0 {
		cfg.RetainMinimum = DefaultRetainMinimum
	}
	return &ClassifierService{
		llm:    llm,
		logger: logger,
		cfg:    cfg,
	}
}

// ClassifyEmail classifies one email. It never returns an error: every
// failure mode of the external call degrades to the heuristic path, and
// entirely empty input short-circuits to an insufficient_data result.
func (s *ClassifierService) ClassifyEmail(ctx context.Context, email *EmailRecord) *ClassificationResult {
	if strings.TrimSpace(email.Subject) == "" &&
		strings.TrimSpace(email.From) == "" &&
		strings.TrimSpace(email.Content) == "" {
		return &ClassificationResult{
			Status:     StatusApplied,
			Company:    None[string](),
			JobTitle:   None[string](),
			Confidence: 0,
			Method:     MethodInsufficientData,
			AnalyzedAt: time.Now(),
		}
	}

	if s.llm != nil {
		if result := s.tryAI(ctx, email); result != nil {
			return result
		}
	}

	return s.AnalyzeHeuristically(email)
}

// tryAI runs the external classifier and returns nil when the heuristic
// fallback should run instead.
func (s *ClassifierService) tryAI(ctx context.Context, email *EmailRecord) *ClassificationResult {
	ai, err := s.llm.ClassifyEmail(ctx, email)
	if err != nil {
		s.logger.Warn("AI classification failed, falling back to heuristics",
			zap.Error(err),
			zap.String("subject", email.Subject))
		return nil
	}
	if ai == nil {
		s.logger.Warn("AI classifier returned no result, falling back to heuristics",
			zap.String("subject", email.Subject))
		return nil
	}
	if ai.Confidence < s.cfg.MinAIConfidence {
		s.logger.Debug("AI classification below acceptance threshold",
			zap.Float64("confidence", ai.Confidence),
			zap.Float64("threshold", s.cfg.MinAIConfidence))
		return nil
	}

	return &ClassificationResult{
		Status:     ai.Status,
		Company:    ai.Company,
		JobTitle:   ai.JobTitle,
		Confidence: ai.Confidence,
		Method:     MethodAI,
		ModelUsed:  ai.Model,
		AnalyzedAt: time.Now(),
	}
}

// AnalyzeHeuristically runs the deterministic regex pipeline: normalize,
// extract fields, determine status, score confidence.
func (s *ClassifierService) AnalyzeHeuristically(email *EmailRecord) *ClassificationResult {
	normalized := NormalizeText(email.Content)
	combined := strings.ToLower(email.Subject) + "\n" + normalized

	company := ExtractCompany(email.From, normalized, email.Subject)
	title := ExtractJobTitle(normalized, email.Subject)
	status := DetermineStatus(combined)
	confidence := ScoreConfidence(normalized, email.Subject, email.From, company, title)

	return &ClassificationResult{
		Status:     status,
		Company:    company,
		JobTitle:   title,
		Confidence: confidence,
		Method:     MethodRegex,
		AnalyzedAt: time.Now(),
	}
}

// Retain reports whether a classification is confident enough to keep.
func (s *ClassifierService) Retain(result *ClassificationResult) bool {
	return result.Confidence >= s.cfg.RetainMinimum
}
