package gemini

import (
	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of GeminiClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClassifier creates a new GeminiClient
func (f *Factory) CreateLLMClassifier() (core.LLMClassifier, error) {
	geminiCfg := f.cfg.Gemini()

	return NewGeminiClient(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		float32(geminiCfg.Temperature),
		float32(geminiCfg.TopP),
		geminiCfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	)
}
