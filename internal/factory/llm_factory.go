package factory

import (
	"fmt"

	"github.com/jobtrail/jobtrail/internal/adapters/bedrock"
	"github.com/jobtrail/jobtrail/internal/adapters/gemini"
	"github.com/jobtrail/jobtrail/internal/adapters/openai"
	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/utils"
	"go.uber.org/zap"
)

// LLMFactory creates LLM classifiers
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClassifier creates a new LLM classifier based on the configuration.
// The "none" provider returns nil, which selects the pure heuristic path.
func (f *LLMFactory) CreateLLMClassifier() (core.LLMClassifier, error) {
	llmConfig := f.cfg.LLM()

	switch llmConfig.Provider {
	case "", "none":
		return nil, nil
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateLLMClassifier()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateLLMClassifier()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateLLMClassifier()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
