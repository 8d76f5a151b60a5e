package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/adapters/ingest"
	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/factory"
	"github.com/jobtrail/jobtrail/internal/logging"
	"github.com/jobtrail/jobtrail/internal/ports"
	"github.com/jobtrail/jobtrail/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTransportFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register LLM classifier
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClassifier, error) {
		return f.CreateLLMClassifier()
	}); err != nil {
		return nil, err
	}

	// Register job store
	if err := container.Provide(func(f *factory.StoreFactory) (core.JobStore, error) {
		return f.CreateJobStore()
	}); err != nil {
		return nil, err
	}

	// Register classifier thresholds
	if err := container.Provide(func(cfg *config.Config) core.ClassifierConfig {
		return core.ClassifierConfig{
			MinAIConfidence: cfg.LLM().MinAIConfidence,
			RetainMinimum:   cfg.Classifier().RetainThreshold,
		}
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(core.NewClassifierService); err != nil {
		return nil, err
	}

	// Register email source; a nil source disables bulk imports
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.EmailSource, error) {
		ingestCfg, err := cfg.Ingest()
		if err != nil {
			return nil, err
		}
		if ingestCfg.Maildir == "" {
			return nil, nil
		}
		return ingest.NewMaildirSource(ingestCfg.Maildir, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register importer
	if err := container.Provide(core.NewImporter); err != nil {
		return nil, err
	}

	// Register batch recategorizer
	if err := container.Provide(func(
		cfg *config.Config,
		store core.JobStore,
		svc *core.ClassifierService,
		logger *zap.Logger,
	) (*core.Recategorizer, error) {
		batchCfg, err := cfg.Batch()
		if err != nil {
			return nil, err
		}
		return core.NewRecategorizer(store, svc, logger, batchCfg.StaleAfter, batchCfg.AIDelay), nil
	}); err != nil {
		return nil, err
	}

	// Register transports
	if err := container.Provide(func(f *factory.TransportFactory) ([]ports.Transport, error) {
		return f.CreateTransports()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
