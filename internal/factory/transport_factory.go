package factory

import (
	"github.com/jobtrail/jobtrail/internal/adapters/httpapi"
	"github.com/jobtrail/jobtrail/internal/adapters/ingest"
	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/ports"
	"go.uber.org/zap"
)

// TransportFactory creates the enabled server transports
type TransportFactory struct {
	cfg      *config.Config
	logger   *zap.Logger
	svc      *core.ClassifierService
	store    core.JobStore
	importer *core.Importer
	recat    *core.Recategorizer
}

// NewTransportFactory creates a new transport factory
func NewTransportFactory(
	cfg *config.Config,
	logger *zap.Logger,
	svc *core.ClassifierService,
	store core.JobStore,
	importer *core.Importer,
	recat *core.Recategorizer,
) *TransportFactory {
	return &TransportFactory{
		cfg:      cfg,
		logger:   logger,
		svc:      svc,
		store:    store,
		importer: importer,
		recat:    recat,
	}
}

// CreateTransports creates every transport enabled in the configuration
func (f *TransportFactory) CreateTransports() ([]ports.Transport, error) {
	serverCfg := f.cfg.Server()
	ingestCfg, err := f.cfg.Ingest()
	if err != nil {
		return nil, err
	}

	var transports []ports.Transport

	if serverCfg.HTTPEnabled {
		transports = append(transports, httpapi.NewServer(
			serverCfg.HTTPAddress,
			f.logger,
			f.svc,
			f.store,
			f.importer,
			f.recat,
		))
	}

	if serverCfg.SMTPEnabled {
		transports = append(transports, ingest.NewSMTPIngest(
			f.importer,
			f.logger,
			serverCfg.SMTPAddress,
			serverCfg.SMTPDomain,
			serverCfg.SMTPMaxMessageBytes,
			ingestCfg.DefaultOwner,
		))
	}

	return transports, nil
}
