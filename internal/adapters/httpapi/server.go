package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobtrail/jobtrail/internal/core"
	"go.uber.org/zap"
)

// Server exposes the classifier, the job store and the batch pipelines over
// HTTP. It implements the Transport interface.
type Server struct {
	app        *fiber.App
	listenAddr string
	logger     *zap.Logger
	svc        *core.ClassifierService
	store      core.JobStore
	importer   *core.Importer
	recat      *core.Recategorizer
}

// NewServer creates a new HTTP server
func NewServer(
	listenAddr string,
	logger *zap.Logger,
	svc *core.ClassifierService,
	store core.JobStore,
	importer *core.Importer,
	recat *core.Recategorizer,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "jobtrail",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	s := &Server{
		app:        app,
		listenAddr: listenAddr,
		logger:     logger,
		svc:        svc,
		store:      store,
		importer:   importer,
		recat:      recat,
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/classify", s.handleClassify)
	api.Get("/jobs", s.handleListJobs)
	api.Get("/jobs/:id", s.handleGetJob)
	api.Post("/jobs/import", s.handleImport)
	api.Post("/jobs/recategorize", s.handleRecategorize)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.app.Listen(s.listenAddr); err != nil {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}
