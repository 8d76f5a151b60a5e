package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobtrail/jobtrail/internal/core"
	"go.uber.org/zap"
)

type classifyRequest struct {
	Subject   string `json:"subject"`
	From      string `json:"from"`
	Content   string `json:"content"`
	MessageID string `json:"message_id"`
}

// classifyResponse pairs a classification with the server-side retain
// verdict, so API consumers never need to know the configured threshold.
type classifyResponse struct {
	*core.ClassificationResult
	Retained bool `json:"retained"`
}

type recategorizeRequest struct {
	Owner string `json:"owner"`
	Force bool   `json:"force"`
}

type importRequest struct {
	Owner    string `json:"owner"`
	Lookback string `json:"lookback"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleClassify classifies a single email without persisting anything.
func (s *Server) handleClassify(c *fiber.Ctx) error {
	var req classifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	email := &core.EmailRecord{
		Subject:   req.Subject,
		From:      req.From,
		Content:   req.Content,
		MessageID: req.MessageID,
	}
	result := s.svc.ClassifyEmail(c.Context(), email)

	return c.JSON(classifyResponse{
		ClassificationResult: result,
		Retained:             s.svc.Retain(result),
	})
}

func (s *Server) handleListJobs(c *fiber.Ctx) error {
	owner := c.Query("owner")
	if owner == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "owner query parameter is required"})
	}

	jobs, err := s.store.ListJobs(c.Context(), owner)
	if err != nil {
		s.logger.Error("Failed to list jobs", zap.Error(err), zap.String("owner", owner))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to list jobs"})
	}
	if jobs == nil {
		jobs = []*core.JobRecord{}
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

func (s *Server) handleGetJob(c *fiber.Ctx) error {
	job, err := s.store.GetJob(c.Context(), c.Params("id"))
	if err == core.ErrJobNotFound {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "job not found"})
	}
	if err != nil {
		s.logger.Error("Failed to get job", zap.Error(err), zap.String("id", c.Params("id")))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to get job"})
	}

	return c.JSON(job)
}

// handleImport runs a bulk import from the configured email source.
func (s *Server) handleImport(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}
	if req.Owner == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "owner is required"})
	}

	since := time.Time{}
	if req.Lookback != "" {
		d, err := time.ParseDuration(req.Lookback)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid lookback duration"})
		}
		since = time.Now().Add(-d)
	}

	result, err := s.importer.Run(c.Context(), req.Owner, since)
	if err != nil {
		s.logger.Error("Import failed", zap.Error(err), zap.String("owner", req.Owner))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
	}

	return c.JSON(result)
}

// handleRecategorize re-runs classification over an owner's stored records.
func (s *Server) handleRecategorize(c *fiber.Ctx) error {
	var req recategorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}
	if req.Owner == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "owner is required"})
	}

	result, err := s.recat.Run(c.Context(), req.Owner, req.Force)
	if err != nil {
		s.logger.Error("Recategorization failed", zap.Error(err), zap.String("owner", req.Owner))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
	}

	return c.JSON(result)
}
