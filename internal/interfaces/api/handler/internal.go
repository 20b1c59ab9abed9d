package handler

import (
	"fmt"
	"net/http"

	"farmatime/internal/application/dto"
	"farmatime/internal/application/service"
	"farmatime/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// InternalHandler exposes the worker-triggered endpoints.
type InternalHandler struct {
	runner service.RunnerService
	log    logger.Logger
}

// NewInternalHandler creates a new InternalHandler.
func NewInternalHandler(runner service.RunnerService, log logger.Logger) *InternalHandler {
	return &InternalHandler{
		runner: runner,
		log:    log,
	}
}

// RunJobs executes one reminder run. The external cron worker fires this at
// most once per minute; same-day idempotence makes re-firing safe.
func (h *InternalHandler) RunJobs(c echo.Context) error {
	report, err := h.runner.RunJobs(c.Request().Context())
	if err != nil {
		h.log.Error("Reminder run failed", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":   true,
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, dto.RunJobsResponse{
		Message: fmt.Sprintf("Processed all users jobs, sent %d medicine request(s).", report.RequestsSent),
	})
}
