package handler

import (
	"net/http"

	"farmatime/internal/application/dto"
	"farmatime/internal/application/service"
	"farmatime/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestHandler exposes sent-request record endpoints.
type RequestHandler struct {
	requests service.RequestService
	users    service.UserService
	log      logger.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requests service.RequestService, users service.UserService, log logger.Logger) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		users:    users,
		log:      log,
	}
}

// List returns the request records, optionally filtered by userId.
func (h *RequestHandler) List(c echo.Context) error {
	records, err := h.requests.ListRequests(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": records})
}

// Check reports whether a user may add more medicine requests.
func (h *RequestHandler) Check(c echo.Context) error {
	var req dto.CheckJobRequestsRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}
	if req.UserID == "" {
		return c.JSON(http.StatusOK, map[string]any{
			"error":   true,
			"message": "User id is required",
		})
	}
	result, err := h.users.CheckJobRequests(c.Request().Context(), req.UserID, req.Medicines)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
