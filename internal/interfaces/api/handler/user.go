package handler

import (
	"errors"
	"net/http"

	"farmatime/internal/application/dto"
	"farmatime/internal/application/service"
	appErrors "farmatime/internal/pkg/errors"
	"farmatime/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler exposes user and jobs-blob management endpoints.
type UserHandler struct {
	users service.UserService
	log   logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		log:   log,
	}
}

// Create registers a new user.
func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}
	user, err := h.users.CreateUser(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateJobs replaces a user's jobs list.
func (h *UserHandler) UpdateJobs(c echo.Context) error {
	var req dto.UpdateJobsRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}
	if err := h.users.UpdateJobs(c.Request().Context(), c.Param("id"), req.Jobs); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Jobs updated."})
}

// GetJobs returns a user's decrypted jobs list.
func (h *UserHandler) GetJobs(c echo.Context) error {
	jobs, err := h.users.GetJobs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.JobsResponse{Jobs: jobs})
}

func errorJSON(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]any{
		"error":   true,
		"message": err.Error(),
	})
}

func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appErrors.ErrUserNotFound), errors.Is(err, appErrors.ErrRequestNotFound):
		return errorJSON(c, http.StatusNotFound, err)
	case errors.Is(err, appErrors.ErrValidation):
		return errorJSON(c, http.StatusBadRequest, err)
	default:
		return errorJSON(c, http.StatusInternalServerError, err)
	}
}
