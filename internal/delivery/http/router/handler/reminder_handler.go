package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"chime/internal/delivery/http/middleware"
	"chime/internal/delivery/http/response"
	"chime/internal/delivery/http/validator"
	"chime/internal/usecase"
)

// maxRemindersPerTask bounds a single replacement payload.
const maxRemindersPerTask = 50

// ReminderHandlerParams holds dependencies for ReminderHandler, injected by Fx.
type ReminderHandlerParams struct {
	fx.In

	ReminderUC usecase.ReminderUsecase
	Logger     *slog.Logger
}

// ReminderHandler serves the reminders of a task.
type ReminderHandler struct {
	reminderUC usecase.ReminderUsecase
	logger     *slog.Logger
}

// NewReminderHandler is the constructor for ReminderHandler
func NewReminderHandler(params ReminderHandlerParams) *ReminderHandler {
	return &ReminderHandler{
		reminderUC: params.ReminderUC,
		logger:     params.Logger,
	}
}

// ListReminders handles retrieving the reminders of a task
func (h *ReminderHandler) ListReminders(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	taskID, err := uuid.Parse(c.Param("taskID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid task ID")
	}

	reminders, err := h.reminderUC.ListTaskReminders(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, reminders)
}

// ReplaceReminders handles replacing the reminder set of a task. The body is a JSON array.
func (h *ReminderHandler) ReplaceReminders(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	taskID, err := uuid.Parse(c.Param("taskID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid task ID")
	}

	var req []usecase.ReminderInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reminder input")
	}

	if len(req) > maxRemindersPerTask {
		return response.BadRequest(c, "VALIDATION_FAILED", "too many reminders, at most "+strconv.Itoa(maxRemindersPerTask)+" are allowed")
	}

	for i := range req {
		if err := c.Validate(&req[i]); err != nil {
			return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "input validation failed", map[string]any{
				"index":  i,
				"fields": validator.FieldErrors(err),
			})
		}
	}

	reminders, err := h.reminderUC.ReplaceTaskReminders(c.Request().Context(), userID, taskID, req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, reminders)
}
