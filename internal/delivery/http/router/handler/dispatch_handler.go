package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	deliverycontext "chime/internal/delivery/context"
	"chime/internal/usecase"
)

// DispatchHandlerParams holds dependencies for DispatchHandler, injected by Fx.
type DispatchHandlerParams struct {
	fx.In

	DispatchUC usecase.DispatchUsecase
	Logger     *slog.Logger
}

// DispatchHandler triggers reminder dispatch on demand.
type DispatchHandler struct {
	dispatchUC usecase.DispatchUsecase
	logger     *slog.Logger
}

// NewDispatchHandler is the constructor for DispatchHandler
func NewDispatchHandler(params DispatchHandlerParams) *DispatchHandler {
	return &DispatchHandler{
		dispatchUC: params.DispatchUC,
		logger:     params.Logger,
	}
}

// DispatchResult is the body returned by DispatchDue. It is written bare,
// outside the response envelope.
type DispatchResult struct {
	Dispatched int `json:"dispatched"`
}

// DispatchDue runs one dispatch cycle, waiting for a running one first.
// Cycle failures are logged and reported as zero dispatched reminders.
func (h *DispatchHandler) DispatchDue(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := h.dispatchUC.DispatchDue(ctx)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Error("On-demand dispatch failed", slog.Any("error", err))

		return c.JSON(http.StatusOK, DispatchResult{})
	}

	return c.JSON(http.StatusOK, DispatchResult{Dispatched: report.Dispatched})
}
