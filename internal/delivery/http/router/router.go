// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"chime/internal/delivery/http/middleware"
	"chime/internal/delivery/http/router/handler"
	"chime/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	DeviceHandler   *handler.DeviceHandler
	ReminderHandler *handler.ReminderHandler
	DispatchHandler *handler.DispatchHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	deviceHandler   *handler.DeviceHandler
	reminderHandler *handler.ReminderHandler
	dispatchHandler *handler.DispatchHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		deviceHandler:   params.DeviceHandler,
		reminderHandler: params.ReminderHandler,
		dispatchHandler: params.DispatchHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Device directory of the caller
	deviceGroup := e.Group("/notifications/devices")
	deviceGroup.Use(r.authMiddleware.Authenticate)
	{
		deviceGroup.POST("", r.deviceHandler.RegisterDevice)
		deviceGroup.GET("", r.deviceHandler.ListDevices)
		deviceGroup.PATCH("/:token", r.deviceHandler.UpdateDevice)
		deviceGroup.DELETE("/:token", r.deviceHandler.UnregisterDevice)
	}

	taskGroup := e.Group("/tasks")
	taskGroup.Use(r.authMiddleware.Authenticate)
	{
		taskGroup.GET("/:taskID/reminders", r.reminderHandler.ListReminders)
		taskGroup.PUT("/:taskID/reminders", r.reminderHandler.ReplaceReminders)
	}

	// On-demand dispatch is restricted to operators
	adminGroup := e.Group("/notifications")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/dispatch", r.dispatchHandler.DispatchDue)
	}
}
