package controller

import (
	"github.com/labstack/echo/v4"

	"github.com/tradewell/storefront/internal/middleware"
	"github.com/tradewell/storefront/internal/service"
	"github.com/tradewell/storefront/pkg/response"
)

type NotificationController struct {
	service service.NotificationService
}

func CreateNotificationController(e *echo.Group, service service.NotificationService, isLoggedIn echo.MiddlewareFunc) {
	c := NotificationController{
		service: service,
	}

	e.GET("/admin/notifications", c.GetNotifications, isLoggedIn, middleware.RequireAdmin)
}

func (c *NotificationController) GetNotifications(e echo.Context) error {
	responsePayload, err := c.service.GetNotifications(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved notifications record", responsePayload)
}
