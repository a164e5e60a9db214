package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/internal/middleware"
	"github.com/tradewell/storefront/internal/service"
	pkgdto "github.com/tradewell/storefront/pkg/dto"
	"github.com/tradewell/storefront/pkg/response"
	"github.com/tradewell/storefront/pkg/utils"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	e.POST("/order/new", c.AddOrder, isLoggedIn)
	e.GET("/order/:id", c.GetOrderByID, isLoggedIn)
	e.GET("/orders/me", c.GetMyOrders, isLoggedIn)
	e.POST("/order/:id/tracking", c.AddTrackingEvent, isLoggedIn, middleware.RequireAdmin)
	e.POST("/orders/payments/notifications", c.MidtransPaymentWebhook)

	e.GET("/admin/orders", c.GetOrders, isLoggedIn, middleware.RequireAdmin)
	e.GET("/admin/orders/search", c.SearchOrders, isLoggedIn, middleware.RequireAdmin)
	e.PUT("/admin/order/:id", c.UpdateOrderStatus, isLoggedIn, middleware.RequireAdmin)
	e.DELETE("/admin/order/:id", c.DeleteOrder, isLoggedIn, middleware.RequireAdmin)
}

func (c *OrderController) AddOrder(e echo.Context) error {
	userID, _, _ := utils.ExtractTokenUser(e)

	payload := dto.OrderRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
	}

	order, err := c.service.CreateOrder(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "order placed", dto.OrderResponse{Order: order})
}

func (c *OrderController) GetOrderByID(e echo.Context) error {
	order, err := c.service.GetOrderByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", dto.OrderResponse{Order: order})
}

func (c *OrderController) GetMyOrders(e echo.Context) error {
	userID, _, _ := utils.ExtractTokenUser(e)

	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetMyOrders").Msg("")
	}

	responsePayload, err := c.service.GetMyOrders(e.Request().Context(), userID, filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved orders record", responsePayload)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	filter := dto.OrderFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
	}

	responsePayload, err := c.service.SearchOrders(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved orders record", responsePayload)
}

func (c *OrderController) SearchOrders(e echo.Context) error {
	filter := dto.OrderFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "SearchOrders").Msg("")
	}

	responsePayload, err := c.service.SearchOrders(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved orders record", responsePayload)
}

func (c *OrderController) UpdateOrderStatus(e echo.Context) error {
	payload := dto.UpdateOrderStatusRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
	}

	order, err := c.service.UpdateOrderStatus(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "order updated", dto.OrderResponse{Order: order})
}

func (c *OrderController) AddTrackingEvent(e echo.Context) error {
	payload := dto.TrackingEventRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddTrackingEvent").Msg("")
	}

	order, err := c.service.AddTrackingEvent(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "tracking event recorded", dto.OrderResponse{Order: order})
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	err := c.service.DeleteOrder(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "order deleted", nil)
}

func (c *OrderController) MidtransPaymentWebhook(e echo.Context) error {
	payload := dto.PaymentNotification{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "MidtransPaymentWebhook").Msg("")
	}

	err = c.service.MidtransPaymentWebhook(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
