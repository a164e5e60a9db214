package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/internal/middleware"
	"github.com/tradewell/storefront/internal/service"
	"github.com/tradewell/storefront/pkg/response"
	"github.com/tradewell/storefront/pkg/utils"
)

type QuoteController struct {
	service service.QuoteService
}

func CreateQuoteController(e *echo.Group, service service.QuoteService, isLoggedIn echo.MiddlewareFunc, maybeLoggedIn echo.MiddlewareFunc) {
	c := QuoteController{
		service: service,
	}

	e.POST("/quotes", c.CreateQuote, maybeLoggedIn)

	e.GET("/admin/quotes", c.GetQuotes, isLoggedIn, middleware.RequireAdmin)
	e.GET("/admin/quote/:id", c.GetQuoteByID, isLoggedIn, middleware.RequireAdmin)
	e.PUT("/admin/quote/:id", c.UpdateQuoteStatus, isLoggedIn, middleware.RequireAdmin)
	e.DELETE("/admin/quote/:id", c.DeleteQuote, isLoggedIn, middleware.RequireAdmin)
}

func (c *QuoteController) CreateQuote(e echo.Context) error {
	// Anonymous submissions are allowed; userID stays empty without a
	// session.
	userID, _, _ := utils.ExtractTokenUser(e)

	payload := dto.QuoteRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateQuote").Msg("")
	}

	quote, err := c.service.CreateQuote(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "quote request received", quote)
}

func (c *QuoteController) GetQuotes(e echo.Context) error {
	filter := dto.QuoteFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetQuotes").Msg("")
	}

	responsePayload, err := c.service.GetQuotes(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved quotes record", responsePayload)
}

func (c *QuoteController) GetQuoteByID(e echo.Context) error {
	quote, err := c.service.GetQuoteByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", quote)
}

func (c *QuoteController) UpdateQuoteStatus(e echo.Context) error {
	payload := dto.UpdateQuoteStatusRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateQuoteStatus").Msg("")
	}

	quote, err := c.service.UpdateQuoteStatus(e.Request().Context(), e.Param("id"), payload.Status)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "quote updated", quote)
}

func (c *QuoteController) DeleteQuote(e echo.Context) error {
	err := c.service.DeleteQuote(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "quote deleted", nil)
}
