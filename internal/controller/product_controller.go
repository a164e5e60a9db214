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

type ProductController struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := ProductController{
		service: service,
	}

	e.GET("/products", c.GetProducts)
	e.GET("/product/:id", c.GetProductByID)
	e.PUT("/product/:id/review", c.UpsertReview, isLoggedIn)

	e.POST("/admin/product/new", c.AddProduct, isLoggedIn, middleware.RequireAdmin)
	e.PUT("/admin/product/:id", c.UpdateProduct, isLoggedIn, middleware.RequireAdmin)
	e.DELETE("/admin/product/:id", c.DeleteProduct, isLoggedIn, middleware.RequireAdmin)
	e.DELETE("/admin/product/:id/review/:reviewId", c.DeleteReview, isLoggedIn, middleware.RequireAdmin)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := dto.ProductFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
	}

	responsePayload, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products record", responsePayload)
}

func (c *ProductController) GetProductByID(e echo.Context) error {
	product, err := c.service.GetProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", product)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
	}

	product, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "product created", product)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
	}

	product, err := c.service.UpdateProduct(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product updated", product)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product deleted", nil)
}

func (c *ProductController) UpsertReview(e echo.Context) error {
	userID, userName, _ := utils.ExtractTokenUser(e)

	payload := dto.ReviewRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpsertReview").Msg("")
	}

	product, err := c.service.UpsertReview(e.Request().Context(), e.Param("id"), userID, userName, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "review saved", product)
}

func (c *ProductController) DeleteReview(e echo.Context) error {
	product, err := c.service.DeleteReview(e.Request().Context(), e.Param("id"), e.Param("reviewId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "review deleted", product)
}
