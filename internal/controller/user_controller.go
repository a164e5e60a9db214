package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/internal/service"
	"github.com/tradewell/storefront/pkg/response"
	"github.com/tradewell/storefront/pkg/utils"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService, isLoggedIn echo.MiddlewareFunc) {
	c := UserController{
		service: service,
	}

	e.POST("/users", c.Register)
	e.POST("/users/login", c.Login)
	e.POST("/users/oauth/complete", c.CompleteOAuthRegistration)
	e.POST("/users/password/forgot", c.ForgotPassword)
	e.POST("/users/password/reset", c.ResetPassword)
	e.GET("/users/me", c.GetMe, isLoggedIn)
	e.POST("/users/me/addresses", c.AddAddress, isLoggedIn)
	e.DELETE("/users/me/addresses/:id", c.DeleteAddress, isLoggedIn)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.UserRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
	}

	err = c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "account created", nil)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	responsePayload, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", responsePayload)
}

func (c *UserController) CompleteOAuthRegistration(e echo.Context) error {
	payload := dto.CompleteOAuthRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CompleteOAuthRegistration").Msg("")
	}

	responsePayload, err := c.service.CompleteOAuthRegistration(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "account created", responsePayload)
}

func (c *UserController) ForgotPassword(e echo.Context) error {
	payload := dto.ForgotPasswordRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "ForgotPassword").Msg("")
	}

	err = c.service.ForgotPassword(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "if the account exists, a reset link has been sent", nil)
}

func (c *UserController) ResetPassword(e echo.Context) error {
	payload := dto.ResetPasswordRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "ResetPassword").Msg("")
	}

	err = c.service.ResetPassword(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "password updated", nil)
}

func (c *UserController) GetMe(e echo.Context) error {
	userID, _, _ := utils.ExtractTokenUser(e)

	user, err := c.service.GetUserByID(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", user)
}

func (c *UserController) AddAddress(e echo.Context) error {
	userID, _, _ := utils.ExtractTokenUser(e)

	payload := dto.AddressRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddAddress").Msg("")
	}

	user, err := c.service.AddAddress(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "address saved", user)
}

func (c *UserController) DeleteAddress(e echo.Context) error {
	userID, _, _ := utils.ExtractTokenUser(e)

	user, err := c.service.DeleteAddress(e.Request().Context(), userID, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "address removed", user)
}
