package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/pkg/errs"
	"github.com/tradewell/storefront/pkg/response"
)

// CreateAuthMiddleware validates the bearer token and stashes the parsed
// token under "user" for utils.ExtractTokenUser.
func CreateAuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errs.ErrNotLoggedIn
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			c.Set("user", token)

			return next(c)
		}
	}
}

// CreateOptionalAuthMiddleware parses a bearer token when one is present
// but lets anonymous requests through. Used by routes like quote
// submission that accept both.
func CreateOptionalAuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return next(c)
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errs.ErrNotLoggedIn
				}
				return []byte(jwtSecret), nil
			})
			if err == nil && token.Valid {
				c.Set("user", token)
			}

			return next(c)
		}
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok || !token.Valid {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != domain.RoleAdmin {
			return response.WriteErrorResponse(c, errs.ErrUnauthorized, nil)
		}

		return next(c)
	}
}
