package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/tradewell/storefront/pkg/errs"
)

func CreateJWTToken(userID string, userName string, role string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["role"] = role
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

// CreatePendingRegistrationToken carries an OAuth callback's identity claim
// to the registration-completion request without server-side session state.
func CreatePendingRegistrationToken(name string, email string, provider string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["name"] = name
	claims["email"] = email
	claims["provider"] = provider
	claims["purpose"] = "pending_registration"
	claims["exp"] = time.Now().Add(time.Minute * 10).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

func ParsePendingRegistrationToken(tokenString string, jwtSecretKey string) (name string, email string, provider string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrNotLoggedIn
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", "", "", errs.ErrTokenExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != "pending_registration" {
		return "", "", "", errs.ErrTokenExpired
	}

	name, _ = claims["name"].(string)
	email, _ = claims["email"].(string)
	provider, _ = claims["provider"].(string)

	return name, email, provider, nil
}

func ExtractTokenUser(c echo.Context) (userID string, userName string, role string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return "", "", ""
	}

	claims := user.Claims.(jwt.MapClaims)
	userID, _ = claims["userID"].(string)
	userName, _ = claims["name"].(string)
	role, _ = claims["role"].(string)

	return userID, userName, role
}
