package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrUnauthorized            = errors.New("Forbidden access")
	ErrNotFound                = errors.New("Resource not found")
	ErrAccountNotFound         = errors.New("Account not found")
	ErrEmailAlreadyUsed        = errors.New("Email has already been used")
	ErrTokenExpired            = errors.New("The token is already expired")
	ErrConflict                = errors.New("Conflicting record found")
	ErrInsufficientStock       = errors.New("Not enough stock left for the requested quantity")
	ErrInvalidTrackingStatus   = errors.New("Tracking status is not a recognized value")
	ErrOrderAlreadyFinal       = errors.New("Order has already reached a terminal status")
	ErrInvalidQuoteStatus      = errors.New("Quote status is not a recognized value")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrUnauthorized:            ErrStatusNoPermission,
	ErrNotFound:                ErrStatusNotFound,
	ErrAccountNotFound:         ErrStatusNotFound,
	ErrEmailAlreadyUsed:        ErrStatusClient,
	ErrTokenExpired:            ErrStatusUnauthorized,
	ErrConflict:                ErrStatusConflict,
	ErrInsufficientStock:       ErrStatusConflict,
	ErrInvalidTrackingStatus:   ErrStatusClient,
	ErrOrderAlreadyFinal:       ErrStatusClient,
	ErrInvalidQuoteStatus:      ErrStatusClient,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
