package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"botfolio/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string, err interface{}) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
		Error:   err,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message, nil)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, message, nil)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, message string, err error) error {
	if err != nil {
		logrus.WithError(err).WithField("path", c.Request().URL.Path).Error("Internal server error")
	}
	return ErrorResponse(c, http.StatusInternalServerError, message, nil)
}

// DomainErrorResponse maps business-rule errors to their status codes.
// Anything outside the taxonomy is an internal error.
func DomainErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return BadRequestResponse(c, "Invalid amount")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return BadRequestResponse(c, "Insufficient funds")
	case errors.Is(err, domain.ErrTransactionNotPending):
		return BadRequestResponse(c, "Transaction is not pending")
	case errors.Is(err, domain.ErrUsernameTaken):
		return BadRequestResponse(c, "Username already taken")
	case errors.Is(err, domain.ErrBotNotFound):
		return NotFoundResponse(c, "Bot not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NotFoundResponse(c, "Transaction not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return NotFoundResponse(c, "User not found")
	case errors.Is(err, domain.ErrWalletNotFound):
		return NotFoundResponse(c, "Wallet not found")
	default:
		return InternalServerErrorResponse(c, "Internal server error", err)
	}
}
