package middleware

import (
	"errors"
	"net/http"

	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"

	jsonres "dealsHub/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the global echo error handler. It maps typed errors to
// HTTP statuses and never leaks storage details to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "Internal server error"

	var appErr *apperror.Error
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &appErr):
		switch appErr.Kind {
		case apperror.KindValidation:
			status, code, message = http.StatusBadRequest, "BAD_REQUEST", appErr.Msg
		case apperror.KindNotFound:
			status, code, message = http.StatusNotFound, "NOT_FOUND", appErr.Msg
		case apperror.KindDuplicate:
			status, code, message = http.StatusConflict, "DUPLICATE", appErr.Msg
		case apperror.KindConflict:
			status, code, message = http.StatusConflict, "CONFLICT", appErr.Msg
		default:
			// storage, connectivity and configuration stay opaque
			logger.Error("Request failed", err)
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		code = http.StatusText(status)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	default:
		logger.Error("Unhandled request error", err)
	}

	if err := c.JSON(status, jsonres.Error(code, message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
