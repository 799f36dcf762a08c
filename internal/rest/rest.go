package rest

import (
	"errors"
	"net/http"

	"dealsHub/internal/apperror"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// writeError maps a service error to the HTTP status for its kind. Storage
// and connectivity failures stay opaque to the client.
func writeError(c echo.Context, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperror.KindValidation:
			return c.JSON(http.StatusBadRequest, ResponseError{Message: appErr.Msg})
		case apperror.KindNotFound:
			return c.JSON(http.StatusNotFound, ResponseError{Message: appErr.Msg})
		case apperror.KindDuplicate, apperror.KindConflict:
			return c.JSON(http.StatusConflict, ResponseError{Message: appErr.Msg})
		}
	}

	return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
}
