package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SagarNunugonda/lendwise/internal/apperrors"
	domain "github.com/SagarNunugonda/lendwise/internal/domain/loan"
)

// writeError maps usecase errors onto the wire shapes the dashboard expects.
func writeError(c echo.Context, err error) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": ve.Error(),
			"field": ve.Field,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Loan not found"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
