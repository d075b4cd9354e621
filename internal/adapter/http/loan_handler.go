package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domain "github.com/SagarNunugonda/lendwise/internal/domain/loan"
	uc "github.com/SagarNunugonda/lendwise/internal/usecase/loan"
)

type LoanHandler struct{ uc *uc.Usecase }

func NewLoanHandler(u *uc.Usecase) *LoanHandler { return &LoanHandler{uc: u} }

// Register wires the loan routes under g (usually the /api group).
func (h *LoanHandler) Register(g *echo.Group) {
	g.GET("/loans", h.List)
	g.POST("/loans", h.Create)
	g.PUT("/loans/:id", h.Update)
	g.DELETE("/loans/:id", h.Delete)
	g.POST("/loans/:id/remind", h.Remind)
}

func (h *LoanHandler) List(c echo.Context) error {
	loans, err := h.uc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list loans"})
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) Create(c echo.Context) error {
	var in domain.Loan
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	created, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *LoanHandler) Update(c echo.Context) error {
	var p domain.Patch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	updated, err := h.uc.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *LoanHandler) Delete(c echo.Context) error {
	loanID := c.Param("id")
	if err := h.uc.Delete(c.Request().Context(), loanID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{
				"success": false,
				"error":   "Loan not found",
			})
		}
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Loan deleted successfully",
		"deletedId": loanID,
	})
}

func (h *LoanHandler) Remind(c echo.Context) error {
	msg, err := h.uc.Remind(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": msg})
}
