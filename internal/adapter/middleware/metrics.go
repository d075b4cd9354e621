package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SagarNunugonda/lendwise/internal/infrastructure/metrics"
)

// Requests counts every handled request by route template and status code.
func Requests(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			m.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Response().Status)).Inc()
			return nil
		}
	}
}
