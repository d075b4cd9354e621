package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/SagarNunugonda/lendwise/internal/infrastructure/metrics"
)

func Test_Requests_CountsByRouteAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	e := echo.New()
	e.HideBanner = true
	e.Use(Requests(m))
	e.GET("/api/loans", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/loans", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	// A miss on an unregistered path still gets counted under its raw path.
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/api/loans", "200"))
	if got != 3 {
		t.Fatalf("requests_total{/api/loans,200} = %v, want 3", got)
	}
}
