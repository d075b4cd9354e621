package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	domain "github.com/SagarNunugonda/lendwise/internal/domain/loan"
	"github.com/SagarNunugonda/lendwise/internal/testutil/loanmock"
	uc "github.com/SagarNunugonda/lendwise/internal/usecase/loan"
)

// -------- helpers --------

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newHandler(repo *loanmock.Repo) *LoanHandler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewLoanHandler(uc.NewUsecase(repo, &loanmock.Notifier{}, log))
}

func validBody() map[string]any {
	return map[string]any{
		"borrowerName":   "Asha",
		"phoneNumber":    "9876543210",
		"address":        "12 Main Rd",
		"principal":      5000,
		"interestMethod": "simple",
		"interestRate":   10,
		"startDate":      "2024-01-01",
		"duration":       6,
	}
}

// -------- tests --------

func TestCreateLoan_Success(t *testing.T) {
	e := echo.New()
	var stored *domain.Loan
	h := newHandler(&loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			stored = l
			return nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", mustJSON(validBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body)
	}
	var got domain.Loan
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Fatalf("server fields missing: %+v", got)
	}
	if got.Status != domain.PaymentUnpaid {
		t.Fatalf("status = %s", got.Status)
	}
	if stored == nil {
		t.Fatal("repo not called")
	}
}

func TestCreateLoan_BadPhoneIs400(t *testing.T) {
	e := echo.New()
	h := newHandler(&loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			t.Fatal("repo must not be called")
			return nil
		},
	})

	body := validBody()
	body["phoneNumber"] = "12345"
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["field"] != "phoneNumber" {
		t.Fatalf("field = %q, body %s", resp["field"], rec.Body)
	}
}

func TestUpdateLoan_MergeAndNotFound(t *testing.T) {
	e := echo.New()
	existing := domain.Loan{
		ID: "1", BorrowerName: "Asha", PhoneNumber: "9876543210",
		Principal: 5000, InterestMethod: domain.MethodSimple, InterestRate: 10,
		StartDate: domain.NewDate(2024, time.January, 1), Duration: 6,
		Status: domain.PaymentUnpaid,
	}
	h := newHandler(&loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			if id != "1" {
				return nil, domain.ErrNotFound
			}
			cp := existing
			return &cp, nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodPut, "/api/loans/1",
		strings.NewReader(`{"principal": 7500}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got domain.Loan
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Principal != 7500 || got.BorrowerName != "Asha" {
		t.Fatalf("merge wrong: %+v", got)
	}

	// unknown id → 404 {"error": "Loan not found"}
	req = httptest.NewRequest(stdhttp.MethodPut, "/api/loans/9",
		strings.NewReader(`{"principal": 7500}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Loan not found") {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestDeleteLoan_ResponseShapes(t *testing.T) {
	e := echo.New()
	h := newHandler(&loanmock.Repo{
		DeleteFn: func(ctx context.Context, id string) error {
			if id != "1" {
				return domain.ErrNotFound
			}
			return nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodDelete, "/api/loans/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	var ok struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		DeletedID string `json:"deletedId"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &ok)
	if rec.Code != stdhttp.StatusOK || !ok.Success || ok.DeletedID != "1" {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}

	req = httptest.NewRequest(stdhttp.MethodDelete, "/api/loans/9", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	var missing struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &missing)
	if rec.Code != stdhttp.StatusNotFound || missing.Success || missing.Error == "" {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
}

func TestRemind_MessageAndNotFound(t *testing.T) {
	e := echo.New()
	existing := domain.Loan{
		ID: "1", BorrowerName: "Asha", PhoneNumber: "9876543210",
		Principal: 5000, InterestMethod: domain.MethodSimple, InterestRate: 10,
		StartDate: domain.NewDate(2024, time.January, 1), Duration: 6,
	}
	h := newHandler(&loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			if id != "1" {
				return nil, domain.ErrNotFound
			}
			cp := existing
			return &cp, nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans/1/remind", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Remind(c); err != nil {
		t.Fatalf("Remind error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), "Reminder sent to Asha") {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}

	req = httptest.NewRequest(stdhttp.MethodPost, "/api/loans/9/remind", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Remind(c); err != nil {
		t.Fatalf("Remind error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
}

func TestListLoans_EmptyIsArray(t *testing.T) {
	e := echo.New()
	h := newHandler(&loanmock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/loans", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}
