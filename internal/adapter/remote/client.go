// Package remote is the dashboard's HTTP client for the loan service. One
// attempt per call, no retry; every failure maps to a TransportError that
// the store translates into its offline path.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SagarNunugonda/lendwise/internal/apperrors"
	"github.com/SagarNunugonda/lendwise/internal/domain/loan"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context) ([]loan.Loan, error) {
	var out []loan.Loan
	if err := c.do(ctx, http.MethodGet, "/loans", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, l loan.Loan) (*loan.Loan, error) {
	var out loan.Loan
	if err := c.do(ctx, http.MethodPost, "/loans", l, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, l loan.Loan) (*loan.Loan, error) {
	var out loan.Loan
	if err := c.do(ctx, http.MethodPut, "/loans/"+id, l, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/loans/"+id, nil, http.StatusOK, nil)
}

func (c *Client) Remind(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/loans/"+id+"/remind", nil, http.StatusOK, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	op := method + " " + path

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &apperrors.TransportError{Op: op, Err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &apperrors.TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperrors.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return &apperrors.TransportError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperrors.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
