// Package jsonfile persists the loan collection as a single JSON file,
// rewritten in full on every mutation. Single-process use only.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/SagarNunugonda/lendwise/internal/domain/loan"
)

type LoanRepository struct {
	mu    sync.Mutex
	path  string
	loans []loan.Loan
}

// NewLoanRepository loads the collection from path; a missing file means an
// empty collection, an unreadable one is an error.
func NewLoanRepository(path string) (*LoanRepository, error) {
	r := &LoanRepository{path: path}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &r.loans); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return r, nil
}

func (r *LoanRepository) List(_ context.Context) ([]loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]loan.Loan, len(r.loans))
	copy(out, r.loans)
	return out, nil
}

func (r *LoanRepository) GetByID(_ context.Context, id string) (*loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.index(id); i >= 0 {
		l := r.loans[i]
		return &l, nil
	}
	return nil, loan.ErrNotFound
}

func (r *LoanRepository) Create(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(l.ID) >= 0 {
		return fmt.Errorf("loan %s already exists", l.ID)
	}
	r.loans = append(r.loans, *l)
	return r.flush()
}

func (r *LoanRepository) Update(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(l.ID)
	if i < 0 {
		return loan.ErrNotFound
	}
	r.loans[i] = *l
	return r.flush()
}

func (r *LoanRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return loan.ErrNotFound
	}
	r.loans = append(r.loans[:i], r.loans[i+1:]...)
	return r.flush()
}

// index returns the position of id, or -1. Caller holds the lock.
func (r *LoanRepository) index(id string) int {
	for i, l := range r.loans {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// flush rewrites the whole file. Caller holds the lock.
func (r *LoanRepository) flush() error {
	b, err := json.MarshalIndent(r.loans, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}
