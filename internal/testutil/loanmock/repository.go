// Package loanmock holds function-backed test doubles shared across
// usecase and handler tests.
package loanmock

import (
	"context"

	domain "github.com/SagarNunugonda/lendwise/internal/domain/loan"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/notify"
)

// Repo satisfies domain.Repository; unset methods behave like an empty
// store.
type Repo struct {
	ListFn    func(ctx context.Context) ([]domain.Loan, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Loan, error)
	CreateFn  func(ctx context.Context, l *domain.Loan) error
	UpdateFn  func(ctx context.Context, l *domain.Loan) error
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *Repo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, l *domain.Loan) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// Notifier records reminders; SendFn overrides the default success.
type Notifier struct {
	SendFn func(ctx context.Context, r notify.Reminder) (notify.Delivery, error)
	Sent   []notify.Reminder
}

func (m *Notifier) Send(ctx context.Context, r notify.Reminder) (notify.Delivery, error) {
	m.Sent = append(m.Sent, r)
	if m.SendFn != nil {
		return m.SendFn(ctx, r)
	}
	return notify.Delivery{ID: "test-delivery", Channel: "log"}, nil
}
