package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/SagarNunugonda/lendwise/internal/domain/loan"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/notify"
	"github.com/SagarNunugonda/lendwise/pkg/id"
)

type Usecase struct {
	repo     domain.Repository
	notifier notify.Notifier
	log      *logrus.Logger
	now      func() time.Time
}

func NewUsecase(r domain.Repository, n notify.Notifier, log *logrus.Logger) *Usecase {
	return &Usecase{repo: r, notifier: n, log: log, now: time.Now}
}

func (u *Usecase) List(ctx context.Context) ([]domain.Loan, error) {
	return u.repo.List(ctx)
}

// Create validates the record, fills server-assigned fields (id when the
// client sent none, createdAt always) and persists it.
func (u *Usecase) Create(ctx context.Context, in domain.Loan) (*domain.Loan, error) {
	if in.Status == "" {
		in.Status = domain.PaymentUnpaid
	}
	if err := domain.ValidateInput(in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		in.ID = id.NewToken()
	}
	in.CreatedAt = u.now().UTC()

	if err := u.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	u.log.Infof("loan %s created for %s", in.ID, in.BorrowerName)
	return &in, nil
}

// Update merges the patch onto the stored record; unspecified fields are
// retained. Returns domain.ErrNotFound for an unknown id.
func (u *Usecase) Update(ctx context.Context, loanID string, p domain.Patch) (*domain.Loan, error) {
	existing, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	candidate := p.Apply(*existing)
	if err := domain.ValidateInput(candidate); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, &candidate); err != nil {
		return nil, err
	}
	u.log.Infof("loan %s updated", loanID)
	return &candidate, nil
}

func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	if err := u.repo.Delete(ctx, loanID); err != nil {
		return err
	}
	u.log.Infof("loan %s deleted", loanID)
	return nil
}

// Remind dispatches a repayment reminder for the loan. Notifier failures are
// logged, not surfaced: the confirmation message is decoupled from delivery.
func (u *Usecase) Remind(ctx context.Context, loanID string) (string, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return "", err
	}

	r := notify.Reminder{
		LoanID:       l.ID,
		BorrowerName: l.BorrowerName,
		PhoneNumber:  l.PhoneNumber,
		AmountDue:    domain.TotalAmount(l.Principal, l.InterestRate, l.InterestMethod, l.Duration),
		DueDate:      l.Due(),
	}
	if _, err := u.notifier.Send(ctx, r); err != nil {
		u.log.WithError(err).Warnf("reminder delivery failed for loan %s", loanID)
	}
	return fmt.Sprintf("Reminder sent to %s", l.BorrowerName), nil
}
