// Package reminder runs the scheduled due-soon sweep: every unpaid loan due
// within the next week (or already overdue) gets a reminder dispatched.
package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/SagarNunugonda/lendwise/internal/domain/loan"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/notify"
)

type Sweeper struct {
	repo     loan.Repository
	notifier notify.Notifier
	log      *logrus.Logger
	now      func() time.Time
}

func NewSweeper(repo loan.Repository, n notify.Notifier, log *logrus.Logger) *Sweeper {
	return &Sweeper{repo: repo, notifier: n, log: log, now: time.Now}
}

// Run performs one sweep and returns the number of reminders dispatched.
// Individual delivery failures are logged and skipped.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	loans, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	today := s.now().UTC()
	sent := 0
	for _, l := range loans {
		badge := loan.Status(l, l.Due(), today)
		if badge.Label != loan.StatusDueSoon && badge.Label != loan.StatusOverdue {
			continue
		}
		r := notify.Reminder{
			LoanID:       l.ID,
			BorrowerName: l.BorrowerName,
			PhoneNumber:  l.PhoneNumber,
			AmountDue:    loan.TotalAmount(l.Principal, l.InterestRate, l.InterestMethod, l.Duration),
			DueDate:      l.Due(),
		}
		if _, err := s.notifier.Send(ctx, r); err != nil {
			s.log.WithError(err).Warnf("sweep: reminder failed for loan %s", l.ID)
			continue
		}
		sent++
	}
	s.log.Infof("reminder sweep done, %d sent", sent)
	return sent, nil
}

// Schedule registers the sweep on c under the given cron expression.
func Schedule(c *cron.Cron, spec string, s *Sweeper) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if _, err := s.Run(context.Background()); err != nil {
			s.log.WithError(err).Error("reminder sweep failed")
		}
	})
}
