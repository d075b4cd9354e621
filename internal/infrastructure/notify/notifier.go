// Package notify dispatches repayment reminders. Delivery is best-effort
// throughout: callers report success to the user regardless of outcome.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/SagarNunugonda/lendwise/internal/config"
	"github.com/SagarNunugonda/lendwise/internal/domain/loan"
)

type Reminder struct {
	LoanID       string
	BorrowerName string
	PhoneNumber  string
	AmountDue    float64
	DueDate      loan.Date
}

type Delivery struct {
	ID      string
	Channel string
	SentAt  time.Time
}

type Notifier interface {
	Send(ctx context.Context, r Reminder) (Delivery, error)
}

// LogNotifier records the reminder in the service log. Used whenever SMTP
// is not configured.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier { return &LogNotifier{log: log} }

func (n *LogNotifier) Send(_ context.Context, r Reminder) (Delivery, error) {
	d := Delivery{ID: uuid.NewString(), Channel: "log", SentAt: time.Now().UTC()}
	n.log.WithFields(logrus.Fields{
		"delivery_id": d.ID,
		"loan_id":     r.LoanID,
		"borrower":    r.BorrowerName,
		"phone":       r.PhoneNumber,
		"amount_due":  fmt.Sprintf("%.2f", r.AmountDue),
		"due_date":    r.DueDate.String(),
	}).Info("repayment reminder")
	return d, nil
}

// SMTPNotifier mails the reminder to the configured operator address so they
// can call the borrower; the data model carries phone numbers, not emails.
type SMTPNotifier struct {
	cfg *config.Config
	log *logrus.Logger
}

func NewSMTPNotifier(cfg *config.Config, log *logrus.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

func (n *SMTPNotifier) Send(_ context.Context, r Reminder) (Delivery, error) {
	e := email.NewEmail()
	e.From = n.cfg.SenderEmail
	e.To = []string{n.cfg.ReminderEmail}
	e.Subject = fmt.Sprintf("Loan repayment reminder: %s", r.BorrowerName)
	e.Text = []byte(fmt.Sprintf(
		"Reminder for loan %s.\n\n"+
			"Borrower: %s\n"+
			"Phone: %s\n"+
			"Amount due: %.2f\n"+
			"Due date: %s\n",
		r.LoanID, r.BorrowerName, r.PhoneNumber, r.AmountDue, r.DueDate,
	))

	auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)
	if err := e.Send(n.cfg.SMTPAddr(), auth); err != nil {
		n.log.WithError(err).Errorf("failed to send reminder for loan %s", r.LoanID)
		return Delivery{}, fmt.Errorf("send reminder: %w", err)
	}

	d := Delivery{ID: uuid.NewString(), Channel: "email", SentAt: time.Now().UTC()}
	n.log.Infof("reminder %s emailed for loan %s", d.ID, r.LoanID)
	return d, nil
}
