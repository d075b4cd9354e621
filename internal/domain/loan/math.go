package loan

import (
	"math"
	"time"
)

// TotalAmount computes the full repayment for a loan's terms. The rate is an
// annual percentage (12 means 12%/year) converted to a monthly fraction on
// both paths. Anything that is not "simple" takes the monthly-compounded
// path, unrecognized methods included. No input validation happens here;
// NaN propagates.
func TotalAmount(principal, annualRatePercent float64, method InterestMethod, months int) float64 {
	rate := annualRatePercent / 100
	if method == MethodSimple {
		return principal * (1 + rate*float64(months)/12)
	}
	return principal * math.Pow(1+rate/12, float64(months))
}

// DueDate adds the term to the start date with calendar month-rollover
// semantics (see Date.AddMonths).
func DueDate(start Date, months int) Date { return start.AddMonths(months) }

// Derived badge labels and their display severities.
const (
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
	StatusDueSoon = "Due Soon"
	StatusActive  = "Active"

	SeveritySuccess = "success"
	SeverityDanger  = "danger"
	SeverityWarning = "warning"
	SeverityPrimary = "primary"
)

type StatusBadge struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

const dueSoonWindow = 7 * 24 * time.Hour

// Status derives the badge for a loan, first match wins:
// paid, overdue, due within 7 days, active. The caller supplies today so the
// result is deterministic.
func Status(l Loan, dueDate Date, today time.Time) StatusBadge {
	switch {
	case l.Status == PaymentPaid:
		return StatusBadge{StatusPaid, SeveritySuccess}
	case dueDate.Time.Before(today):
		return StatusBadge{StatusOverdue, SeverityDanger}
	case !dueDate.Time.After(today.Add(dueSoonWindow)):
		return StatusBadge{StatusDueSoon, SeverityWarning}
	default:
		return StatusBadge{StatusActive, SeverityPrimary}
	}
}
