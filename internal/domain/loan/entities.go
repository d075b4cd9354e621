package loan

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("loan not found")

type InterestMethod string

const (
	MethodSimple   InterestMethod = "simple"
	MethodCompound InterestMethod = "compound"
)

// PaymentStatus is the persisted repayment state. It is independent of the
// derived badge (see Status): only "paid" is ever set by user action.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// StampPaper holds attached-document metadata. The document body itself is
// never stored.
type StampPaper struct {
	FileName     string `json:"fileName"`
	FileType     string `json:"fileType"`
	LastModified int64  `json:"lastModified"`
}

type Loan struct {
	ID             string         `json:"id"`
	BorrowerName   string         `json:"borrowerName" validate:"required"`
	PhoneNumber    string         `json:"phoneNumber" validate:"required,phone10"`
	Address        string         `json:"address"`
	Principal      float64        `json:"principal" validate:"required,finite,gt=0"`
	InterestMethod InterestMethod `json:"interestMethod" validate:"required,oneof=simple compound"`
	InterestRate   float64        `json:"interestRate" validate:"finite,gte=0"`
	StartDate      Date           `json:"startDate"`
	Duration       int            `json:"duration" validate:"required,gt=0"`
	Notes          string         `json:"notes,omitempty"`
	Status         PaymentStatus  `json:"status" validate:"omitempty,oneof=unpaid paid"`
	PaymentDate    *Date          `json:"paymentDate,omitempty"`
	DueDateField   *Date          `json:"dueDate,omitempty"`
	CreatedAt      time.Time      `json:"createdAt,omitempty"`
	StampPaper     *StampPaper    `json:"stampPaper,omitempty"`
}

// Due is the computed repayment deadline: startDate + duration months.
func (l Loan) Due() Date { return DueDate(l.StartDate, l.Duration) }

// Patch carries a partial update; nil fields keep the existing value.
type Patch struct {
	BorrowerName   *string         `json:"borrowerName,omitempty"`
	PhoneNumber    *string         `json:"phoneNumber,omitempty"`
	Address        *string         `json:"address,omitempty"`
	Principal      *float64        `json:"principal,omitempty"`
	InterestMethod *InterestMethod `json:"interestMethod,omitempty"`
	InterestRate   *float64        `json:"interestRate,omitempty"`
	StartDate      *Date           `json:"startDate,omitempty"`
	Duration       *int            `json:"duration,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	Status         *PaymentStatus  `json:"status,omitempty"`
	PaymentDate    *Date           `json:"paymentDate,omitempty"`
	StampPaper     *StampPaper     `json:"stampPaper,omitempty"`
}

// Apply merges the patch onto l and returns the candidate record. The id and
// createdAt are immutable once assigned.
func (p Patch) Apply(l Loan) Loan {
	if p.BorrowerName != nil {
		l.BorrowerName = *p.BorrowerName
	}
	if p.PhoneNumber != nil {
		l.PhoneNumber = *p.PhoneNumber
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.Principal != nil {
		l.Principal = *p.Principal
	}
	if p.InterestMethod != nil {
		l.InterestMethod = *p.InterestMethod
	}
	if p.InterestRate != nil {
		l.InterestRate = *p.InterestRate
	}
	if p.StartDate != nil {
		l.StartDate = *p.StartDate
	}
	if p.Duration != nil {
		l.Duration = *p.Duration
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.PaymentDate != nil {
		l.PaymentDate = p.PaymentDate
	}
	if p.StampPaper != nil {
		l.StampPaper = p.StampPaper
	}
	return l
}
