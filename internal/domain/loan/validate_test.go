package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/SagarNunugonda/lendwise/internal/apperrors"
)

func validInput() Loan {
	return Loan{
		BorrowerName:   "Asha",
		PhoneNumber:    "9876543210",
		Principal:      5000,
		InterestMethod: MethodSimple,
		InterestRate:   10,
		StartDate:      NewDate(2024, time.January, 1),
		Duration:       6,
	}
}

func TestValidateInput_OK(t *testing.T) {
	if err := ValidateInput(validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInput_FieldNames(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Loan)
		field  string
	}{
		{"short phone", func(l *Loan) { l.PhoneNumber = "12345" }, "phoneNumber"},
		{"phone with letters", func(l *Loan) { l.PhoneNumber = "98765x3210" }, "phoneNumber"},
		{"zero principal", func(l *Loan) { l.Principal = 0 }, "principal"},
		{"negative principal", func(l *Loan) { l.Principal = -10 }, "principal"},
		{"missing name", func(l *Loan) { l.BorrowerName = "" }, "borrowerName"},
		{"bad method", func(l *Loan) { l.InterestMethod = "weekly" }, "interestMethod"},
		{"negative rate", func(l *Loan) { l.InterestRate = -1 }, "interestRate"},
		{"zero duration", func(l *Loan) { l.Duration = 0 }, "duration"},
		{"missing start date", func(l *Loan) { l.StartDate = Date{} }, "startDate"},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		err := ValidateInput(in)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("%s: not a validation error: %v", tc.name, err)
		}
		var ve *apperrors.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("%s: field = %v, want %s", tc.name, err, tc.field)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-31")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-31"` {
		t.Fatalf("marshal = %s", b)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back, d)
	}
}
