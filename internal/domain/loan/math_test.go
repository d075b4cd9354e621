package loan

import (
	"math"
	"testing"
	"time"
)

func TestTotalAmount_ZeroRateIsIdentity(t *testing.T) {
	for _, principal := range []float64{0, 1, 2500, 100000} {
		for _, months := range []int{0, 1, 12, 120} {
			if got := TotalAmount(principal, 0, MethodSimple, months); got != principal {
				t.Fatalf("simple p=%v m=%d: got %v, want %v", principal, months, got, principal)
			}
			if got := TotalAmount(principal, 0, MethodCompound, months); got != principal {
				t.Fatalf("compound p=%v m=%d: got %v, want %v", principal, months, got, principal)
			}
		}
	}
}

func TestTotalAmount_Simple(t *testing.T) {
	if got := TotalAmount(10000, 12, MethodSimple, 12); got != 11200.0 {
		t.Fatalf("got %v, want 11200.0", got)
	}
}

func TestTotalAmount_CompoundMonthly(t *testing.T) {
	// 1%/month for 12 periods
	got := TotalAmount(10000, 12, MethodCompound, 12)
	if math.Abs(got-11268.25) > 0.01 {
		t.Fatalf("got %v, want ~11268.25", got)
	}
}

func TestTotalAmount_UnknownMethodFallsThroughToCompound(t *testing.T) {
	want := TotalAmount(5000, 10, MethodCompound, 6)
	if got := TotalAmount(5000, 10, InterestMethod("flat"), 6); got != want {
		t.Fatalf("got %v, want compound result %v", got, want)
	}
}

func TestTotalAmount_NaNPropagates(t *testing.T) {
	if got := TotalAmount(math.NaN(), 12, MethodSimple, 12); !math.IsNaN(got) {
		t.Fatalf("got %v, want NaN", got)
	}
}

func TestDueDate_MonthRollover(t *testing.T) {
	// Jan 31 + 1 month normalizes through Feb (29 days in 2024) to Mar 2.
	got := DueDate(NewDate(2024, time.January, 31), 1)
	if got.String() != "2024-03-02" {
		t.Fatalf("got %s, want 2024-03-02", got)
	}
}

func TestDueDate_PlainTerm(t *testing.T) {
	got := DueDate(NewDate(2024, time.January, 1), 6)
	if got.String() != "2024-07-01" {
		t.Fatalf("got %s, want 2024-07-01", got)
	}
}

func TestStatus_PaidWinsOverOverdue(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	l := Loan{Status: PaymentPaid}
	badge := Status(l, NewDate(2023, time.January, 1), today)
	if badge.Label != StatusPaid || badge.Severity != SeveritySuccess {
		t.Fatalf("got %+v, want Paid/success", badge)
	}
}

func TestStatus_Boundaries(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		due      Date
		today    time.Time
		label    string
		severity string
	}{
		{"exactly 7 days out", NewDate(2024, time.June, 8), today, StatusDueSoon, SeverityWarning},
		{"8 days out", NewDate(2024, time.June, 9), today, StatusActive, SeverityPrimary},
		{"1 second past due", NewDate(2024, time.June, 1), today.Add(time.Second), StatusOverdue, SeverityDanger},
	}
	for _, tc := range cases {
		badge := Status(Loan{Status: PaymentUnpaid}, tc.due, tc.today)
		if badge.Label != tc.label || badge.Severity != tc.severity {
			t.Fatalf("%s: got %+v, want %s/%s", tc.name, badge, tc.label, tc.severity)
		}
	}
}

func TestPatch_ApplyKeepsUnspecifiedFields(t *testing.T) {
	orig := Loan{
		ID:             "1",
		BorrowerName:   "Asha",
		PhoneNumber:    "9876543210",
		Principal:      5000,
		InterestMethod: MethodSimple,
		InterestRate:   10,
		StartDate:      NewDate(2024, time.January, 1),
		Duration:       6,
		Notes:          "first loan",
		Status:         PaymentUnpaid,
	}
	principal := 7500.0
	got := Patch{Principal: &principal}.Apply(orig)
	if got.Principal != 7500 {
		t.Fatalf("principal not patched: %v", got.Principal)
	}
	if got.BorrowerName != "Asha" || got.Notes != "first loan" || got.Duration != 6 {
		t.Fatalf("unspecified fields changed: %+v", got)
	}
	if orig.Principal != 5000 {
		t.Fatalf("patch mutated the original")
	}
}
