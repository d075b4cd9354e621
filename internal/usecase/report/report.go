// Package report computes the dashboard's summary figures: portfolio stats
// and the profit tracker. Pure functions over a loan snapshot with an
// injected today.
package report

import (
	"sort"
	"time"

	"github.com/SagarNunugonda/lendwise/internal/domain/loan"
)

type Stats struct {
	ActiveLoans       int
	PaidLoans         int
	TotalRecovered    float64
	TotalActiveAmount float64
	DueThisWeek       int
	Overdue           int
}

const upcomingWindow = 7 * 24 * time.Hour

// Compute aggregates the headline numbers. "Due this week" means strictly
// after today and within seven days; both it and Overdue count only unpaid
// loans.
func Compute(loans []loan.Loan, today time.Time) Stats {
	var s Stats
	weekOut := today.Add(upcomingWindow)

	for _, l := range loans {
		if l.Status == loan.PaymentPaid {
			s.PaidLoans++
			s.TotalRecovered += l.Principal
			continue
		}
		s.ActiveLoans++
		s.TotalActiveAmount += l.Principal

		due := l.Due().Time
		switch {
		case due.Before(today):
			s.Overdue++
		case due.After(today) && !due.After(weekOut):
			s.DueThisWeek++
		}
	}
	return s
}

func profit(l loan.Loan) float64 {
	total := loan.TotalAmount(l.Principal, l.InterestRate, l.InterestMethod, l.Duration)
	return total - l.Principal
}

// profitYear picks the year a paid loan's profit lands in: the payment date
// when recorded, the stored due date otherwise, the computed due date as a
// last resort.
func profitYear(l loan.Loan) int {
	switch {
	case l.PaymentDate != nil:
		return l.PaymentDate.Year()
	case l.DueDateField != nil:
		return l.DueDateField.Year()
	default:
		return l.Due().Year()
	}
}

// TotalProfit sums interest earned across paid loans.
func TotalProfit(loans []loan.Loan) float64 {
	var sum float64
	for _, l := range loans {
		if l.Status == loan.PaymentPaid {
			sum += profit(l)
		}
	}
	return sum
}

// YearProfit sums interest earned on paid loans attributed to year.
func YearProfit(loans []loan.Loan, year int) float64 {
	var sum float64
	for _, l := range loans {
		if l.Status == loan.PaymentPaid && profitYear(l) == year {
			sum += profit(l)
		}
	}
	return sum
}

// ProfitByYear buckets paid-loan profit by year.
func ProfitByYear(loans []loan.Loan) map[int]float64 {
	out := make(map[int]float64)
	for _, l := range loans {
		if l.Status == loan.PaymentPaid {
			out[profitYear(l)] += profit(l)
		}
	}
	return out
}

// Years returns the bucket years in ascending order, the order the profit
// chart plots them in.
func Years(byYear map[int]float64) []int {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
