package loan

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortAmountAsc  SortKey = "amount-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortDateAsc    SortKey = "date-asc"
	SortDateDesc   SortKey = "date-desc"
)

// Sort returns a new ordering of loans; the input slice is never mutated.
// An unknown key preserves the input order. The sort is stable.
func Sort(loans []Loan, key SortKey) []Loan {
	out := make([]Loan, len(loans))
	copy(out, loans)

	var less func(a, b Loan) bool
	switch key {
	case SortNameAsc, SortNameDesc:
		// Collator is not safe for concurrent use, so build one per call.
		col := collate.New(language.English)
		if key == SortNameAsc {
			less = func(a, b Loan) bool { return col.CompareString(a.BorrowerName, b.BorrowerName) < 0 }
		} else {
			less = func(a, b Loan) bool { return col.CompareString(b.BorrowerName, a.BorrowerName) < 0 }
		}
	case SortAmountAsc:
		less = func(a, b Loan) bool { return a.Principal < b.Principal }
	case SortAmountDesc:
		less = func(a, b Loan) bool { return b.Principal < a.Principal }
	case SortDateAsc:
		less = func(a, b Loan) bool { return a.StartDate.Time.Before(b.StartDate.Time) }
	case SortDateDesc:
		less = func(a, b Loan) bool { return b.StartDate.Time.Before(a.StartDate.Time) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Query narrows a loan list the way the dashboard filter bar does.
type Query struct {
	Search string
	Status string         // derived badge label, empty matches all
	Method InterestMethod // empty matches all
}

// Filter returns the loans matching q. The search term matches the borrower
// name case-insensitively or the phone number as a literal substring; status
// compares against the derived badge label for the supplied today.
func Filter(loans []Loan, q Query, today time.Time) []Loan {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Loan, 0, len(loans))
	for _, l := range loans {
		if term != "" &&
			!strings.Contains(strings.ToLower(l.BorrowerName), term) &&
			!strings.Contains(l.PhoneNumber, term) {
			continue
		}
		if q.Status != "" && Status(l, l.Due(), today).Label != q.Status {
			continue
		}
		if q.Method != "" && l.InterestMethod != q.Method {
			continue
		}
		out = append(out, l)
	}
	return out
}
