// Command dashboard is the terminal client for the loan service. It works
// offline: every read falls back to the local cache and every mutation is
// applied locally even when the service is unreachable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SagarNunugonda/lendwise/internal/adapter/remote"
	"github.com/SagarNunugonda/lendwise/internal/apperrors"
	"github.com/SagarNunugonda/lendwise/internal/config"
	"github.com/SagarNunugonda/lendwise/internal/domain/loan"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/cache"
	"github.com/SagarNunugonda/lendwise/internal/usecase/report"
	"github.com/SagarNunugonda/lendwise/internal/usecase/store"
)

const usage = `usage: dashboard <command> [flags]

commands:
  list      show loans (--search, --status, --method, --sort)
  add       record a new loan
  update    change fields on a loan (--id plus any field flag)
  remove    delete a loan (--id)
  remind    send a repayment reminder (--id)
  stats     portfolio summary and profit by year
  darkmode  get or set the dark-mode preference (get | on | off)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	c, err := openCache(cfg)
	if err != nil {
		fatal(err)
	}

	timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second
	st := store.New(remote.NewClient(cfg.APIBaseURL, timeout), c, logger)

	ctx := context.Background()

	var cmdErr error
	switch os.Args[1] {
	case "list":
		cmdErr = cmdList(ctx, st, os.Args[2:])
	case "add":
		cmdErr = cmdAdd(ctx, st, os.Args[2:])
	case "update":
		cmdErr = cmdUpdate(ctx, st, os.Args[2:])
	case "remove":
		cmdErr = cmdRemove(ctx, st, os.Args[2:])
	case "remind":
		cmdErr = cmdRemind(ctx, st, os.Args[2:])
	case "stats":
		cmdErr = cmdStats(ctx, st, os.Args[2:])
	case "darkmode":
		cmdErr = cmdDarkMode(ctx, c, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if cmdErr != nil {
		fatal(cmdErr)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "dashboard:", err)
	os.Exit(1)
}

func openCache(cfg *config.Config) (cache.Store, error) {
	if cfg.CacheBackend == "redis" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisStore(rdb), nil
	}
	return cache.NewFileStore(cfg.CacheDir)
}

// load pulls the collection, treating "no data anywhere" as an empty list
// rather than a failure, and tells the user when they are on stale data.
func load(ctx context.Context, st *store.Store) ([]loan.Loan, error) {
	loans, err := st.Load(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNoData) {
		return nil, err
	}
	if st.LoadSource() == store.SourceCache {
		fmt.Fprintln(os.Stderr, "service unreachable, showing cached data")
	}
	return loans, nil
}

func cmdList(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "match borrower name or phone number")
	status := fs.String("status", "", "Active | Paid | Overdue | \"Due Soon\"")
	method := fs.String("method", "", "simple | compound")
	sortKey := fs.String("sort", "", "name-asc | name-desc | amount-asc | amount-desc | date-asc | date-desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loans, err := load(ctx, st)
	if err != nil {
		return err
	}

	today := time.Now().UTC()
	loans = loan.Filter(loans, loan.Query{
		Search: *search,
		Status: *status,
		Method: loan.InterestMethod(*method),
	}, today)
	loans = loan.Sort(loans, loan.SortKey(*sortKey))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBORROWER\tPHONE\tPRINCIPAL\tTOTAL\tDUE\tSTATUS")
	for _, l := range loans {
		total := loan.TotalAmount(l.Principal, l.InterestRate, l.InterestMethod, l.Duration)
		badge := loan.Status(l, l.Due(), today)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
			l.ID, l.BorrowerName, l.PhoneNumber, l.Principal, total, l.Due(), badge.Label)
	}
	return w.Flush()
}

func cmdAdd(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "borrower name")
	phone := fs.String("phone", "", "10-digit phone number")
	address := fs.String("address", "", "borrower address")
	principal := fs.Float64("principal", 0, "loan principal")
	method := fs.String("method", "simple", "simple | compound")
	rate := fs.Float64("rate", 0, "annual interest rate, percent")
	start := fs.String("start", time.Now().UTC().Format("2006-01-02"), "start date (YYYY-MM-DD)")
	duration := fs.Int("duration", 0, "duration in months")
	notes := fs.String("notes", "", "free-form notes")
	stamp := fs.String("stamp-paper", "", "path to the scanned stamp paper")
	if err := fs.Parse(args); err != nil {
		return err
	}

	startDate, err := loan.ParseDate(*start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	l := loan.Loan{
		BorrowerName:   *name,
		PhoneNumber:    *phone,
		Address:        *address,
		Principal:      *principal,
		InterestMethod: loan.InterestMethod(*method),
		InterestRate:   *rate,
		StartDate:      startDate,
		Duration:       *duration,
		Notes:          *notes,
	}
	if *stamp != "" {
		sp, err := stampPaperMeta(*stamp)
		if err != nil {
			return err
		}
		l.StampPaper = sp
	}

	// Load first so the new loan joins the existing collection in cache.
	if _, err := load(ctx, st); err != nil {
		return err
	}
	created, err := st.Create(ctx, l)
	if err != nil {
		return err
	}
	fmt.Printf("added loan %s for %s, total due %.2f on %s\n",
		created.ID, created.BorrowerName,
		loan.TotalAmount(created.Principal, created.InterestRate, created.InterestMethod, created.Duration),
		created.Due())
	return nil
}

func stampPaperMeta(path string) (*loan.StampPaper, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stamp paper: %w", err)
	}
	return &loan.StampPaper{
		FileName:     filepath.Base(path),
		FileType:     mime.TypeByExtension(filepath.Ext(path)),
		LastModified: info.ModTime().UnixMilli(),
	}, nil
}

func cmdUpdate(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "loan id")
	name := fs.String("name", "", "borrower name")
	phone := fs.String("phone", "", "10-digit phone number")
	address := fs.String("address", "", "borrower address")
	principal := fs.Float64("principal", 0, "loan principal")
	method := fs.String("method", "", "simple | compound")
	rate := fs.Float64("rate", 0, "annual interest rate, percent")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	duration := fs.Int("duration", 0, "duration in months")
	notes := fs.String("notes", "", "free-form notes")
	paid := fs.String("paid", "", "mark paid on this date (YYYY-MM-DD), or \"no\" to reopen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("update: --id is required")
	}

	// Only flags the user actually passed become part of the patch, so
	// untouched fields keep their stored values.
	var p loan.Patch
	var perr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			p.BorrowerName = name
		case "phone":
			p.PhoneNumber = phone
		case "address":
			p.Address = address
		case "principal":
			p.Principal = principal
		case "method":
			m := loan.InterestMethod(*method)
			p.InterestMethod = &m
		case "rate":
			p.InterestRate = rate
		case "start":
			d, err := loan.ParseDate(*start)
			if err != nil {
				perr = fmt.Errorf("invalid --start: %w", err)
				return
			}
			p.StartDate = &d
		case "duration":
			p.Duration = duration
		case "notes":
			p.Notes = notes
		case "paid":
			if *paid == "no" {
				s := loan.PaymentUnpaid
				p.Status = &s
				return
			}
			d, err := loan.ParseDate(*paid)
			if err != nil {
				perr = fmt.Errorf("invalid --paid: %w", err)
				return
			}
			s := loan.PaymentPaid
			p.Status = &s
			p.PaymentDate = &d
		}
	})
	if perr != nil {
		return perr
	}

	if _, err := load(ctx, st); err != nil {
		return err
	}
	updated, err := st.Update(ctx, *id, p)
	if err != nil {
		return err
	}
	fmt.Printf("updated loan %s\n", updated.ID)
	return nil
}

func cmdRemove(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "loan id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("remove: --id is required")
	}

	if _, err := load(ctx, st); err != nil {
		return err
	}
	if err := st.Remove(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("removed loan %s\n", *id)
	return nil
}

func cmdRemind(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("remind", flag.ExitOnError)
	id := fs.String("id", "", "loan id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("remind: --id is required")
	}

	if _, err := load(ctx, st); err != nil {
		return err
	}
	msg, err := st.SendReminder(ctx, *id)
	if err != nil {
		return err
	}
	if msg == "" {
		fmt.Printf("no loan with id %s\n", *id)
		return nil
	}
	fmt.Println(msg)
	return nil
}

func cmdStats(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	loans, err := load(ctx, st)
	if err != nil {
		return err
	}

	s := report.Compute(loans, time.Now().UTC())
	fmt.Printf("active loans:    %d (%.2f outstanding)\n", s.ActiveLoans, s.TotalActiveAmount)
	fmt.Printf("paid loans:      %d (%.2f recovered)\n", s.PaidLoans, s.TotalRecovered)
	fmt.Printf("due this week:   %d\n", s.DueThisWeek)
	fmt.Printf("overdue:         %d\n", s.Overdue)
	fmt.Printf("total profit:    %.2f\n", report.TotalProfit(loans))

	byYear := report.ProfitByYear(loans)
	if len(byYear) > 0 {
		fmt.Println("profit by year:")
		for _, y := range report.Years(byYear) {
			fmt.Printf("  %d  %.2f\n", y, byYear[y])
		}
	}
	return nil
}

func cmdDarkMode(ctx context.Context, c cache.Store, args []string) error {
	mode := "get"
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "get":
		v, err := c.Get(ctx, cache.KeyDarkMode)
		if err != nil {
			if errors.Is(err, cache.ErrMiss) {
				fmt.Println("off")
				return nil
			}
			return err
		}
		if strings.TrimSpace(string(v)) == "true" {
			fmt.Println("on")
		} else {
			fmt.Println("off")
		}
		return nil
	case "on":
		return c.Set(ctx, cache.KeyDarkMode, []byte("true"))
	case "off":
		return c.Set(ctx, cache.KeyDarkMode, []byte("false"))
	default:
		return fmt.Errorf("darkmode: unknown argument %q (want get, on or off)", mode)
	}
}
