// Package store is the dashboard's single source of truth for the loan
// collection during a session. It reconciles the remote service with the
// local cache: the remote is best-effort and advisory, never a gate on the
// local mutation. In-memory state and the cache are updated on every
// mutation regardless of the remote outcome.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/SagarNunugonda/lendwise/internal/apperrors"
	"github.com/SagarNunugonda/lendwise/internal/domain/loan"
	"github.com/SagarNunugonda/lendwise/internal/infrastructure/cache"
	"github.com/SagarNunugonda/lendwise/pkg/id"
)

// Remote is the loan-service client the store talks to. One attempt per
// call; any error means "offline" for that operation.
type Remote interface {
	List(ctx context.Context) ([]loan.Loan, error)
	Create(ctx context.Context, l loan.Loan) (*loan.Loan, error)
	Update(ctx context.Context, id string, l loan.Loan) (*loan.Loan, error)
	Delete(ctx context.Context, id string) error
	Remind(ctx context.Context, id string) (string, error)
}

// Source reports where the last Load got its data.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceEmpty  Source = "empty"
)

type Store struct {
	remote Remote
	cache  cache.Store
	log    *logrus.Logger

	mu     sync.Mutex
	loans  []loan.Loan
	source Source
}

func New(remote Remote, c cache.Store, log *logrus.Logger) *Store {
	return &Store{remote: remote, cache: c, log: log, source: SourceEmpty}
}

// Load populates the collection: remote first, local cache as fallback.
// A healthy remote overwrites the cache; offline edits made since the last
// successful sync are clobbered (last write wins, no reconciliation).
// The only error ever returned is apperrors.ErrNoData, when the remote is
// unreachable and the cache is empty or unreadable.
func (s *Store) Load(ctx context.Context) ([]loan.Loan, error) {
	fetched, err := s.remote.List(ctx)
	if err == nil {
		s.mu.Lock()
		s.loans = fetched
		s.source = SourceRemote
		s.mu.Unlock()
		s.writeCache(ctx)
		return s.Loans(), nil
	}
	s.log.WithError(err).Warn("remote unavailable, using local cache")

	blob, cerr := s.cache.Get(ctx, cache.KeyLoans)
	if cerr == nil {
		var cached []loan.Loan
		if uerr := json.Unmarshal(blob, &cached); uerr == nil {
			s.mu.Lock()
			s.loans = cached
			s.source = SourceCache
			s.mu.Unlock()
			return s.Loans(), nil
		}
		s.log.Warn("local cache unreadable, starting empty")
	}

	s.mu.Lock()
	s.loans = nil
	s.source = SourceEmpty
	s.mu.Unlock()
	return []loan.Loan{}, apperrors.ErrNoData
}

// Create validates the input, persists it remotely when possible and appends
// the resulting record locally. On remote failure the locally-built record is
// kept as-is; no retry.
func (s *Store) Create(ctx context.Context, in loan.Loan) (*loan.Loan, error) {
	if in.Status == "" {
		in.Status = loan.PaymentUnpaid
	}
	if err := loan.ValidateInput(in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		in.ID = id.NewToken()
	}

	persisted := in
	if created, err := s.remote.Create(ctx, in); err == nil {
		// the remote's representation wins: it may carry server-assigned
		// fields such as createdAt
		persisted = *created
	} else {
		s.log.WithError(err).Warn("remote create failed, keeping local record")
	}

	s.mu.Lock()
	s.loans = append(s.loans, persisted)
	s.mu.Unlock()
	s.writeCache(ctx)
	return &persisted, nil
}

// Update merges the patch onto the record at id. NotFoundError when the id
// is absent, checked before any I/O. Remote failure never blocks the local
// mutation.
func (s *Store) Update(ctx context.Context, loanID string, p loan.Patch) (*loan.Loan, error) {
	s.mu.Lock()
	idx := s.index(loanID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, &apperrors.NotFoundError{ID: loanID}
	}
	existing := s.loans[idx]
	s.mu.Unlock()

	candidate := p.Apply(existing)
	if err := loan.ValidateInput(candidate); err != nil {
		return nil, err
	}

	if updated, err := s.remote.Update(ctx, loanID, candidate); err == nil {
		candidate = *updated
	} else {
		s.log.WithError(err).Warn("remote update failed, keeping local record")
	}

	s.mu.Lock()
	// re-resolve the index: the collection may have shifted while the remote
	// call was in flight; last write wins
	if idx = s.index(loanID); idx >= 0 {
		s.loans[idx] = candidate
	}
	s.mu.Unlock()
	s.writeCache(ctx)
	return &candidate, nil
}

// Remove deletes the record locally no matter what the remote says — even an
// explicit remote "not found" is only logged. Designed not to fail.
func (s *Store) Remove(ctx context.Context, loanID string) error {
	if err := s.remote.Delete(ctx, loanID); err != nil {
		s.log.WithError(err).Warn("remote delete failed, removing locally anyway")
	}

	s.mu.Lock()
	if idx := s.index(loanID); idx >= 0 {
		s.loans = append(s.loans[:idx], s.loans[idx+1:]...)
	}
	s.mu.Unlock()
	s.writeCache(ctx)
	return nil
}

// SendReminder is fire-and-forget: an unknown id is a silent no-op and a
// remote failure still yields the confirmation message.
func (s *Store) SendReminder(ctx context.Context, loanID string) (string, error) {
	s.mu.Lock()
	idx := s.index(loanID)
	var borrower string
	if idx >= 0 {
		borrower = s.loans[idx].BorrowerName
	}
	s.mu.Unlock()
	if idx < 0 {
		return "", nil
	}

	if msg, err := s.remote.Remind(ctx, loanID); err == nil {
		return msg, nil
	} else {
		s.log.WithError(err).Warn("remote reminder failed, reporting success anyway")
	}
	return fmt.Sprintf("Reminder sent to %s", borrower), nil
}

// Loans returns a snapshot of the in-memory collection.
func (s *Store) Loans() []loan.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]loan.Loan, len(s.loans))
	copy(out, s.loans)
	return out
}

// LoadSource reports where the last Load got its data from.
func (s *Store) LoadSource() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// index returns the position of loanID, or -1. Caller holds the lock.
func (s *Store) index(loanID string) int {
	for i, l := range s.loans {
		if l.ID == loanID {
			return i
		}
	}
	return -1
}

// writeCache overwrites the cache with the full serialized collection.
// Every mutation pays O(collection size) here; failures are logged only.
func (s *Store) writeCache(ctx context.Context) {
	b, err := json.Marshal(s.Loans())
	if err != nil {
		s.log.WithError(err).Error("failed to serialize loans for cache")
		return
	}
	if err := s.cache.Set(ctx, cache.KeyLoans, b); err != nil {
		s.log.WithError(err).Error("failed to write loan cache")
	}
}
