// Package testutil provides in-memory stores and a scripted AI generator
// for service and handler tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"sudarshan-portal/internal/models"
	"sudarshan-portal/internal/repository"

	"github.com/google/uuid"
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // by email
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return repository.ErrDuplicate
	}
	u := *user
	s.users[user.Email] = &u
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

// TransactionStore mirrors the ordering and filtering of the PostgreSQL
// repository. Err, when set, fails every call.
type TransactionStore struct {
	mu  sync.Mutex
	txs []*models.Transaction
	Err error
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	t := *tx
	s.txs = append(s.txs, &t)
	return nil
}

func (s *TransactionStore) Find(_ context.Context, f repository.TransactionFilter) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*models.Transaction, 0)
	for _, tx := range s.txs {
		if tx.UserID != f.UserID {
			continue
		}
		if !f.From.IsZero() && tx.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !tx.Date.Before(f.To) {
			continue
		}
		t := *tx
		out = append(out, &t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Date.After(out[j].Date)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// All returns every stored transaction in insertion order.
func (s *TransactionStore) All() []*models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Transaction(nil), s.txs...)
}

type ReportStore struct {
	mu      sync.Mutex
	reports []*models.DailyReport
	Err     error
}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

func (s *ReportStore) Create(_ context.Context, r *models.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	rep := *r
	s.reports = append(s.reports, &rep)
	return nil
}

func (s *ReportStore) GetByID(_ context.Context, id uuid.UUID) (*models.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.ID == id {
			rep := *r
			return &rep, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ReportStore) ListByUserID(_ context.Context, userID string, limit int) ([]*models.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.DailyReport, 0)
	for _, r := range s.reports {
		if r.UserID == userID {
			rep := *r
			out = append(out, &rep)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ReportStore) All() []*models.DailyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.DailyReport(nil), s.reports...)
}

type ScanStore struct {
	mu    sync.Mutex
	scans []*models.DocumentScan
	Err   error
}

func NewScanStore() *ScanStore {
	return &ScanStore{}
}

func (s *ScanStore) Create(_ context.Context, scan *models.DocumentScan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	sc := *scan
	s.scans = append(s.scans, &sc)
	return nil
}

func (s *ScanStore) ListByUserID(_ context.Context, userID string, limit int) ([]*models.DocumentScan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.DocumentScan, 0)
	for _, sc := range s.scans {
		if sc.UserID == userID {
			c := *sc
			out = append(out, &c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ScanStore) All() []*models.DocumentScan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.DocumentScan(nil), s.scans...)
}
