package storemock

import (
	"context"
	"sort"
	"sync"

	"lending-engine/internal/domain/approval"
	"lending-engine/internal/domain/disbursement"
	"lending-engine/internal/domain/investment"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/uow"
)

// Store is an in-memory implementation of the engine's repositories and unit
// of work, with real compare-and-swap semantics: loads return copies and
// commits are guarded by the version column under a mutex, so controller
// tests exercise the same optimistic-retry behavior the MySQL store gives.
type Store struct {
	mu            sync.Mutex
	loans         map[string]*loan.Loan
	byBorrower    map[string]string
	approvals     map[uint64]*approval.Approval
	investments   map[uint64][]investment.Investment
	disbursements map[uint64]*disbursement.Disbursement
	nextPK        uint64
}

func New() *Store {
	return &Store{
		loans:         make(map[string]*loan.Loan),
		byBorrower:    make(map[string]string),
		approvals:     make(map[uint64]*approval.Approval),
		investments:   make(map[uint64][]investment.Investment),
		disbursements: make(map[uint64]*disbursement.Disbursement),
	}
}

var (
	_ loan.Repository         = (*Store)(nil)
	_ uow.UnitOfWork          = (*Store)(nil)
	_ approval.Repository     = approvalRepo{}
	_ investment.Repository   = investmentRepo{}
	_ disbursement.Repository = disbursementRepo{}
)

// ---- loan.Repository ----

func (s *Store) Create(ctx context.Context, l *loan.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ActiveBorrowerID != nil {
		if _, taken := s.byBorrower[*l.ActiveBorrowerID]; taken {
			return loan.ErrDuplicateBorrower
		}
	}
	s.nextPK++
	l.ID = s.nextPK
	if l.Version == 0 {
		l.Version = 1
	}
	cp := *l
	s.loans[l.LoanID] = &cp
	if l.ActiveBorrowerID != nil {
		s.byBorrower[*l.ActiveBorrowerID] = l.LoanID
	}
	return nil
}

func (s *Store) GetByLoanID(ctx context.Context, loanID string) (*loan.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.loans[loanID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

func (s *Store) CompareAndSwap(ctx context.Context, l *loan.Loan, expectedVersion uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.loans[l.LoanID]
	if !ok {
		return loan.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return loan.ErrVersionConflict
	}
	if stored.ActiveBorrowerID != nil && l.ActiveBorrowerID == nil {
		delete(s.byBorrower, *stored.ActiveBorrowerID)
	}
	cp := *l
	cp.Version = expectedVersion + 1
	s.loans[l.LoanID] = &cp
	l.Version = cp.Version
	return nil
}

func (s *Store) ListByBorrowerID(ctx context.Context, borrowerID string) ([]loan.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []loan.Loan
	for _, l := range s.loans {
		if l.BorrowerID == borrowerID {
			out = append(out, *l)
		}
	}
	sortLoans(out)
	return out, nil
}

func (s *Store) ListByState(ctx context.Context, st loan.State) ([]loan.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []loan.Loan
	for _, l := range s.loans {
		if l.State == st {
			out = append(out, *l)
		}
	}
	sortLoans(out)
	return out, nil
}

func (s *Store) List(ctx context.Context, page, limit int) ([]loan.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]loan.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		all = append(all, *l)
	}
	sortLoans(all)
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func sortLoans(ls []loan.Loan) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].ID > ls[j].ID })
}

// ---- approval.Repository ----

func (s *Store) CreateApproval(ctx context.Context, a *approval.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.approvals[a.LoanID]; exists {
		return loan.ErrInvalidState
	}
	cp := *a
	s.approvals[a.LoanID] = &cp
	return nil
}

func (s *Store) GetApprovalByLoanID(ctx context.Context, loanID uint64) (*approval.Approval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.approvals[loanID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// ---- investment.Repository ----

func (s *Store) CreateInvestment(ctx context.Context, inv *investment.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.investments[inv.LoanID] = append(s.investments[inv.LoanID], cp)
	return nil
}

func (s *Store) ListInvestmentsByLoanID(ctx context.Context, loanID uint64) ([]investment.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]investment.Investment(nil), s.investments[loanID]...), nil
}

// ---- disbursement.Repository ----

func (s *Store) CreateDisbursement(ctx context.Context, d *disbursement.Disbursement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.disbursements[d.LoanID]; exists {
		return loan.ErrInvalidState
	}
	cp := *d
	s.disbursements[d.LoanID] = &cp
	return nil
}

func (s *Store) GetDisbursementByLoanID(ctx context.Context, loanID uint64) (*disbursement.Disbursement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.disbursements[loanID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

// ---- uow.UnitOfWork ----

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(uow.Repos{
		Loans:         s,
		Approvals:     approvalRepo{s},
		Investments:   investmentRepo{s},
		Disbursements: disbursementRepo{s},
	})
}

// The interface method names collide across repositories, so thin wrappers
// dispatch to the prefixed methods above.
type approvalRepo struct{ s *Store }

func (r approvalRepo) Create(ctx context.Context, a *approval.Approval) error {
	return r.s.CreateApproval(ctx, a)
}
func (r approvalRepo) GetByLoanID(ctx context.Context, loanID uint64) (*approval.Approval, error) {
	return r.s.GetApprovalByLoanID(ctx, loanID)
}

type investmentRepo struct{ s *Store }

func (r investmentRepo) Create(ctx context.Context, inv *investment.Investment) error {
	return r.s.CreateInvestment(ctx, inv)
}
func (r investmentRepo) ListByLoanID(ctx context.Context, loanID uint64) ([]investment.Investment, error) {
	return r.s.ListInvestmentsByLoanID(ctx, loanID)
}

type disbursementRepo struct{ s *Store }

func (r disbursementRepo) Create(ctx context.Context, d *disbursement.Disbursement) error {
	return r.s.CreateDisbursement(ctx, d)
}
func (r disbursementRepo) GetByLoanID(ctx context.Context, loanID uint64) (*disbursement.Disbursement, error) {
	return r.s.GetDisbursementByLoanID(ctx, loanID)
}
