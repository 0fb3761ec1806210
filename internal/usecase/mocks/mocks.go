package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mu      sync.RWMutex
	members map[string]*domain.Member

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, member *domain.Member) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Member, error)
	GetByNationalIDFunc func(ctx context.Context, nationalID string) (*domain.Member, error)
	ListFunc            func(ctx context.Context, activeOnly bool, limit, offset int) ([]*domain.Member, error)
	ListActiveFunc      func(ctx context.Context) ([]*domain.Member, error)
	SetStatusFunc       func(ctx context.Context, tx usecase.Transaction, id string, status domain.MemberStatus, updatedAt time.Time) error
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{
		members: make(map[string]*domain.Member),
	}
}

func (m *MockMemberRepository) Create(ctx context.Context, tx usecase.Transaction, member *domain.Member) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.ID] = member
	return nil
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockMemberRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	if m.GetByNationalIDFunc != nil {
		return m.GetByNationalIDFunc(ctx, nationalID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.NationalID == nationalID {
			return member, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockMemberRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*domain.Member, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var members []*domain.Member
	for _, member := range m.members {
		if activeOnly && !member.IsActive() {
			continue
		}
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (m *MockMemberRepository) ListActive(ctx context.Context) ([]*domain.Member, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return m.List(ctx, true, 0, 0)
}

func (m *MockMemberRepository) SetStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.MemberStatus, updatedAt time.Time) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if member, ok := m.members[id]; ok {
		member.Status = status
		member.UpdatedAt = updatedAt
	}
	return nil
}

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.Loan

	CreateFunc            func(ctx context.Context, loan *domain.Loan) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	ListByMemberFunc      func(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error)
	CountOpenByMemberFunc func(ctx context.Context, memberID string) (int, error)
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		loans: make(map[string]*domain.Loan),
	}
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if loan, ok := m.loans[id]; ok {
		return loan, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockLoanRepository) Update(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *MockLoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var loans []*domain.Loan
	for _, loan := range m.loans {
		loans = append(loans, loan)
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

func (m *MockLoanRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var loans []*domain.Loan
	for _, loan := range m.loans {
		if loan.BorrowerID == memberID || loan.GuarantorID == memberID {
			loans = append(loans, loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

func (m *MockLoanRepository) CountOpenByMember(ctx context.Context, memberID string) (int, error) {
	if m.CountOpenByMemberFunc != nil {
		return m.CountOpenByMemberFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, loan := range m.loans {
		if loan.BorrowerID != memberID && loan.GuarantorID != memberID {
			continue
		}
		if loan.Open() {
			count++
		}
	}
	return count, nil
}

// MockInstallmentRepository is a mock implementation of InstallmentRepository.
type MockInstallmentRepository struct {
	mu   sync.RWMutex
	rows map[string]*domain.Installment

	CreateBatchFunc       func(ctx context.Context, tx usecase.Transaction, rows []*domain.Installment) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Installment, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error)
	ListByLoanFunc        func(ctx context.Context, loanID string) ([]*domain.Installment, error)
	MarkPaidFunc          func(ctx context.Context, tx usecase.Transaction, id string, paidDate time.Time, note, proofRef string) error
	CountByLoanFunc       func(ctx context.Context, tx usecase.Transaction, loanID string) (int, error)
	CountUnpaidByLoanFunc func(ctx context.Context, tx usecase.Transaction, loanID string) (int, error)
	SumInterestByLoanFunc func(ctx context.Context, tx usecase.Transaction, loanID string) (decimal.Decimal, error)
}

func NewMockInstallmentRepository() *MockInstallmentRepository {
	return &MockInstallmentRepository{
		rows: make(map[string]*domain.Installment),
	}
}

func (m *MockInstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, rows []*domain.Installment) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, rows)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		m.rows[row.ID] = row
	}
	return nil
}

func (m *MockInstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	if m.ListByLoanFunc != nil {
		return m.ListByLoanFunc(ctx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rows []*domain.Installment
	for _, row := range m.rows {
		if row.LoanID == loanID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Sequence < rows[j].Sequence })
	return rows, nil
}

func (m *MockInstallmentRepository) MarkPaid(ctx context.Context, tx usecase.Transaction, id string, paidDate time.Time, note, proofRef string) error {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, tx, id, paidDate, note, proofRef)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return domain.ErrInstallmentNotFound
	}
	row.Paid = true
	row.PaidDate = &paidDate
	row.Note = note
	row.ProofRef = proofRef
	return nil
}

func (m *MockInstallmentRepository) CountByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (int, error) {
	if m.CountByLoanFunc != nil {
		return m.CountByLoanFunc(ctx, tx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, row := range m.rows {
		if row.LoanID == loanID {
			count++
		}
	}
	return count, nil
}

func (m *MockInstallmentRepository) CountUnpaidByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (int, error) {
	if m.CountUnpaidByLoanFunc != nil {
		return m.CountUnpaidByLoanFunc(ctx, tx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, row := range m.rows {
		if row.LoanID == loanID && !row.Paid {
			count++
		}
	}
	return count, nil
}

func (m *MockInstallmentRepository) SumInterestByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (decimal.Decimal, error) {
	if m.SumInterestByLoanFunc != nil {
		return m.SumInterestByLoanFunc(ctx, tx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, row := range m.rows {
		if row.LoanID == loanID {
			total = total.Add(row.Interest)
		}
	}
	return total, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository. Entries
// are held per stream in insertion order so the running-balance fold behaves
// like the real thing.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	streams map[string][]*domain.LedgerEntry
	byID    map[string]*domain.LedgerEntry

	AppendFunc             func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetLastForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, stream domain.Stream) (*domain.LedgerEntry, error)
	ListByStreamFunc       func(ctx context.Context, stream domain.Stream, limit, offset int) ([]*domain.LedgerEntry, error)
	ListAllByStreamFunc    func(ctx context.Context, stream domain.Stream) ([]*domain.LedgerEntry, error)
	UpdateDetailsFunc      func(ctx context.Context, entry *domain.LedgerEntry) error
	UpdateBalanceFunc      func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error
	TotalsFunc             func(ctx context.Context, stream domain.Stream, from, to time.Time) (*domain.StreamTotals, error)
	ContributionMonthsFunc func(ctx context.Context, memberID string) ([]domain.Month, error)
	FirstEntryDateFunc     func(ctx context.Context, stream domain.Stream) (*time.Time, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		streams: make(map[string][]*domain.LedgerEntry),
		byID:    make(map[string]*domain.LedgerEntry),
	}
}

// Entries returns a stream's entries in insertion order, for assertions.
func (m *MockLedgerRepository) Entries(stream domain.Stream) []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.LedgerEntry(nil), m.streams[stream.String()]...)
}

func (m *MockLedgerRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entry.Stream.String()
	m.streams[key] = append(m.streams[key], entry)
	m.byID[entry.ID] = entry
	return nil
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.byID[id]; ok {
		return entry, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockLedgerRepository) GetLastForUpdate(ctx context.Context, tx usecase.Transaction, stream domain.Stream) (*domain.LedgerEntry, error) {
	if m.GetLastForUpdateFunc != nil {
		return m.GetLastForUpdateFunc(ctx, tx, stream)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.streams[stream.String()]
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[len(entries)-1], nil
}

func (m *MockLedgerRepository) ListByStream(ctx context.Context, stream domain.Stream, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByStreamFunc != nil {
		return m.ListByStreamFunc(ctx, stream, limit, offset)
	}
	entries, _ := m.ListAllByStream(ctx, stream)
	reversed := make([]*domain.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	return reversed, nil
}

func (m *MockLedgerRepository) ListAllByStream(ctx context.Context, stream domain.Stream) ([]*domain.LedgerEntry, error) {
	if m.ListAllByStreamFunc != nil {
		return m.ListAllByStreamFunc(ctx, stream)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.LedgerEntry(nil), m.streams[stream.String()]...), nil
}

func (m *MockLedgerRepository) UpdateDetails(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[entry.ID]
	if !ok {
		return domain.ErrEntryNotFound
	}
	stored.EntryDate = entry.EntryDate
	stored.Inflow = entry.Inflow
	stored.Outflow = entry.Outflow
	stored.Description = entry.Description
	return nil
}

func (m *MockLedgerRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	stored.Balance = balance
	return nil
}

func (m *MockLedgerRepository) Totals(ctx context.Context, stream domain.Stream, from, to time.Time) (*domain.StreamTotals, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx, stream, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := &domain.StreamTotals{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, entry := range m.streams[stream.String()] {
		if entry.EntryDate.Before(from) || entry.EntryDate.After(to) {
			continue
		}
		totals.Inflow = totals.Inflow.Add(entry.Inflow)
		totals.Outflow = totals.Outflow.Add(entry.Outflow)
	}
	totals.Balance = totals.Inflow.Sub(totals.Outflow)
	return totals, nil
}

func (m *MockLedgerRepository) ContributionMonths(ctx context.Context, memberID string) ([]domain.Month, error) {
	if m.ContributionMonthsFunc != nil {
		return m.ContributionMonthsFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[domain.Month]bool)
	var months []domain.Month
	for _, entry := range m.streams[domain.SavingsStream(memberID).String()] {
		if !entry.Inflow.IsPositive() {
			continue
		}
		month := domain.MonthOf(entry.EntryDate)
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	return months, nil
}

func (m *MockLedgerRepository) FirstEntryDate(ctx context.Context, stream domain.Stream) (*time.Time, error) {
	if m.FirstEntryDateFunc != nil {
		return m.FirstEntryDateFunc(ctx, stream)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.streams[stream.String()]
	if len(entries) == 0 {
		return nil, nil
	}
	first := entries[0].EntryDate
	for _, entry := range entries[1:] {
		if entry.EntryDate.Before(first) {
			first = entry.EntryDate
		}
	}
	return &first, nil
}

// MockConfigProvider is a mock implementation of ConfigProvider.
type MockConfigProvider struct {
	Config *domain.FundConfiguration

	CurrentFunc func(ctx context.Context) (*domain.FundConfiguration, error)
}

func NewMockConfigProvider(cfg *domain.FundConfiguration) *MockConfigProvider {
	return &MockConfigProvider{Config: cfg}
}

func (m *MockConfigProvider) Current(ctx context.Context) (*domain.FundConfiguration, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	if m.Config == nil {
		return nil, domain.ErrConfigNotFound
	}
	return m.Config, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// exactly once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
