package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
)

// MemberRepository defines data access for fund members.
type MemberRepository interface {
	Create(ctx context.Context, tx Transaction, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*domain.Member, error)
	ListActive(ctx context.Context) ([]*domain.Member, error)
	SetStatus(ctx context.Context, tx Transaction, id string, status domain.MemberStatus, updatedAt time.Time) error
}

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Loan, error)
	Update(ctx context.Context, tx Transaction, loan *domain.Loan) error
	List(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error)
	// CountOpenByMember counts loans not in a terminal state where the
	// member is borrower or guarantor.
	CountOpenByMember(ctx context.Context, memberID string) (int, error)
}

// InstallmentRepository defines data access for amortization schedule rows.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, rows []*domain.Installment) error
	GetByID(ctx context.Context, id string) (*domain.Installment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Installment, error)
	ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error)
	MarkPaid(ctx context.Context, tx Transaction, id string, paidDate time.Time, note, proofRef string) error
	CountByLoan(ctx context.Context, tx Transaction, loanID string) (int, error)
	CountUnpaidByLoan(ctx context.Context, tx Transaction, loanID string) (int, error)
	SumInterestByLoan(ctx context.Context, tx Transaction, loanID string) (decimal.Decimal, error)
}

// LedgerRepository defines data access for ledger streams.
type LedgerRepository interface {
	Append(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	// GetLastForUpdate locks and returns the stream's most recent entry by
	// entry date (insertion order breaking ties), or nil for an empty stream.
	GetLastForUpdate(ctx context.Context, tx Transaction, stream domain.Stream) (*domain.LedgerEntry, error)
	ListByStream(ctx context.Context, stream domain.Stream, limit, offset int) ([]*domain.LedgerEntry, error)
	// ListAllByStream returns every entry of a stream in ledger order.
	ListAllByStream(ctx context.Context, stream domain.Stream) ([]*domain.LedgerEntry, error)
	// UpdateDetails replaces an entry's detail fields without touching its
	// stored balance.
	UpdateDetails(ctx context.Context, entry *domain.LedgerEntry) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal) error
	Totals(ctx context.Context, stream domain.Stream, from, to time.Time) (*domain.StreamTotals, error)
	// ContributionMonths returns the distinct months holding at least one
	// positive-inflow entry of the member's savings stream.
	ContributionMonths(ctx context.Context, memberID string) ([]domain.Month, error)
	// FirstEntryDate returns the date of the stream's earliest entry, or nil
	// for an empty stream.
	FirstEntryDate(ctx context.Context, stream domain.Stream) (*time.Time, error)
}

// FundConfigRepository defines data access for the fund configuration record.
type FundConfigRepository interface {
	Get(ctx context.Context) (*domain.FundConfiguration, error)
	Update(ctx context.Context, cfg *domain.FundConfiguration) error
}

// ConfigProvider supplies the current fund configuration to use cases.
type ConfigProvider interface {
	Current(ctx context.Context) (*domain.FundConfiguration, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
