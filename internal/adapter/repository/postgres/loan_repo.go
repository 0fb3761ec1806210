package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres/generated"
	"github.com/cajafund/cajafund/internal/usecase"
)

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a loan request.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	return r.queries.CreateLoan(ctx, generated.CreateLoanParams{
		ID:                loan.ID,
		BorrowerID:        loan.BorrowerID,
		GuarantorID:       textToPg(loan.GuarantorID),
		RequestDate:       timeToPgTimestamptz(loan.RequestDate),
		RequestedAmount:   decimalToNumeric(loan.RequestedAmount),
		ApprovedAmount:    decimalToNumeric(loan.ApprovedAmount),
		TermMonths:        int32(loan.TermMonths),
		InterestRatePct:   decimalToNumeric(loan.InterestRatePct),
		ApprovalDate:      timePtrToPgTimestamptz(loan.ApprovalDate),
		InstallmentAmount: nullDecimalToNumeric(loan.InstallmentAmount),
		Note:              loan.Note,
		Status:            string(loan.Status),
		CreatedAt:         timeToPgTimestamptz(loan.CreatedAt),
		UpdatedAt:         timeToPgTimestamptz(loan.UpdatedAt),
	})
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	row, err := r.queries.GetLoanByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// GetByIDForUpdate retrieves a loan by ID with a FOR UPDATE lock.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetLoanByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// Update rewrites the mutable fields of a loan.
func (r *LoanRepository) Update(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.UpdateLoan(ctx, generated.UpdateLoanParams{
		ID:                loan.ID,
		ApprovedAmount:    decimalToNumeric(loan.ApprovedAmount),
		TermMonths:        int32(loan.TermMonths),
		InterestRatePct:   decimalToNumeric(loan.InterestRatePct),
		ApprovalDate:      timePtrToPgTimestamptz(loan.ApprovalDate),
		InstallmentAmount: nullDecimalToNumeric(loan.InstallmentAmount),
		Note:              loan.Note,
		Status:            string(loan.Status),
		UpdatedAt:         timeToPgTimestamptz(loan.UpdatedAt),
	})
}

// List lists loans with pagination.
func (r *LoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	rows, err := r.queries.ListLoans(ctx, generated.ListLoansParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToLoans(rows), nil
}

// ListByMember lists loans where the member is borrower or guarantor.
func (r *LoanRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Loan, error) {
	rows, err := r.queries.ListLoansByMember(ctx, generated.ListLoansByMemberParams{
		MemberID: memberID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToLoans(rows), nil
}

// CountOpenByMember counts non-terminal loans involving the member.
func (r *LoanRepository) CountOpenByMember(ctx context.Context, memberID string) (int, error) {
	count, err := r.queries.CountOpenLoansByMember(ctx, memberID)
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func rowsToLoans(rows []generated.Loan) []*domain.Loan {
	loans := make([]*domain.Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, rowToLoan(row))
	}

	return loans
}

func rowToLoan(row generated.Loan) *domain.Loan {
	loan := &domain.Loan{
		ID:              row.ID,
		BorrowerID:      row.BorrowerID,
		GuarantorID:     row.GuarantorID.String,
		RequestDate:     row.RequestDate.Time,
		RequestedAmount: numericToDecimal(row.RequestedAmount),
		ApprovedAmount:  numericToDecimal(row.ApprovedAmount),
		TermMonths:      int(row.TermMonths),
		InterestRatePct: numericToDecimal(row.InterestRatePct),
		Note:            row.Note,
		Status:          domain.LoanStatus(row.Status),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}

	if row.ApprovalDate.Valid {
		at := row.ApprovalDate.Time
		loan.ApprovalDate = &at
	}

	if row.InstallmentAmount.Valid {
		loan.InstallmentAmount = decimal.NewNullDecimal(numericToDecimal(row.InstallmentAmount))
	}

	return loan
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func nullDecimalToNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(d.Decimal)
}
