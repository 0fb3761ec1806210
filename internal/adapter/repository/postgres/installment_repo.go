package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres/generated"
	"github.com/cajafund/cajafund/internal/usecase"
)

// InstallmentRepository implements usecase.InstallmentRepository.
type InstallmentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateBatch inserts a full schedule inside the approval transaction. The
// unique (loan_id, sequence) constraint rejects a duplicate schedule.
func (r *InstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, rows []*domain.Installment) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	for _, row := range rows {
		err := queries.CreateInstallment(ctx, generated.CreateInstallmentParams{
			ID:            row.ID,
			LoanID:        row.LoanID,
			Sequence:      int32(row.Sequence),
			Balance:       decimalToNumeric(row.Balance),
			Principal:     decimalToNumeric(row.Principal),
			Interest:      decimalToNumeric(row.Interest),
			RemainingTerm: int32(row.RemainingTerm),
			Total:         decimalToNumeric(row.Total),
			Paid:          row.Paid,
			DueDate:       timeToPgTimestamptz(row.DueDate),
			PaidDate:      timePtrToPgTimestamptz(row.PaidDate),
			Note:          row.Note,
			ProofRef:      row.ProofRef,
			CreatedAt:     timeToPgTimestamptz(row.CreatedAt),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an installment by ID.
func (r *InstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	row, err := r.queries.GetInstallmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return rowToInstallment(row), nil
}

// GetByIDForUpdate retrieves an installment by ID with a FOR UPDATE lock.
func (r *InstallmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetInstallmentByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstallmentNotFound
		}

		return nil, err
	}

	return rowToInstallment(row), nil
}

// ListByLoan returns a loan's installments in sequence order.
func (r *InstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	rows, err := r.queries.ListInstallmentsByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	installments := make([]*domain.Installment, 0, len(rows))
	for _, row := range rows {
		installments = append(installments, rowToInstallment(row))
	}

	return installments, nil
}

// MarkPaid records a payment against an installment.
func (r *InstallmentRepository) MarkPaid(ctx context.Context, tx usecase.Transaction, id string, paidDate time.Time, note, proofRef string) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.MarkInstallmentPaid(ctx, generated.MarkInstallmentPaidParams{
		ID:       id,
		PaidDate: timeToPgTimestamptz(paidDate),
		Note:     note,
		ProofRef: proofRef,
	})
}

// CountByLoan counts a loan's installments.
func (r *InstallmentRepository) CountByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (int, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	count, err := queries.CountInstallmentsByLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// CountUnpaidByLoan counts a loan's unpaid installments.
func (r *InstallmentRepository) CountUnpaidByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (int, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	count, err := queries.CountUnpaidInstallmentsByLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// SumInterestByLoan totals the interest column of a loan's schedule.
func (r *InstallmentRepository) SumInterestByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (decimal.Decimal, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	sum, err := queries.SumInterestByLoan(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func rowToInstallment(row generated.Installment) *domain.Installment {
	inst := &domain.Installment{
		ID:            row.ID,
		LoanID:        row.LoanID,
		Sequence:      int(row.Sequence),
		Balance:       numericToDecimal(row.Balance),
		Principal:     numericToDecimal(row.Principal),
		Interest:      numericToDecimal(row.Interest),
		RemainingTerm: int(row.RemainingTerm),
		Total:         numericToDecimal(row.Total),
		Paid:          row.Paid,
		DueDate:       row.DueDate.Time,
		Note:          row.Note,
		ProofRef:      row.ProofRef,
		CreatedAt:     row.CreatedAt.Time,
	}

	if row.PaidDate.Valid {
		at := row.PaidDate.Time
		inst.PaidDate = &at
	}

	return inst
}
