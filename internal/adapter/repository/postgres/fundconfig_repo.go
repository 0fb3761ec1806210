package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres/generated"
)

// FundConfigRepository implements usecase.FundConfigRepository.
type FundConfigRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewFundConfigRepository creates a new FundConfigRepository.
func NewFundConfigRepository(pool *pgxpool.Pool) *FundConfigRepository {
	return &FundConfigRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Get retrieves the configuration record.
func (r *FundConfigRepository) Get(ctx context.Context) (*domain.FundConfiguration, error) {
	row, err := r.queries.GetFundConfig(ctx, domain.FundConfigID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConfigNotFound
		}

		return nil, err
	}

	return &domain.FundConfiguration{
		ID:              row.ID,
		InterestRatePct: numericToDecimal(row.InterestRatePct),
		MaxTermMonths:   int(row.MaxTermMonths),
		InitialDeposit:  numericToDecimal(row.InitialDeposit),
		MemberFee:       numericToDecimal(row.MemberFee),
		LoanFeePct:      numericToDecimal(row.LoanFeePct),
		UpdatedAt:       row.UpdatedAt.Time,
	}, nil
}

// Update upserts the configuration record.
func (r *FundConfigRepository) Update(ctx context.Context, cfg *domain.FundConfiguration) error {
	return r.queries.UpsertFundConfig(ctx, generated.UpsertFundConfigParams{
		ID:              cfg.ID,
		InterestRatePct: decimalToNumeric(cfg.InterestRatePct),
		MaxTermMonths:   int32(cfg.MaxTermMonths),
		InitialDeposit:  decimalToNumeric(cfg.InitialDeposit),
		MemberFee:       decimalToNumeric(cfg.MemberFee),
		LoanFeePct:      decimalToNumeric(cfg.LoanFeePct),
		UpdatedAt:       timeToPgTimestamptz(cfg.UpdatedAt),
	})
}
