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

// LedgerRepository implements usecase.LedgerRepository. A stream is addressed
// by (stream_kind, member_id); member_id is NULL on the fund-wide
// administrative stream.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Append inserts an entry inside the caller's transaction.
func (r *LedgerRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:          entry.ID,
		StreamKind:  string(entry.Stream.Kind),
		MemberID:    textToPg(entry.Stream.MemberID),
		EntryDate:   timeToPgTimestamptz(entry.EntryDate),
		Description: entry.Description,
		Inflow:      decimalToNumeric(entry.Inflow),
		Outflow:     decimalToNumeric(entry.Outflow),
		Balance:     decimalToNumeric(entry.Balance),
		CreatedAt:   timeToPgTimestamptz(entry.CreatedAt),
	})
}

// GetByID retrieves an entry by ID.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLedgerEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToLedgerEntry(row), nil
}

// GetLastForUpdate locks and returns the stream's tail entry, or nil when
// the stream is empty.
func (r *LedgerRepository) GetLastForUpdate(ctx context.Context, tx usecase.Transaction, stream domain.Stream) (*domain.LedgerEntry, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetLastLedgerEntryForUpdate(ctx, generated.GetLastLedgerEntryForUpdateParams{
		StreamKind: string(stream.Kind),
		MemberID:   textToPg(stream.MemberID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return rowToLedgerEntry(row), nil
}

// ListByStream lists a stream's entries in reverse ledger order.
func (r *LedgerRepository) ListByStream(ctx context.Context, stream domain.Stream, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntries(ctx, generated.ListLedgerEntriesParams{
		StreamKind: string(stream.Kind),
		MemberID:   textToPg(stream.MemberID),
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToLedgerEntries(rows), nil
}

// ListAllByStream returns every entry of a stream in ledger order.
func (r *LedgerRepository) ListAllByStream(ctx context.Context, stream domain.Stream) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListAllLedgerEntries(ctx, generated.ListAllLedgerEntriesParams{
		StreamKind: string(stream.Kind),
		MemberID:   textToPg(stream.MemberID),
	})
	if err != nil {
		return nil, err
	}

	return rowsToLedgerEntries(rows), nil
}

// UpdateDetails replaces an entry's detail fields, leaving its stored
// balance untouched.
func (r *LedgerRepository) UpdateDetails(ctx context.Context, entry *domain.LedgerEntry) error {
	return r.queries.UpdateLedgerEntryDetails(ctx, generated.UpdateLedgerEntryDetailsParams{
		ID:          entry.ID,
		EntryDate:   timeToPgTimestamptz(entry.EntryDate),
		Description: entry.Description,
		Inflow:      decimalToNumeric(entry.Inflow),
		Outflow:     decimalToNumeric(entry.Outflow),
	})
}

// UpdateBalance rewrites one entry's cached balance.
func (r *LedgerRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.UpdateLedgerEntryBalance(ctx, generated.UpdateLedgerEntryBalanceParams{
		ID:      id,
		Balance: decimalToNumeric(balance),
	})
}

// Totals aggregates a stream's inflow and outflow over a date range.
func (r *LedgerRepository) Totals(ctx context.Context, stream domain.Stream, from, to time.Time) (*domain.StreamTotals, error) {
	row, err := r.queries.GetLedgerTotals(ctx, generated.GetLedgerTotalsParams{
		StreamKind: string(stream.Kind),
		MemberID:   textToPg(stream.MemberID),
		FromDate:   timeToPgTimestamptz(from),
		ToDate:     timeToPgTimestamptz(to),
	})
	if err != nil {
		return nil, err
	}

	inflow := numericToDecimal(row.Inflow)
	outflow := numericToDecimal(row.Outflow)

	return &domain.StreamTotals{
		Inflow:  inflow,
		Outflow: outflow,
		Balance: inflow.Sub(outflow),
	}, nil
}

// ContributionMonths returns the distinct months holding a positive-inflow
// entry of the member's savings stream.
func (r *LedgerRepository) ContributionMonths(ctx context.Context, memberID string) ([]domain.Month, error) {
	rows, err := r.queries.GetContributionMonths(ctx, textToPg(memberID))
	if err != nil {
		return nil, err
	}

	months := make([]domain.Month, 0, len(rows))
	for _, row := range rows {
		months = append(months, domain.MonthOf(row.Time))
	}

	return months, nil
}

// FirstEntryDate returns the stream's earliest entry date, or nil for an
// empty stream.
func (r *LedgerRepository) FirstEntryDate(ctx context.Context, stream domain.Stream) (*time.Time, error) {
	min, err := r.queries.GetFirstLedgerEntryDate(ctx, generated.GetFirstLedgerEntryDateParams{
		StreamKind: string(stream.Kind),
		MemberID:   textToPg(stream.MemberID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	if !min.Valid {
		return nil, nil
	}

	first := min.Time

	return &first, nil
}

func rowsToLedgerEntries(rows []generated.LedgerEntry) []*domain.LedgerEntry {
	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries
}

func rowToLedgerEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:          row.ID,
		Stream:      streamFromRow(row.StreamKind, row.MemberID),
		EntryDate:   row.EntryDate.Time,
		Description: row.Description,
		Inflow:      numericToDecimal(row.Inflow),
		Outflow:     numericToDecimal(row.Outflow),
		Balance:     numericToDecimal(row.Balance),
		CreatedAt:   row.CreatedAt.Time,
	}
}

func streamFromRow(kind string, memberID pgtype.Text) domain.Stream {
	return domain.Stream{
		Kind:     domain.StreamKind(kind),
		MemberID: memberID.String,
	}
}
