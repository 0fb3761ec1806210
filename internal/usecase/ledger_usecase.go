package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/metrics"
)

// LedgerUseCase maintains the running-balance ledger streams: one savings
// stream per member and the fund-wide administrative-expense stream.
type LedgerUseCase struct {
	txManager  TransactionManager
	ledgerRepo LedgerRepository
	memberRepo MemberRepository
	idGen      IDGenerator
	retrier    Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	ledgerRepo LedgerRepository,
	memberRepo MemberRepository,
	idGen IDGenerator,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:  txManager,
		ledgerRepo: ledgerRepo,
		memberRepo: memberRepo,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// AppendEntryInput represents input for appending a ledger entry.
type AppendEntryInput struct {
	Stream      domain.Stream
	EntryDate   time.Time
	Inflow      decimal.Decimal
	Outflow     decimal.Decimal
	Description string
}

// AppendEntry appends a dated entry to a stream. The new entry's balance is
// the previous entry's balance plus inflow minus outflow; earlier entries
// are never rewritten. The fetch-last/compute/insert sequence runs inside
// one transaction with the stream tail locked.
func (uc *LedgerUseCase) AppendEntry(ctx context.Context, input AppendEntryInput) (*domain.LedgerEntry, error) {
	if err := domain.ValidateNonNegative("inflow", input.Inflow); err != nil {
		return nil, err
	}

	if err := domain.ValidateNonNegative("outflow", input.Outflow); err != nil {
		return nil, err
	}

	if input.Stream.Kind == domain.StreamSavings {
		if _, err := uc.memberRepo.GetByID(ctx, input.Stream.MemberID); err != nil {
			return nil, err
		}
	}

	var entry *domain.LedgerEntry

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		e, err := appendEntryTx(ctx, tx, uc.ledgerRepo, uc.idGen, input)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		entry = e

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.EntriesAppended.WithLabelValues(string(input.Stream.Kind)).Inc()

	return entry, nil
}

// appendEntryTx appends one entry inside an existing transaction. It is
// shared with the approval fee posting and the interest distribution, which
// append entries as side effects of their own transactions.
func appendEntryTx(
	ctx context.Context,
	tx Transaction,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	input AppendEntryInput,
) (*domain.LedgerEntry, error) {
	last, err := ledgerRepo.GetLastForUpdate(ctx, tx, input.Stream)
	if err != nil {
		return nil, err
	}

	prev := decimal.Zero
	if last != nil {
		prev = last.Balance
	}

	balance, err := domain.NextBalance(prev, input.Inflow, input.Outflow)
	if err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		ID:          idGen.Generate(),
		Stream:      input.Stream,
		EntryDate:   input.EntryDate,
		Description: input.Description,
		Inflow:      domain.Round2(input.Inflow),
		Outflow:     domain.Round2(input.Outflow),
		Balance:     balance,
		CreatedAt:   time.Now().UTC(),
	}

	if err := ledgerRepo.Append(ctx, tx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// EditEntryInput represents input for editing a ledger entry's details.
type EditEntryInput struct {
	EntryDate   time.Time
	Inflow      decimal.Decimal
	Outflow     decimal.Decimal
	Description string
}

// EditEntry replaces the detail fields of an existing entry. The entry's
// stored balance and all later balances are deliberately left untouched;
// RecalculateStream is the explicit repair operation.
func (uc *LedgerUseCase) EditEntry(ctx context.Context, id string, input EditEntryInput) (*domain.LedgerEntry, error) {
	if err := domain.ValidateNonNegative("inflow", input.Inflow); err != nil {
		return nil, err
	}

	if err := domain.ValidateNonNegative("outflow", input.Outflow); err != nil {
		return nil, err
	}

	entry, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.EntryDate = input.EntryDate
	entry.Inflow = domain.Round2(input.Inflow)
	entry.Outflow = domain.Round2(input.Outflow)
	entry.Description = input.Description

	if err := uc.ledgerRepo.UpdateDetails(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntriesInput represents input for listing stream entries.
type ListEntriesInput struct {
	Stream domain.Stream
	Limit  int
	Offset int
}

// ListEntries lists a stream's entries in reverse ledger order.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	return uc.ledgerRepo.ListByStream(ctx, input.Stream, clampLimit(input.Limit), input.Offset)
}

// Totals aggregates inflow and outflow over a date range. The balance is a
// point-in-time recomputation, independent of the cached per-entry balances.
func (uc *LedgerUseCase) Totals(ctx context.Context, stream domain.Stream, from, to time.Time) (*domain.StreamTotals, error) {
	return uc.ledgerRepo.Totals(ctx, stream, from, to)
}

// MissingPeriods reports the calendar months without a positive-inflow
// contribution on the member's savings stream, walking from the stream's
// first entry (or the member's join month when the stream is empty) through
// the anchor month inclusive.
func (uc *LedgerUseCase) MissingPeriods(ctx context.Context, memberID string, anchor time.Time) ([]domain.Month, error) {
	member, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	stream := domain.SavingsStream(memberID)

	first, err := uc.ledgerRepo.FirstEntryDate(ctx, stream)
	if err != nil {
		return nil, err
	}

	start := domain.MonthOf(member.JoinedAt)
	if first != nil {
		start = domain.MonthOf(*first)
	}

	covered, err := uc.ledgerRepo.ContributionMonths(ctx, memberID)
	if err != nil {
		return nil, err
	}

	return domain.MissingMonths(covered, start, domain.MonthOf(anchor)), nil
}

// StreamCheck reports cached balances diverging from the recomputed fold.
type StreamCheck struct {
	Stream     domain.Stream
	Entries    int
	StaleIDs   []string
	Consistent bool
}

// CheckStream recomputes the running fold over a stream and compares it to
// the cached balances. Divergence appears when a past entry was edited.
func (uc *LedgerUseCase) CheckStream(ctx context.Context, stream domain.Stream) (*StreamCheck, error) {
	entries, err := uc.ledgerRepo.ListAllByStream(ctx, stream)
	if err != nil {
		return nil, err
	}

	recomputed := domain.RecalculateBalances(entries)

	check := &StreamCheck{Stream: stream, Entries: len(entries)}
	for _, e := range entries {
		if !e.Balance.Equal(recomputed[e.ID]) {
			check.StaleIDs = append(check.StaleIDs, e.ID)
		}
	}

	check.Consistent = len(check.StaleIDs) == 0

	return check, nil
}

// RecalculateStream rewrites every stale cached balance of a stream from the
// ordered fold, inside one transaction.
func (uc *LedgerUseCase) RecalculateStream(ctx context.Context, stream domain.Stream) (int, error) {
	entries, err := uc.ledgerRepo.ListAllByStream(ctx, stream)
	if err != nil {
		return 0, err
	}

	recomputed := domain.RecalculateBalances(entries)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	fixed := 0
	for _, e := range entries {
		if e.Balance.Equal(recomputed[e.ID]) {
			continue
		}

		if err := uc.ledgerRepo.UpdateBalance(ctx, tx, e.ID, recomputed[e.ID]); err != nil {
			return 0, err
		}

		fixed++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return fixed, nil
}
