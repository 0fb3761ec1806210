package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StreamKind identifies a ledger stream. Savings streams are scoped to one
// member; the administrative-expense stream is fund-wide.
type StreamKind string

const (
	StreamSavings      StreamKind = "savings"
	StreamAdminExpense StreamKind = "admin_expense"
)

// Stream addresses one append-mostly sequence of dated entries.
// MemberID is empty for the fund-wide administrative stream.
type Stream struct {
	Kind     StreamKind
	MemberID string
}

// SavingsStream returns the savings stream of a member.
func SavingsStream(memberID string) Stream {
	return Stream{Kind: StreamSavings, MemberID: memberID}
}

// AdminExpenseStream returns the fund-wide administrative-expense stream.
func AdminExpenseStream() Stream {
	return Stream{Kind: StreamAdminExpense}
}

func (s Stream) String() string {
	if s.Kind == StreamSavings {
		return fmt.Sprintf("savings/%s", s.MemberID)
	}

	return string(s.Kind)
}

// LedgerEntry is one dated row of a stream. Balance is a cached running
// total computed at insertion time; editing an earlier entry does not
// cascade into later balances (see RecalculateBalances).
type LedgerEntry struct {
	ID          string
	Stream      Stream
	EntryDate   time.Time
	Description string
	Inflow      decimal.Decimal
	Outflow     decimal.Decimal
	Balance     decimal.Decimal
	CreatedAt   time.Time
}

// NextBalance computes the running balance for a new entry appended after a
// previous balance. Both inflow and outflow may be nonzero; negatives are
// rejected.
func NextBalance(prev, inflow, outflow decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateNonNegative("inflow", inflow); err != nil {
		return decimal.Zero, err
	}

	if err := ValidateNonNegative("outflow", outflow); err != nil {
		return decimal.Zero, err
	}

	return Round2(prev.Add(inflow).Sub(outflow)), nil
}

// StreamTotals is a point-in-time aggregation over a date range, recomputed
// from rows and independent of the cached per-entry balances.
type StreamTotals struct {
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Balance decimal.Decimal
}

// Month is one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf truncates a time to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m precedes other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}

	return m.Month < other.Month
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}

	return Month{Year: m.Year, Month: m.Month + 1}
}

// MissingMonths walks every calendar month from start through anchor
// (inclusive) and reports the months absent from covered. A member with no
// contributions at all is delinquent for the whole walk.
func MissingMonths(covered []Month, start, anchor Month) []Month {
	if anchor.Before(start) {
		return nil
	}

	seen := make(map[Month]bool, len(covered))
	for _, m := range covered {
		seen[m] = true
	}

	var missing []Month
	for m := start; !anchor.Before(m); m = m.Next() {
		if !seen[m] {
			missing = append(missing, m)
		}
	}

	return missing
}

// RecalculateBalances folds a stream's entries in order and returns the
// corrected balance per entry ID. It is the explicit repair operation for
// streams whose cached balances went stale after an edit.
func RecalculateBalances(entries []*LedgerEntry) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(entries))

	running := decimal.Zero
	for _, e := range entries {
		running = Round2(running.Add(e.Inflow).Sub(e.Outflow))
		balances[e.ID] = running
	}

	return balances
}
