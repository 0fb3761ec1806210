package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func approvedLoan(amount string, termMonths int, annualPct string) *Loan {
	approval := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	return &Loan{
		ID:              "loan-1",
		BorrowerID:      "member-1",
		ApprovedAmount:  decimal.RequireFromString(amount),
		TermMonths:      termMonths,
		InterestRatePct: decimal.RequireFromString(annualPct),
		ApprovalDate:    &approval,
		Status:          LoanApproved,
	}
}

func TestBuildSchedule_StandardAnnuity(t *testing.T) {
	loan := approvedLoan("1200.00", 12, "12")

	rows, err := BuildSchedule(loan, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, rows, 12)

	// monthly rate 1%: fixed payment 106.62, first-row interest 12.00
	require.True(t, loan.InstallmentAmount.Valid)
	require.Equal(t, "106.62", loan.InstallmentAmount.Decimal.StringFixed(2))
	require.Equal(t, "12.00", rows[0].Interest.StringFixed(2))
	require.Equal(t, "94.62", rows[0].Principal.StringFixed(2))
	require.Equal(t, "1200.00", rows[0].Balance.StringFixed(2))
	require.Equal(t, 12, rows[0].RemainingTerm)
	require.Equal(t, 1, rows[11].RemainingTerm)

	// last row closes on the remaining balance exactly
	last := rows[11]
	require.True(t, last.Principal.Equal(last.Balance))
	require.True(t, last.Total.Equal(Round2(last.Principal.Add(last.Interest))))
}

func TestBuildSchedule_PrincipalSumsToApprovedAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		term   int
		rate   string
	}{
		{"typical", "1200.00", 12, "12"},
		{"short term", "1000.00", 3, "12"},
		{"odd amount", "3337.77", 7, "9.5"},
		{"long term", "25000.00", 48, "14.25"},
		{"zero rate", "5000.00", 24, "0"},
		{"tiny principal", "10.01", 5, "18"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loan := approvedLoan(tc.amount, tc.term, tc.rate)

			rows, err := BuildSchedule(loan, time.Now().UTC())
			require.NoError(t, err)
			require.Len(t, rows, tc.term)

			sum := decimal.Zero
			for _, r := range rows {
				sum = sum.Add(r.Principal)
				require.False(t, r.Interest.IsNegative(), "row %d interest negative", r.Sequence)
			}

			require.True(t, sum.Equal(loan.ApprovedAmount),
				"principal sum %s != approved %s", sum, loan.ApprovedAmount)

			// running balance decrements to exactly zero
			final := Round2(rows[tc.term-1].Balance.Sub(rows[tc.term-1].Principal))
			require.True(t, final.IsZero(), "final balance %s", final)
		})
	}
}

func TestBuildSchedule_ZeroRate(t *testing.T) {
	loan := approvedLoan("1200.00", 12, "0")

	rows, err := BuildSchedule(loan, time.Now().UTC())
	require.NoError(t, err)

	require.Equal(t, "100.00", loan.InstallmentAmount.Decimal.StringFixed(2))
	for _, r := range rows {
		require.True(t, r.Interest.IsZero(), "row %d", r.Sequence)
		require.Equal(t, "100.00", r.Principal.StringFixed(2))
	}
}

func TestBuildSchedule_ShortTermClosure(t *testing.T) {
	loan := approvedLoan("1000.00", 3, "12")

	rows, err := BuildSchedule(loan, time.Now().UTC())
	require.NoError(t, err)

	require.Equal(t, "340.02", loan.InstallmentAmount.Decimal.StringFixed(2))
	require.Equal(t, "10.00", rows[0].Interest.StringFixed(2))
	require.Equal(t, "330.02", rows[0].Principal.StringFixed(2))
	require.Equal(t, "6.70", rows[1].Interest.StringFixed(2))
	require.Equal(t, "336.66", rows[2].Principal.StringFixed(2))
	require.Equal(t, "3.36", rows[2].Interest.StringFixed(2))
	require.Equal(t, "340.02", rows[2].Total.StringFixed(2))
}

func TestBuildSchedule_DueDates(t *testing.T) {
	approval := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	loan := approvedLoan("1200.00", 4, "12")
	loan.ApprovalDate = &approval

	rows, err := BuildSchedule(loan, time.Now().UTC())
	require.NoError(t, err)

	// day-of-month clamps to shorter months
	require.Equal(t, "2026-01-31", rows[0].DueDate.Format(time.DateOnly))
	require.Equal(t, "2026-02-28", rows[1].DueDate.Format(time.DateOnly))
	require.Equal(t, "2026-03-31", rows[2].DueDate.Format(time.DateOnly))
	require.Equal(t, "2026-04-30", rows[3].DueDate.Format(time.DateOnly))
}

func TestBuildSchedule_ReusesStoredInstallmentAmount(t *testing.T) {
	loan := approvedLoan("1200.00", 12, "12")
	loan.InstallmentAmount = decimal.NewNullDecimal(decimal.RequireFromString("110.00"))

	rows, err := BuildSchedule(loan, time.Now().UTC())
	require.NoError(t, err)

	require.Equal(t, "110.00", loan.InstallmentAmount.Decimal.StringFixed(2))
	require.Equal(t, "98.00", rows[0].Principal.StringFixed(2))
}

func TestBuildSchedule_Preconditions(t *testing.T) {
	loan := approvedLoan("1200.00", 12, "12")
	loan.Status = LoanPending

	_, err := BuildSchedule(loan, time.Now().UTC())
	require.ErrorIs(t, err, ErrLoanNotApproved)

	loan = approvedLoan("1200.00", 0, "12")
	_, err = BuildSchedule(loan, time.Now().UTC())
	require.ErrorIs(t, err, ErrInvalidTerm)
}

func TestTotalInterest(t *testing.T) {
	rows := []*Installment{
		{Interest: decimal.RequireFromString("10.00")},
		{Interest: decimal.RequireFromString("8.00")},
	}

	require.Equal(t, "18.00", TotalInterest(rows).StringFixed(2))
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		start  string
		months int
		want   string
	}{
		{"2025-01-31", 1, "2025-02-28"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2025-03-15", 2, "2025-05-15"},
		{"2025-12-31", 2, "2026-02-28"},
		{"2025-08-31", 1, "2025-09-30"},
		{"2025-06-10", 0, "2025-06-10"},
	}

	for _, tt := range tests {
		start, err := time.Parse(time.DateOnly, tt.start)
		require.NoError(t, err)

		got := AddMonthsClamped(start, tt.months)
		require.Equal(t, tt.want, got.Format(time.DateOnly), "%s + %d months", tt.start, tt.months)
	}
}
