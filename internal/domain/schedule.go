package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one scheduled repayment row of a loan's amortization table.
type Installment struct {
	ID       string
	LoanID   string
	Sequence int
	// Balance is the principal still owed before this installment is paid.
	Balance       decimal.Decimal
	Principal     decimal.Decimal
	Interest      decimal.Decimal
	RemainingTerm int
	Total         decimal.Decimal
	Paid          bool
	DueDate       time.Time
	PaidDate      *time.Time
	Note          string
	ProofRef      string
	CreatedAt     time.Time
}

var (
	oneHundred   = decimal.NewFromInt(100)
	twelveMonths = decimal.NewFromInt(12)
)

// MonthlyRate converts the annualized percentage stored on a loan into the
// per-installment rate. The term unit is months, so the rate is always
// divided by twelve; the quotient is deliberately not rounded.
func MonthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.Div(oneHundred).Div(twelveMonths)
}

// AnnuityInstallment computes the fixed payment of a French amortization
// plan, rounded to the cent. A zero rate falls back to a linear split so the
// annuity formula never divides by zero.
func AnnuityInstallment(principal, monthlyRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, ErrInvalidTerm
	}

	if monthlyRate.IsZero() {
		return Round2(principal.Div(decimal.NewFromInt(int64(termMonths)))), nil
	}

	// installment = P * r*(1+r)^n / ((1+r)^n - 1)
	compound := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))
	numerator := principal.Mul(monthlyRate).Mul(compound)
	denominator := compound.Sub(decimal.NewFromInt(1))

	return Round2(numerator.Div(denominator)), nil
}

// BuildSchedule generates the full installment table for an approved loan.
// Preconditions: the loan is Approved with an approval date, and no
// installments exist yet (the caller checks the latter; generation for a
// non-approved loan is refused here).
//
// If the loan's cached installment amount is unset it is computed and stored
// on the loan before rows are generated, so repeated calls reuse the stored
// value. The final row's principal is forced to the remaining balance so the
// principal column sums exactly to the approved amount regardless of
// rounding drift in earlier rows.
func BuildSchedule(loan *Loan, now time.Time) ([]*Installment, error) {
	if loan.Status != LoanApproved || loan.ApprovalDate == nil {
		return nil, ErrLoanNotApproved
	}

	if loan.TermMonths <= 0 {
		return nil, ErrInvalidTerm
	}

	rate := MonthlyRate(loan.InterestRatePct)

	if !loan.InstallmentAmount.Valid {
		installment, err := AnnuityInstallment(loan.ApprovedAmount, rate, loan.TermMonths)
		if err != nil {
			return nil, err
		}

		loan.InstallmentAmount = decimal.NewNullDecimal(installment)
	}

	installment := loan.InstallmentAmount.Decimal
	balance := loan.ApprovedAmount

	rows := make([]*Installment, 0, loan.TermMonths)
	for i := 1; i <= loan.TermMonths; i++ {
		interest := Round2(balance.Mul(rate))
		principal := Round2(installment.Sub(interest))

		if i == loan.TermMonths {
			// Closure: the last row absorbs accumulated rounding drift.
			principal = balance
			interest = Round2(installment.Sub(principal))
			if interest.IsNegative() {
				interest = decimal.Zero
			}
		}

		rows = append(rows, &Installment{
			LoanID:        loan.ID,
			Sequence:      i,
			Balance:       balance,
			Principal:     principal,
			Interest:      interest,
			RemainingTerm: loan.TermMonths - i + 1,
			Total:         Round2(principal.Add(interest)),
			DueDate:       AddMonthsClamped(*loan.ApprovalDate, i-1),
			CreatedAt:     now,
		})

		balance = Round2(balance.Sub(principal))
	}

	return rows, nil
}

// TotalInterest sums the interest portions of a schedule.
func TotalInterest(rows []*Installment) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Interest)
	}

	return Round2(total)
}

// AddMonthsClamped advances a date by whole months, keeping the day of month
// and clamping to the last day when the target month is shorter
// (for example Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
