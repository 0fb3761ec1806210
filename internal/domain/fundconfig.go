package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundConfigID is the key of the single process-wide configuration record.
const FundConfigID = "default"

// FundConfiguration is the fund-wide parameter set applied to new members
// and new loans. The engine reads it as configuration input; it is never
// mutated as part of engine state.
type FundConfiguration struct {
	ID string
	// InterestRatePct is the annualized percentage stamped onto loans at
	// save time.
	InterestRatePct decimal.Decimal
	MaxTermMonths   int
	// InitialDeposit is the savings entry posted for every new member.
	InitialDeposit decimal.Decimal
	// MemberFee is the administrative fee posted for every new member.
	MemberFee decimal.Decimal
	// LoanFeePct is applied to approved loan amounts at approval.
	LoanFeePct decimal.Decimal
	UpdatedAt  time.Time
}

// Validate checks the configuration invariants before an update is applied.
func (c *FundConfiguration) Validate() error {
	if c.MaxTermMonths <= 0 {
		return &ValidationError{Field: "max_term_months", Message: "must be positive"}
	}

	if c.InterestRatePct.IsNegative() {
		return &ValidationError{Field: "interest_rate_pct", Message: "must not be negative"}
	}

	if c.LoanFeePct.IsNegative() {
		return &ValidationError{Field: "loan_fee_pct", Message: "must not be negative"}
	}

	if err := ValidateNonNegative("initial_deposit", c.InitialDeposit); err != nil {
		return err
	}

	return ValidateNonNegative("member_fee", c.MemberFee)
}
