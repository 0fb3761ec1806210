package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the approval lifecycle state of a loan request.
//
//	Requested -> Pending -> Approved -> Terminated
//	Requested/Pending -> Rejected (terminal)
//
// Pending is re-entered whenever a mutable field of an existing request is
// edited, forcing re-review.
type LoanStatus string

const (
	LoanRequested  LoanStatus = "requested"
	LoanPending    LoanStatus = "pending"
	LoanApproved   LoanStatus = "approved"
	LoanRejected   LoanStatus = "rejected"
	LoanTerminated LoanStatus = "terminated"
)

// Loan is a member's loan request and, once approved, the parent of its
// amortization schedule.
type Loan struct {
	ID              string
	BorrowerID      string
	GuarantorID     string // empty when no guarantor
	RequestDate     time.Time
	RequestedAmount decimal.Decimal
	ApprovedAmount  decimal.Decimal
	TermMonths      int
	// InterestRatePct is the annualized percentage stamped from the fund
	// configuration at save time; it is never taken from caller input.
	InterestRatePct   decimal.Decimal
	ApprovalDate      *time.Time
	InstallmentAmount decimal.NullDecimal
	Note              string
	Status            LoanStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Open reports whether the loan still blocks deactivation of its borrower
// and guarantor. Rejected and Terminated are the terminal states.
func (l *Loan) Open() bool {
	return l.Status != LoanRejected && l.Status != LoanTerminated
}

// ValidateTerm checks the loan term against the configured maximum.
func (l *Loan) ValidateTerm(maxTermMonths int) error {
	if l.TermMonths <= 0 {
		return &ValidationError{Field: "term_months", Message: "must be positive"}
	}

	if l.TermMonths > maxTermMonths {
		return &ValidationError{Field: "term_months", Message: "exceeds configured maximum term"}
	}

	return nil
}

// CanEdit reports whether the loan's mutable fields may still change.
// Editing an approved or closed loan is an invalid transition.
func (l *Loan) CanEdit() error {
	if l.Status != LoanRequested && l.Status != LoanPending {
		return ErrInvalidTransition
	}

	return nil
}

// CanApprove reports whether the loan may transition to Approved.
func (l *Loan) CanApprove() error {
	if l.Status != LoanRequested && l.Status != LoanPending {
		return ErrInvalidTransition
	}

	return nil
}

// CanReject reports whether the loan may transition to Rejected.
func (l *Loan) CanReject() error {
	if l.Status != LoanRequested && l.Status != LoanPending {
		return ErrInvalidTransition
	}

	return nil
}

// MarkApproved fixes the loan as approved effective at the given date and
// clears the cached installment amount so the scheduler recomputes it.
func (l *Loan) MarkApproved(at time.Time) {
	l.Status = LoanApproved
	l.ApprovalDate = &at
	l.InstallmentAmount = decimal.NullDecimal{}
}

// OriginationFee computes the administrative fee posted on approval:
// approved amount times the configured fee percentage.
func (l *Loan) OriginationFee(feePct decimal.Decimal) decimal.Decimal {
	return Round2(l.ApprovedAmount.Mul(feePct).Div(decimal.NewFromInt(100)))
}
