package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

// Date is a calendar date carried as "2006-01-02" in JSON. The zero Date
// unmarshals from null or the empty string.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a date-only JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a %q string", time.DateOnly)
	}

	t, err := time.Parse(time.DateOnly, s[1:len(s)-1])
	if err != nil {
		return err
	}

	d.Time = t

	return nil
}

// MarshalJSON renders the date-only form.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// CreateMemberRequest represents a request to register a member.
type CreateMemberRequest struct {
	NationalID string `json:"national_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	BirthDate  Date   `json:"birth_date"`
	JoinedAt   Date   `json:"joined_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMemberRequest) ToUseCaseInput() usecase.CreateMemberInput {
	return usecase.CreateMemberInput{
		NationalID: r.NationalID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		BirthDate:  r.BirthDate.Time,
		JoinedAt:   r.JoinedAt.Time,
	}
}

// AppendEntryRequest represents a request to append a ledger entry.
type AppendEntryRequest struct {
	EntryDate   Date            `json:"entry_date"`
	Description string          `json:"description"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
}

// ToUseCaseInput converts to use case input for the given stream.
func (r *AppendEntryRequest) ToUseCaseInput(stream domain.Stream) usecase.AppendEntryInput {
	return usecase.AppendEntryInput{
		Stream:      stream,
		EntryDate:   r.EntryDate.Time,
		Description: r.Description,
		Inflow:      r.Inflow,
		Outflow:     r.Outflow,
	}
}

// EditEntryRequest represents a request to edit an entry's details.
type EditEntryRequest struct {
	EntryDate   Date            `json:"entry_date"`
	Description string          `json:"description"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
}

// ToUseCaseInput converts to use case input.
func (r *EditEntryRequest) ToUseCaseInput() usecase.EditEntryInput {
	return usecase.EditEntryInput{
		EntryDate:   r.EntryDate.Time,
		Description: r.Description,
		Inflow:      r.Inflow,
		Outflow:     r.Outflow,
	}
}

// CreateLoanRequest represents a request to open a loan.
type CreateLoanRequest struct {
	BorrowerID      string           `json:"borrower_id"`
	GuarantorID     string           `json:"guarantor_id,omitempty"`
	RequestDate     Date             `json:"request_date"`
	RequestedAmount decimal.Decimal  `json:"requested_amount"`
	ApprovedAmount  *decimal.Decimal `json:"approved_amount,omitempty"`
	TermMonths      int              `json:"term_months"`
	Note            string           `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.CreateLoanInput {
	return usecase.CreateLoanInput{
		BorrowerID:      r.BorrowerID,
		GuarantorID:     r.GuarantorID,
		RequestDate:     r.RequestDate.Time,
		RequestedAmount: r.RequestedAmount,
		ApprovedAmount:  nullDecimal(r.ApprovedAmount),
		TermMonths:      r.TermMonths,
		Note:            r.Note,
	}
}

// UpdateLoanRequest represents a request to edit a loan's mutable fields.
type UpdateLoanRequest struct {
	TermMonths     int              `json:"term_months"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	Note           string           `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateLoanRequest) ToUseCaseInput() usecase.UpdateLoanInput {
	return usecase.UpdateLoanInput{
		TermMonths:     r.TermMonths,
		ApprovedAmount: nullDecimal(r.ApprovedAmount),
		Note:           r.Note,
	}
}

// ApproveLoanRequest represents a request to approve a loan. The approval
// date defaults to today when absent.
type ApproveLoanRequest struct {
	ApprovalDate *Date `json:"approval_date,omitempty"`
}

// ApprovalTime returns the requested approval date, or nil for today.
func (r *ApproveLoanRequest) ApprovalTime() *time.Time {
	if r.ApprovalDate == nil || r.ApprovalDate.IsZero() {
		return nil
	}

	t := r.ApprovalDate.Time

	return &t
}

// RecordPaymentRequest represents a request to mark an installment paid.
type RecordPaymentRequest struct {
	PaidDate Date   `json:"paid_date"`
	Note     string `json:"note,omitempty"`
	ProofRef string `json:"proof_ref,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput() usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		PaidDate: r.PaidDate.Time,
		Note:     r.Note,
		ProofRef: r.ProofRef,
	}
}

// UpdateFundConfigRequest represents a request to replace the fund
// configuration.
type UpdateFundConfigRequest struct {
	InterestRatePct decimal.Decimal `json:"interest_rate_pct"`
	MaxTermMonths   int             `json:"max_term_months"`
	InitialDeposit  decimal.Decimal `json:"initial_deposit"`
	MemberFee       decimal.Decimal `json:"member_fee"`
	LoanFeePct      decimal.Decimal `json:"loan_fee_pct"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateFundConfigRequest) ToUseCaseInput() usecase.UpdateFundConfigInput {
	return usecase.UpdateFundConfigInput{
		InterestRatePct: r.InterestRatePct,
		MaxTermMonths:   r.MaxTermMonths,
		InitialDeposit:  r.InitialDeposit,
		MemberFee:       r.MemberFee,
		LoanFeePct:      r.LoanFeePct,
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
