package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID         string    `json:"id"`
	NationalID string    `json:"national_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email,omitempty"`
	BirthDate  Date      `json:"birth_date"`
	JoinedAt   Date      `json:"joined_at"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:         m.ID,
		NationalID: m.NationalID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		BirthDate:  Date{m.BirthDate},
		JoinedAt:   Date{m.JoinedAt},
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// ListMembersResponse wraps a member listing.
type ListMembersResponse struct {
	Members []*MemberResponse `json:"members"`
	Total   int64             `json:"total"`
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID                string           `json:"id"`
	BorrowerID        string           `json:"borrower_id"`
	GuarantorID       string           `json:"guarantor_id,omitempty"`
	RequestDate       Date             `json:"request_date"`
	RequestedAmount   decimal.Decimal  `json:"requested_amount"`
	ApprovedAmount    decimal.Decimal  `json:"approved_amount"`
	TermMonths        int              `json:"term_months"`
	InterestRatePct   decimal.Decimal  `json:"interest_rate_pct"`
	ApprovalDate      *Date            `json:"approval_date,omitempty"`
	InstallmentAmount *decimal.Decimal `json:"installment_amount,omitempty"`
	Note              string           `json:"note,omitempty"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	resp := &LoanResponse{
		ID:              l.ID,
		BorrowerID:      l.BorrowerID,
		GuarantorID:     l.GuarantorID,
		RequestDate:     Date{l.RequestDate},
		RequestedAmount: l.RequestedAmount,
		ApprovedAmount:  l.ApprovedAmount,
		TermMonths:      l.TermMonths,
		InterestRatePct: l.InterestRatePct,
		Note:            l.Note,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}

	if l.ApprovalDate != nil {
		resp.ApprovalDate = &Date{*l.ApprovalDate}
	}

	if l.InstallmentAmount.Valid {
		amount := l.InstallmentAmount.Decimal
		resp.InstallmentAmount = &amount
	}

	return resp
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// ListLoansResponse wraps a loan listing.
type ListLoansResponse struct {
	Loans []*LoanResponse `json:"loans"`
	Total int64           `json:"total"`
}

// InstallmentResponse represents a schedule row in API responses.
type InstallmentResponse struct {
	ID            string          `json:"id"`
	LoanID        string          `json:"loan_id"`
	Sequence      int             `json:"sequence"`
	Balance       decimal.Decimal `json:"balance"`
	Principal     decimal.Decimal `json:"principal"`
	Interest      decimal.Decimal `json:"interest"`
	RemainingTerm int             `json:"remaining_term"`
	Total         decimal.Decimal `json:"total"`
	Paid          bool            `json:"paid"`
	DueDate       Date            `json:"due_date"`
	PaidDate      *Date           `json:"paid_date,omitempty"`
	Note          string          `json:"note,omitempty"`
	ProofRef      string          `json:"proof_ref,omitempty"`
}

// InstallmentFromDomain converts a domain installment to a response.
func InstallmentFromDomain(in *domain.Installment) *InstallmentResponse {
	resp := &InstallmentResponse{
		ID:            in.ID,
		LoanID:        in.LoanID,
		Sequence:      in.Sequence,
		Balance:       in.Balance,
		Principal:     in.Principal,
		Interest:      in.Interest,
		RemainingTerm: in.RemainingTerm,
		Total:         in.Total,
		Paid:          in.Paid,
		DueDate:       Date{in.DueDate},
		Note:          in.Note,
		ProofRef:      in.ProofRef,
	}

	if in.PaidDate != nil {
		resp.PaidDate = &Date{*in.PaidDate}
	}

	return resp
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, in := range installments {
		result[i] = InstallmentFromDomain(in)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Stream      string          `json:"stream"`
	MemberID    string          `json:"member_id,omitempty"`
	EntryDate   Date            `json:"entry_date"`
	Description string          `json:"description"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain ledger entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Stream:      string(e.Stream.Kind),
		MemberID:    e.Stream.MemberID,
		EntryDate:   Date{e.EntryDate},
		Description: e.Description,
		Inflow:      e.Inflow,
		Outflow:     e.Outflow,
		Balance:     e.Balance,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TotalsResponse represents aggregated stream totals.
type TotalsResponse struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Balance decimal.Decimal `json:"balance"`
}

// TotalsFromDomain converts domain totals to a response.
func TotalsFromDomain(t *domain.StreamTotals) *TotalsResponse {
	return &TotalsResponse{
		Inflow:  t.Inflow,
		Outflow: t.Outflow,
		Balance: t.Balance,
	}
}

// StreamCheckResponse reports a stream consistency check.
type StreamCheckResponse struct {
	Stream     string   `json:"stream"`
	Entries    int      `json:"entries"`
	StaleIDs   []string `json:"stale_ids,omitempty"`
	Consistent bool     `json:"consistent"`
}

// StreamCheckFromUseCase converts a stream check report to a response.
func StreamCheckFromUseCase(c *usecase.StreamCheck) *StreamCheckResponse {
	return &StreamCheckResponse{
		Stream:     c.Stream.String(),
		Entries:    c.Entries,
		StaleIDs:   c.StaleIDs,
		Consistent: c.Consistent,
	}
}

// MissingPeriodsResponse lists months without a savings contribution.
type MissingPeriodsResponse struct {
	MemberID string   `json:"member_id"`
	Months   []string `json:"months"`
}

// MissingPeriodsFromDomain converts months to a response.
func MissingPeriodsFromDomain(memberID string, months []domain.Month) *MissingPeriodsResponse {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.String()
	}

	return &MissingPeriodsResponse{MemberID: memberID, Months: out}
}

// PaymentResponse reports the outcome of a recorded payment.
type PaymentResponse struct {
	Installment *InstallmentResponse `json:"installment"`
	Loan        *LoanResponse        `json:"loan"`
	PaidOff     bool                 `json:"paid_off"`
	Distributed decimal.Decimal      `json:"distributed"`
}

// PaymentFromUseCase converts a payment result to a response.
func PaymentFromUseCase(r *usecase.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		Installment: InstallmentFromDomain(r.Installment),
		Loan:        LoanFromDomain(r.Loan),
		PaidOff:     r.PaidOff,
		Distributed: r.Distributed,
	}
}

// FundConfigResponse represents the fund configuration in API responses.
type FundConfigResponse struct {
	InterestRatePct decimal.Decimal `json:"interest_rate_pct"`
	MaxTermMonths   int             `json:"max_term_months"`
	InitialDeposit  decimal.Decimal `json:"initial_deposit"`
	MemberFee       decimal.Decimal `json:"member_fee"`
	LoanFeePct      decimal.Decimal `json:"loan_fee_pct"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FundConfigFromDomain converts the domain configuration to a response.
func FundConfigFromDomain(c *domain.FundConfiguration) *FundConfigResponse {
	return &FundConfigResponse{
		InterestRatePct: c.InterestRatePct,
		MaxTermMonths:   c.MaxTermMonths,
		InitialDeposit:  c.InitialDeposit,
		MemberFee:       c.MemberFee,
		LoanFeePct:      c.LoanFeePct,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
