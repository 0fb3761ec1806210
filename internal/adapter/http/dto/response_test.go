package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
)

func TestMemberFromDomain(t *testing.T) {
	now := time.Now()
	member := &domain.Member{
		ID:         "m-1",
		NationalID: "123456789",
		FirstName:  "Ana",
		LastName:   "Reyes",
		Status:     domain.MemberActive,
		JoinedAt:   now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	resp := MemberFromDomain(member)
	if resp.ID != "m-1" || resp.Status != "active" {
		t.Fatalf("unexpected member response: %+v", resp)
	}

	list := MembersFromDomain([]*domain.Member{member})
	if len(list) != 1 || list[0].ID != "m-1" {
		t.Fatalf("MembersFromDomain returned %+v", list)
	}
}

func TestLoanFromDomain(t *testing.T) {
	approvalDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	loan := &domain.Loan{
		ID:              "loan-1",
		BorrowerID:      "m-1",
		RequestedAmount: decimal.RequireFromString("1200.00"),
		ApprovedAmount:  decimal.RequireFromString("1200.00"),
		TermMonths:      12,
		InterestRatePct: decimal.RequireFromString("12.0"),
		ApprovalDate:    &approvalDate,
		InstallmentAmount: decimal.NullDecimal{
			Decimal: decimal.RequireFromString("106.62"),
			Valid:   true,
		},
		Status: domain.LoanApproved,
	}

	resp := LoanFromDomain(loan)
	if resp.Status != "approved" {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	if resp.ApprovalDate == nil || !resp.ApprovalDate.Time.Equal(approvalDate) {
		t.Fatalf("expected approval date, got %+v", resp.ApprovalDate)
	}
	if resp.InstallmentAmount == nil || !resp.InstallmentAmount.Equal(decimal.RequireFromString("106.62")) {
		t.Fatalf("expected installment amount, got %+v", resp.InstallmentAmount)
	}
}

func TestLoanFromDomain_UnapprovedOmitsNullables(t *testing.T) {
	loan := &domain.Loan{ID: "loan-1", Status: domain.LoanRequested}

	resp := LoanFromDomain(loan)
	if resp.ApprovalDate != nil || resp.InstallmentAmount != nil {
		t.Fatalf("expected nullable fields to stay nil, got %+v", resp)
	}
}

func TestEntryFromDomain(t *testing.T) {
	entry := &domain.LedgerEntry{
		ID:          "e-1",
		Stream:      domain.SavingsStream("m-1"),
		EntryDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Description: "monthly contribution",
		Inflow:      decimal.RequireFromString("50.00"),
		Outflow:     decimal.Zero,
		Balance:     decimal.RequireFromString("150.00"),
	}

	resp := EntryFromDomain(entry)
	if resp.Stream != "savings" || resp.MemberID != "m-1" {
		t.Fatalf("unexpected stream fields: %+v", resp)
	}

	admin := EntryFromDomain(&domain.LedgerEntry{Stream: domain.AdminExpenseStream()})
	if admin.Stream != "admin_expense" || admin.MemberID != "" {
		t.Fatalf("unexpected admin stream fields: %+v", admin)
	}

	list := EntriesFromDomain([]*domain.LedgerEntry{entry})
	if len(list) != 1 || list[0].ID != "e-1" {
		t.Fatalf("EntriesFromDomain returned %+v", list)
	}
}

func TestMissingPeriodsFromDomain(t *testing.T) {
	months := []domain.Month{
		{Year: 2025, Month: time.February},
		{Year: 2025, Month: time.April},
	}

	resp := MissingPeriodsFromDomain("m-1", months)
	if resp.MemberID != "m-1" || len(resp.Months) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Months[0] != "2025-02" || resp.Months[1] != "2025-04" {
		t.Fatalf("unexpected month formatting: %+v", resp.Months)
	}
}
