package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoanTransitions(t *testing.T) {
	tests := []struct {
		status     LoanStatus
		canEdit    bool
		canApprove bool
		canReject  bool
	}{
		{LoanRequested, true, true, true},
		{LoanPending, true, true, true},
		{LoanApproved, false, false, false},
		{LoanRejected, false, false, false},
		{LoanTerminated, false, false, false},
	}

	for _, tt := range tests {
		loan := &Loan{Status: tt.status}

		if got := loan.CanEdit() == nil; got != tt.canEdit {
			t.Errorf("%s: CanEdit = %v, want %v", tt.status, got, tt.canEdit)
		}

		if got := loan.CanApprove() == nil; got != tt.canApprove {
			t.Errorf("%s: CanApprove = %v, want %v", tt.status, got, tt.canApprove)
		}

		if got := loan.CanReject() == nil; got != tt.canReject {
			t.Errorf("%s: CanReject = %v, want %v", tt.status, got, tt.canReject)
		}
	}
}

func TestLoanValidateTerm(t *testing.T) {
	loan := &Loan{TermMonths: 36}
	if err := loan.ValidateTerm(24); err == nil {
		t.Fatal("expected validation error for term over maximum")
	} else if ve, ok := AsValidationError(err); !ok || ve.Field != "term_months" {
		t.Fatalf("expected field-scoped error on term_months, got %v", err)
	}

	loan.TermMonths = 0
	if err := loan.ValidateTerm(24); err == nil {
		t.Fatal("expected validation error for zero term")
	}

	loan.TermMonths = 24
	if err := loan.ValidateTerm(24); err != nil {
		t.Fatalf("term at maximum should pass: %v", err)
	}
}

func TestLoanMarkApproved(t *testing.T) {
	loan := &Loan{
		Status:            LoanPending,
		InstallmentAmount: decimal.NewNullDecimal(decimal.NewFromInt(100)),
	}

	at := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	loan.MarkApproved(at)

	if loan.Status != LoanApproved {
		t.Errorf("status = %s, want approved", loan.Status)
	}

	if loan.ApprovalDate == nil || !loan.ApprovalDate.Equal(at) {
		t.Errorf("approval date = %v, want %v", loan.ApprovalDate, at)
	}

	// cached installment amount is cleared so the scheduler recomputes it
	if loan.InstallmentAmount.Valid {
		t.Error("installment amount should be cleared on approval")
	}
}

func TestLoanOriginationFee(t *testing.T) {
	loan := &Loan{ApprovedAmount: decimal.RequireFromString("2500.00")}

	fee := loan.OriginationFee(decimal.RequireFromString("2"))
	if fee.StringFixed(2) != "50.00" {
		t.Errorf("fee = %s, want 50.00", fee.StringFixed(2))
	}

	fee = loan.OriginationFee(decimal.RequireFromString("1.5"))
	if fee.StringFixed(2) != "37.50" {
		t.Errorf("fee = %s, want 37.50", fee.StringFixed(2))
	}
}

func TestLoanOpen(t *testing.T) {
	for _, s := range []LoanStatus{LoanRequested, LoanPending, LoanApproved} {
		if !(&Loan{Status: s}).Open() {
			t.Errorf("%s should be open", s)
		}
	}

	for _, s := range []LoanStatus{LoanRejected, LoanTerminated} {
		if (&Loan{Status: s}).Open() {
			t.Errorf("%s should be closed", s)
		}
	}
}

func TestMemberCanDeactivate(t *testing.T) {
	m := &Member{Status: MemberActive}

	if err := m.CanDeactivate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.CanDeactivate(2); !errors.Is(err, ErrMemberHasOpenLoans) {
		t.Fatalf("expected ErrMemberHasOpenLoans, got %v", err)
	}
}

func TestValidateNationalID(t *testing.T) {
	if err := ValidateNationalID("0912345678"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, bad := range []string{"", "12345", "abc123", "1234567890123456"} {
		if err := ValidateNationalID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
