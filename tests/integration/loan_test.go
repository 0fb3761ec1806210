package integration

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/adapter/http/dto"
)

func TestLoanLifecycle(t *testing.T) {
	env := newTestEnv(t)

	var member dto.MemberResponse
	code := env.do(t, http.MethodPost, "/api/v1/members/", map[string]any{
		"national_id": "300400500",
		"first_name":  "Carla",
		"last_name":   "Soto",
		"joined_at":   "2025-01-15",
	}, &member)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	var loan dto.LoanResponse
	code = env.do(t, http.MethodPost, "/api/v1/loans/", map[string]any{
		"borrower_id":      member.ID,
		"request_date":     "2025-03-01",
		"requested_amount": "1200.00",
		"term_months":      12,
	}, &loan)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if loan.Status != "requested" {
		t.Fatalf("expected requested status, got %s", loan.Status)
	}
	if !loan.InterestRatePct.Equal(decimal.RequireFromString("12")) {
		t.Fatalf("expected stamped rate 12, got %s", loan.InterestRatePct)
	}
	if !loan.ApprovedAmount.Equal(decimal.RequireFromString("1200.00")) {
		t.Fatalf("expected approved amount to default to requested, got %s", loan.ApprovedAmount)
	}

	t.Run("term above configured maximum rejected", func(t *testing.T) {
		code := env.do(t, http.MethodPost, "/api/v1/loans/", map[string]any{
			"borrower_id":      member.ID,
			"requested_amount": "500.00",
			"term_months":      48,
		}, nil)
		if code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", code)
		}
	})

	t.Run("borrower with open loan cannot be deactivated", func(t *testing.T) {
		code := env.do(t, http.MethodDelete, "/api/v1/members/"+member.ID, nil, nil)
		if code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", code)
		}
	})

	t.Run("approval generates the schedule", func(t *testing.T) {
		var approved dto.LoanResponse
		code := env.do(t, http.MethodPost, "/api/v1/loans/"+loan.ID+"/approve", map[string]any{
			"approval_date": "2025-03-10",
		}, &approved)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if approved.Status != "approved" {
			t.Fatalf("expected approved status, got %s", approved.Status)
		}
		if approved.InstallmentAmount == nil || !approved.InstallmentAmount.Equal(decimal.RequireFromString("106.62")) {
			t.Fatalf("expected installment 106.62, got %v", approved.InstallmentAmount)
		}

		var schedule []*dto.InstallmentResponse
		code = env.do(t, http.MethodGet, "/api/v1/loans/"+loan.ID+"/schedule", nil, &schedule)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if len(schedule) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(schedule))
		}
		if schedule[0].DueDate.Format("2006-01-02") != "2025-03-10" {
			t.Errorf("unexpected first due date: %s", schedule[0].DueDate)
		}

		principal := decimal.Zero
		for _, row := range schedule {
			principal = principal.Add(row.Principal)
		}
		if !principal.Equal(decimal.RequireFromString("1200.00")) {
			t.Errorf("expected principal to sum to 1200.00, got %s", principal)
		}
	})

	t.Run("approval is idempotent", func(t *testing.T) {
		var again dto.LoanResponse
		code := env.do(t, http.MethodPost, "/api/v1/loans/"+loan.ID+"/approve", nil, &again)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if again.Status != "approved" {
			t.Fatalf("expected approved status, got %s", again.Status)
		}

		var schedule []*dto.InstallmentResponse
		code = env.do(t, http.MethodGet, "/api/v1/loans/"+loan.ID+"/schedule", nil, &schedule)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if len(schedule) != 12 {
			t.Fatalf("expected schedule unchanged at 12 rows, got %d", len(schedule))
		}
	})

	t.Run("origination fee posted to admin stream", func(t *testing.T) {
		var entries []*dto.EntryResponse
		code := env.do(t, http.MethodGet, "/api/v1/admin-expenses/entries", nil, &entries)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		// 2% of 1200.00 on top of the membership fee.
		found := false
		for _, e := range entries {
			if e.Inflow.Equal(decimal.RequireFromString("24.00")) {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected a 24.00 origination fee entry, got %+v", entries)
		}
	})

	t.Run("rejecting an approved loan fails", func(t *testing.T) {
		code := env.do(t, http.MethodPost, "/api/v1/loans/"+loan.ID+"/reject", nil, nil)
		if code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", code)
		}
	})

	t.Run("list loans by borrower", func(t *testing.T) {
		var list dto.ListLoansResponse
		code := env.do(t, http.MethodGet, "/api/v1/loans/?member_id="+member.ID, nil, &list)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if len(list.Loans) != 1 {
			t.Fatalf("expected 1 loan, got %d", len(list.Loans))
		}
	})
}

func TestLoanRejection(t *testing.T) {
	env := newTestEnv(t)

	var member dto.MemberResponse
	code := env.do(t, http.MethodPost, "/api/v1/members/", map[string]any{
		"national_id": "400500600",
		"first_name":  "Jorge",
		"last_name":   "Pinto",
	}, &member)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	var loan dto.LoanResponse
	code = env.do(t, http.MethodPost, "/api/v1/loans/", map[string]any{
		"borrower_id":      member.ID,
		"requested_amount": "500.00",
		"term_months":      6,
	}, &loan)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	var rejected dto.LoanResponse
	code = env.do(t, http.MethodPost, "/api/v1/loans/"+loan.ID+"/reject", nil, &rejected)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if rejected.Status != "rejected" {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}

	// Rejection is terminal, so the member is free to leave.
	code = env.do(t, http.MethodDelete, "/api/v1/members/"+member.ID, nil, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}
