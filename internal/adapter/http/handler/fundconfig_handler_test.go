package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/adapter/http/dto"
	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

type fundConfigServiceStub struct {
	currentFn func(ctx context.Context) (*domain.FundConfiguration, error)
	updateFn  func(ctx context.Context, input usecase.UpdateFundConfigInput) (*domain.FundConfiguration, error)
	reloadFn  func(ctx context.Context) error
}

func (s *fundConfigServiceStub) Current(ctx context.Context) (*domain.FundConfiguration, error) {
	return s.currentFn(ctx)
}

func (s *fundConfigServiceStub) Update(ctx context.Context, input usecase.UpdateFundConfigInput) (*domain.FundConfiguration, error) {
	return s.updateFn(ctx, input)
}

func (s *fundConfigServiceStub) Reload(ctx context.Context) error {
	return s.reloadFn(ctx)
}

func TestFundConfigHandler_Get(t *testing.T) {
	h := NewFundConfigHandler(&fundConfigServiceStub{
		currentFn: func(ctx context.Context) (*domain.FundConfiguration, error) {
			return &domain.FundConfiguration{
				ID:              domain.FundConfigID,
				InterestRatePct: decimal.RequireFromString("12"),
				MaxTermMonths:   36,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.FundConfigResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.InterestRatePct.Equal(decimal.RequireFromString("12")) || resp.MaxTermMonths != 36 {
		t.Fatalf("unexpected config: %+v", resp)
	}
}

func TestFundConfigHandler_Update_ValidationError(t *testing.T) {
	h := NewFundConfigHandler(&fundConfigServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateFundConfigInput) (*domain.FundConfiguration, error) {
			return nil, &domain.ValidationError{Field: "max_term_months", Message: "must be positive"}
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/config",
		bytes.NewBufferString(`{"interest_rate_pct":"12","max_term_months":0}`))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFundConfigHandler_Update_Success(t *testing.T) {
	var captured usecase.UpdateFundConfigInput
	h := NewFundConfigHandler(&fundConfigServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateFundConfigInput) (*domain.FundConfiguration, error) {
			captured = input
			return &domain.FundConfiguration{
				ID:              domain.FundConfigID,
				InterestRatePct: input.InterestRatePct,
				MaxTermMonths:   input.MaxTermMonths,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/config",
		bytes.NewBufferString(`{"interest_rate_pct":"15","max_term_months":24,"initial_deposit":"75.00","member_fee":"12.00","loan_fee_pct":"1.5"}`))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !captured.InitialDeposit.Equal(decimal.RequireFromString("75.00")) {
		t.Fatalf("unexpected input: %+v", captured)
	}
}

func TestFundConfigHandler_Reload(t *testing.T) {
	reloaded := false
	h := NewFundConfigHandler(&fundConfigServiceStub{
		reloadFn: func(ctx context.Context) error {
			reloaded = true
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/config/reload", nil)
	rec := httptest.NewRecorder()

	h.Reload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !reloaded {
		t.Fatal("expected reload to be invoked")
	}
}
