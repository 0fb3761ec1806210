package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cajafund/cajafund/internal/adapter/http/handler"
	apimiddleware "github.com/cajafund/cajafund/internal/adapter/http/middleware"
	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"national_id":"123456789","first_name":"Ana","last_name":"Reyes"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/members/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/members/",
		"GET /api/v1/members/",
		"GET /api/v1/members/{id}",
		"DELETE /api/v1/members/{id}",
		"POST /api/v1/members/{id}/savings/entries",
		"GET /api/v1/members/{id}/savings/missing-periods",
		"POST /api/v1/admin-expenses/entries",
		"PUT /api/v1/entries/{entryID}",
		"POST /api/v1/loans/",
		"POST /api/v1/loans/{id}/approve",
		"GET /api/v1/loans/{id}/schedule",
		"POST /api/v1/installments/{id}/pay",
		"GET /api/v1/config/",
		"PUT /api/v1/config/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		MemberHandler:     handler.NewMemberHandler(&stubMemberService{}),
		LedgerHandler:     handler.NewLedgerHandler(&stubLedgerService{}),
		LoanHandler:       handler.NewLoanHandler(&stubLoanService{}),
		RepaymentHandler:  handler.NewRepaymentHandler(&stubRepaymentService{}),
		FundConfigHandler: handler.NewFundConfigHandler(&stubFundConfigService{}),
		HealthHandler:     &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubMemberService struct{}

func (stubMemberService) CreateMember(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error) {
	return &domain.Member{ID: "m-1"}, nil
}

func (stubMemberService) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return &domain.Member{ID: id}, nil
}

func (stubMemberService) ListMembers(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Member, error) {
	return []*domain.Member{}, nil
}

func (stubMemberService) DeactivateMember(ctx context.Context, id string) (*domain.Member, error) {
	return &domain.Member{ID: id}, nil
}

type stubLedgerService struct{}

func (stubLedgerService) AppendEntry(ctx context.Context, input usecase.AppendEntryInput) (*domain.LedgerEntry, error) {
	return &domain.LedgerEntry{ID: "e-1", Stream: input.Stream}, nil
}

func (stubLedgerService) EditEntry(ctx context.Context, id string, input usecase.EditEntryInput) (*domain.LedgerEntry, error) {
	return &domain.LedgerEntry{ID: id}, nil
}

func (stubLedgerService) ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error) {
	return []*domain.LedgerEntry{}, nil
}

func (stubLedgerService) Totals(ctx context.Context, stream domain.Stream, from, to time.Time) (*domain.StreamTotals, error) {
	return &domain.StreamTotals{}, nil
}

func (stubLedgerService) MissingPeriods(ctx context.Context, memberID string, anchor time.Time) ([]domain.Month, error) {
	return []domain.Month{}, nil
}

func (stubLedgerService) CheckStream(ctx context.Context, stream domain.Stream) (*usecase.StreamCheck, error) {
	return &usecase.StreamCheck{Stream: stream, Consistent: true}, nil
}

func (stubLedgerService) RecalculateStream(ctx context.Context, stream domain.Stream) (int, error) {
	return 0, nil
}

type stubLoanService struct{}

func (stubLoanService) CreateLoan(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error) {
	return &domain.Loan{ID: "loan-1"}, nil
}

func (stubLoanService) UpdateLoan(ctx context.Context, id string, input usecase.UpdateLoanInput) (*domain.Loan, error) {
	return &domain.Loan{ID: id}, nil
}

func (stubLoanService) ApproveLoan(ctx context.Context, id string, approvalDate *time.Time) (*domain.Loan, error) {
	return &domain.Loan{ID: id}, nil
}

func (stubLoanService) RejectLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return &domain.Loan{ID: id}, nil
}

func (stubLoanService) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return &domain.Loan{ID: id}, nil
}

func (stubLoanService) GetSchedule(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	return []*domain.Installment{}, nil
}

func (stubLoanService) ListLoans(ctx context.Context, input usecase.ListLoansInput) ([]*domain.Loan, error) {
	return []*domain.Loan{}, nil
}

type stubRepaymentService struct{}

func (stubRepaymentService) RecordPayment(ctx context.Context, installmentID string, input usecase.RecordPaymentInput) (*usecase.PaymentResult, error) {
	return &usecase.PaymentResult{
		Installment: &domain.Installment{ID: installmentID},
		Loan:        &domain.Loan{ID: "loan-1"},
	}, nil
}

type stubFundConfigService struct{}

func (stubFundConfigService) Current(ctx context.Context) (*domain.FundConfiguration, error) {
	return &domain.FundConfiguration{ID: domain.FundConfigID}, nil
}

func (stubFundConfigService) Update(ctx context.Context, input usecase.UpdateFundConfigInput) (*domain.FundConfiguration, error) {
	return &domain.FundConfiguration{ID: domain.FundConfigID}, nil
}

func (stubFundConfigService) Reload(ctx context.Context) error {
	return nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
