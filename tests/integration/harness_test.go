package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/cajafund/cajafund/internal/adapter/http"
	"github.com/cajafund/cajafund/internal/adapter/http/handler"
	postgresrepo "github.com/cajafund/cajafund/internal/adapter/repository/postgres"
	redisrepo "github.com/cajafund/cajafund/internal/adapter/repository/redis"
	"github.com/cajafund/cajafund/internal/usecase"
	"github.com/cajafund/cajafund/tests/testutil"
)

// testEnv wires the full stack against a real database and an in-process
// redis, the same assembly the server entrypoint performs.
type testEnv struct {
	DB     *testutil.TestDB
	Router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgresrepo.NewTxManager(pool)
	memberRepo := postgresrepo.NewMemberRepository(pool)
	loanRepo := postgresrepo.NewLoanRepository(pool)
	installmentRepo := postgresrepo.NewInstallmentRepository(pool)
	ledgerRepo := postgresrepo.NewLedgerRepository(pool)
	fundConfigRepo := postgresrepo.NewFundConfigRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	idGen := postgresrepo.NewULIDGenerator()
	retrier := postgresrepo.NewRetrier()

	fundConfigUC := usecase.NewFundConfigUseCase(fundConfigRepo, cache, zerolog.Nop())
	memberUC := usecase.NewMemberUseCase(txManager, memberRepo, loanRepo, ledgerRepo, fundConfigUC, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, memberRepo, idGen, retrier)
	loanUC := usecase.NewLoanUseCase(txManager, loanRepo, installmentRepo, memberRepo, ledgerRepo, fundConfigUC, idGen, retrier)
	repaymentUC := usecase.NewRepaymentUseCase(txManager, loanRepo, installmentRepo, memberRepo, ledgerRepo, idGen, retrier)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		MemberHandler:     handler.NewMemberHandler(memberUC),
		LedgerHandler:     handler.NewLedgerHandler(ledgerUC),
		LoanHandler:       handler.NewLoanHandler(loanUC),
		RepaymentHandler:  handler.NewRepaymentHandler(repaymentUC),
		FundConfigHandler: handler.NewFundConfigHandler(fundConfigUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  redisrepo.NewIdempotencyStore(redisClient),
	})

	return &testEnv{DB: testDB, Router: router}
}

// do runs one request through the router and decodes the JSON response
// into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path string, payload any, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e.Router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %s: %v", rec.Body.String(), err)
		}
	}

	return rec.Code
}
