package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres/generated"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool    *pgxpool.Pool
	Queries *generated.Queries
	t       *testing.T
}

// NewTestDB connects to the database named by DATABASE_URL and runs
// migrations. Tests that call it are skipped when the variable is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	migrationsPath := "migrations"
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		// Relative from tests/integration
		migrationsPath = "../../migrations"
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return &TestDB{
		Pool:    pool,
		Queries: generated.New(pool),
		t:       t,
	}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data and restores the seeded fund configuration.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE ledger_entries CASCADE;
		TRUNCATE TABLE installments CASCADE;
		TRUNCATE TABLE loans CASCADE;
		TRUNCATE TABLE members CASCADE;
		TRUNCATE TABLE fund_config CASCADE;
		INSERT INTO fund_config (id, interest_rate_pct, max_term_months, initial_deposit, member_fee, loan_fee_pct, updated_at)
		VALUES ('default', 12.0, 36, 50.00, 10.00, 2.0, NOW());
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestMember inserts an active member directly, bypassing the use
// case so no opening ledger entries are posted.
func (db *TestDB) CreateTestMember(ctx context.Context, nationalID, firstName, lastName string) *domain.Member {
	db.t.Helper()

	now := time.Now().UTC()
	id := ulid.Make().String()
	ts := pgtype.Timestamptz{Time: now, Valid: true}

	err := db.Queries.CreateMember(ctx, generated.CreateMemberParams{
		ID:         id,
		NationalID: nationalID,
		FirstName:  firstName,
		LastName:   lastName,
		JoinedAt:   ts,
		Status:     string(domain.MemberActive),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	})
	if err != nil {
		db.t.Fatalf("failed to create test member: %v", err)
	}

	return &domain.Member{
		ID:         id,
		NationalID: nationalID,
		FirstName:  firstName,
		LastName:   lastName,
		JoinedAt:   now,
		Status:     domain.MemberActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
