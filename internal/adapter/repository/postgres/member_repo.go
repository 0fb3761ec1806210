package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres/generated"
	"github.com/cajafund/cajafund/internal/usecase"
)

// MemberRepository implements usecase.MemberRepository.
type MemberRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a member inside the given transaction, so the opening
// ledger entries land atomically with the member row.
func (r *MemberRepository) Create(ctx context.Context, tx usecase.Transaction, member *domain.Member) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.CreateMember(ctx, generated.CreateMemberParams{
		ID:         member.ID,
		NationalID: member.NationalID,
		FirstName:  member.FirstName,
		LastName:   member.LastName,
		Email:      member.Email,
		BirthDate:  timeToPgTimestamptz(member.BirthDate),
		JoinedAt:   timeToPgTimestamptz(member.JoinedAt),
		Status:     string(member.Status),
		CreatedAt:  timeToPgTimestamptz(member.CreatedAt),
		UpdatedAt:  timeToPgTimestamptz(member.UpdatedAt),
	})
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	row, err := r.queries.GetMemberByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}

		return nil, err
	}

	return rowToMember(row), nil
}

// GetByNationalID retrieves a member by national ID.
func (r *MemberRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	row, err := r.queries.GetMemberByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}

		return nil, err
	}

	return rowToMember(row), nil
}

// List lists members with pagination.
func (r *MemberRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*domain.Member, error) {
	rows, err := r.queries.ListMembers(ctx, generated.ListMembersParams{
		ActiveOnly: activeOnly,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	members := make([]*domain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, rowToMember(row))
	}

	return members, nil
}

// ListActive returns every active member, unpaginated. Interest distribution
// needs the full roster.
func (r *MemberRepository) ListActive(ctx context.Context) ([]*domain.Member, error) {
	rows, err := r.queries.ListActiveMembers(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]*domain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, rowToMember(row))
	}

	return members, nil
}

// SetStatus updates a member's lifecycle status.
func (r *MemberRepository) SetStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.MemberStatus, updatedAt time.Time) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.UpdateMemberStatus(ctx, generated.UpdateMemberStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

func rowToMember(row generated.Member) *domain.Member {
	return &domain.Member{
		ID:         row.ID,
		NationalID: row.NationalID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Email:      row.Email,
		BirthDate:  row.BirthDate.Time,
		JoinedAt:   row.JoinedAt.Time,
		Status:     domain.MemberStatus(row.Status),
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textToPg(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}
