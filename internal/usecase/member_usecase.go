package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/metrics"
)

// MemberUseCase handles the member registry and its ledger side effects.
type MemberUseCase struct {
	txManager  TransactionManager
	memberRepo MemberRepository
	loanRepo   LoanRepository
	ledgerRepo LedgerRepository
	config     ConfigProvider
	idGen      IDGenerator
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(
	txManager TransactionManager,
	memberRepo MemberRepository,
	loanRepo LoanRepository,
	ledgerRepo LedgerRepository,
	config ConfigProvider,
	idGen IDGenerator,
) *MemberUseCase {
	return &MemberUseCase{
		txManager:  txManager,
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		ledgerRepo: ledgerRepo,
		config:     config,
		idGen:      idGen,
	}
}

// CreateMemberInput represents input for registering a member.
type CreateMemberInput struct {
	NationalID string
	FirstName  string
	LastName   string
	Email      string
	BirthDate  time.Time
	JoinedAt   time.Time
}

// CreateMember registers a member and posts the configured opening entries
// in the same transaction: the initial deposit on the member's savings
// stream and the membership fee on the administrative stream.
func (uc *MemberUseCase) CreateMember(ctx context.Context, input CreateMemberInput) (*domain.Member, error) {
	if err := domain.ValidateNationalID(input.NationalID); err != nil {
		return nil, err
	}

	if err := domain.ValidateMemberName("first_name", input.FirstName); err != nil {
		return nil, err
	}

	if err := domain.ValidateMemberName("last_name", input.LastName); err != nil {
		return nil, err
	}

	existing, err := uc.memberRepo.GetByNationalID(ctx, input.NationalID)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	if existing != nil {
		return nil, domain.ErrDuplicateMember
	}

	cfg, err := uc.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	joined := input.JoinedAt
	if joined.IsZero() {
		joined = now
	}

	member := &domain.Member{
		ID:         uc.idGen.Generate(),
		NationalID: input.NationalID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		BirthDate:  input.BirthDate,
		JoinedAt:   joined,
		Status:     domain.MemberActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.memberRepo.Create(ctx, tx, member); err != nil {
		return nil, err
	}

	if cfg.InitialDeposit.IsPositive() {
		_, err = appendEntryTx(ctx, tx, uc.ledgerRepo, uc.idGen, AppendEntryInput{
			Stream:      domain.SavingsStream(member.ID),
			EntryDate:   joined,
			Inflow:      cfg.InitialDeposit,
			Description: "initial deposit",
		})
		if err != nil {
			return nil, err
		}
	}

	if cfg.MemberFee.IsPositive() {
		_, err = appendEntryTx(ctx, tx, uc.ledgerRepo, uc.idGen, AppendEntryInput{
			Stream:      domain.AdminExpenseStream(),
			EntryDate:   joined,
			Inflow:      cfg.MemberFee,
			Description: fmt.Sprintf("membership fee %s", member.NationalID),
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.MembersCreated.Inc()

	return member, nil
}

// GetMember retrieves a member by ID.
func (uc *MemberUseCase) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return uc.memberRepo.GetByID(ctx, id)
}

// ListMembersInput represents input for listing members.
type ListMembersInput struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ListMembers lists members with pagination. Inactive members are excluded
// unless explicitly requested.
func (uc *MemberUseCase) ListMembers(ctx context.Context, input ListMembersInput) ([]*domain.Member, error) {
	return uc.memberRepo.List(ctx, input.ActiveOnly, clampLimit(input.Limit), input.Offset)
}

// DeactivateMember soft-deletes a member. A member holding any open loan,
// as borrower or guarantor, cannot be deactivated. Deactivating an already
// inactive member is a benign no-op.
func (uc *MemberUseCase) DeactivateMember(ctx context.Context, id string) (*domain.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !member.IsActive() {
		return member, nil
	}

	open, err := uc.loanRepo.CountOpenByMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := member.CanDeactivate(open); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.memberRepo.SetStatus(ctx, tx, id, domain.MemberInactive, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	member.Status = domain.MemberInactive
	member.UpdatedAt = now

	metrics.MembersDeactivated.Inc()

	return member, nil
}
