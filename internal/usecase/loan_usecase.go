package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/metrics"
)

// LoanUseCase drives the loan approval lifecycle and schedule generation.
type LoanUseCase struct {
	txManager       TransactionManager
	loanRepo        LoanRepository
	installmentRepo InstallmentRepository
	memberRepo      MemberRepository
	ledgerRepo      LedgerRepository
	config          ConfigProvider
	idGen           IDGenerator
	retrier         Retrier
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	installmentRepo InstallmentRepository,
	memberRepo MemberRepository,
	ledgerRepo LedgerRepository,
	config ConfigProvider,
	idGen IDGenerator,
	retrier Retrier,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:       txManager,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		memberRepo:      memberRepo,
		ledgerRepo:      ledgerRepo,
		config:          config,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// CreateLoanInput represents input for creating a loan request.
type CreateLoanInput struct {
	BorrowerID      string
	GuarantorID     string
	RequestDate     time.Time
	RequestedAmount decimal.Decimal
	ApprovedAmount  decimal.NullDecimal
	TermMonths      int
	Note            string
}

// CreateLoan creates a loan request in the Requested state. The approved
// amount defaults to the requested amount; the interest rate is stamped
// from the fund configuration and never taken from caller input.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, input CreateLoanInput) (*domain.Loan, error) {
	if !input.RequestedAmount.IsPositive() {
		return nil, &domain.ValidationError{Field: "requested_amount", Message: "must be positive"}
	}

	borrower, err := uc.memberRepo.GetByID(ctx, input.BorrowerID)
	if err != nil {
		return nil, err
	}

	if !borrower.IsActive() {
		return nil, domain.ErrMemberInactive
	}

	if input.GuarantorID != "" {
		if input.GuarantorID == input.BorrowerID {
			return nil, &domain.ValidationError{Field: "guarantor_id", Message: "must differ from borrower"}
		}

		guarantor, err := uc.memberRepo.GetByID(ctx, input.GuarantorID)
		if err != nil {
			return nil, err
		}

		if !guarantor.IsActive() {
			return nil, domain.ErrMemberInactive
		}
	}

	cfg, err := uc.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	requestDate := input.RequestDate
	if requestDate.IsZero() {
		requestDate = now
	}

	approved := domain.Round2(input.RequestedAmount)
	if input.ApprovedAmount.Valid {
		approved = domain.Round2(input.ApprovedAmount.Decimal)
	}

	loan := &domain.Loan{
		ID:              uc.idGen.Generate(),
		BorrowerID:      input.BorrowerID,
		GuarantorID:     input.GuarantorID,
		RequestDate:     requestDate,
		RequestedAmount: domain.Round2(input.RequestedAmount),
		ApprovedAmount:  approved,
		TermMonths:      input.TermMonths,
		InterestRatePct: cfg.InterestRatePct,
		Note:            input.Note,
		Status:          domain.LoanRequested,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := loan.ValidateTerm(cfg.MaxTermMonths); err != nil {
		return nil, err
	}

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	metrics.LoansCreated.Inc()

	return loan, nil
}

// UpdateLoanInput represents input for editing an existing loan request.
// Borrower, guarantor, request date and requested amount are immutable once
// the record exists.
type UpdateLoanInput struct {
	TermMonths     int
	ApprovedAmount decimal.NullDecimal
	Note           string
}

// UpdateLoan edits the mutable fields of a loan request and sends it back
// to Pending for re-review. The interest rate is re-stamped from the fund
// configuration.
func (uc *LoanUseCase) UpdateLoan(ctx context.Context, id string, input UpdateLoanInput) (*domain.Loan, error) {
	loan, err := uc.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := loan.CanEdit(); err != nil {
		return nil, err
	}

	cfg, err := uc.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	loan.TermMonths = input.TermMonths
	loan.Note = input.Note
	loan.InterestRatePct = cfg.InterestRatePct
	if input.ApprovedAmount.Valid {
		loan.ApprovedAmount = domain.Round2(input.ApprovedAmount.Decimal)
	}

	if err := loan.ValidateTerm(cfg.MaxTermMonths); err != nil {
		return nil, err
	}

	loan.Status = domain.LoanPending
	loan.UpdatedAt = time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.loanRepo.Update(ctx, tx, loan); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return loan, nil
}

// ApproveLoan approves a loan effective at the given date (today when
// absent), generates its amortization schedule and posts the origination
// fee on the administrative stream, all in one transaction. Approving a
// loan that already carries installments is a benign no-op.
func (uc *LoanUseCase) ApproveLoan(ctx context.Context, id string, approvalDate *time.Time) (*domain.Loan, error) {
	cfg, err := uc.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	var approved *domain.Loan

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		// Idempotent against double approval: once the schedule exists the
		// whole operation is a no-op.
		if loan.Status == domain.LoanApproved || loan.Status == domain.LoanTerminated {
			approved = loan
			return nil
		}

		if err := loan.CanApprove(); err != nil {
			return err
		}

		if err := loan.ValidateTerm(cfg.MaxTermMonths); err != nil {
			return err
		}

		now := time.Now().UTC()

		at := now
		if approvalDate != nil {
			at = *approvalDate
		}

		loan.MarkApproved(at)
		loan.InterestRatePct = cfg.InterestRatePct
		loan.UpdatedAt = now

		rows, err := domain.BuildSchedule(loan, now)
		if err != nil {
			return err
		}

		for _, row := range rows {
			row.ID = uc.idGen.Generate()
		}

		if err := uc.loanRepo.Update(ctx, tx, loan); err != nil {
			return err
		}

		existing, err := uc.installmentRepo.CountByLoan(ctx, tx, loan.ID)
		if err != nil {
			return err
		}

		if existing == 0 {
			if err := uc.installmentRepo.CreateBatch(ctx, tx, rows); err != nil {
				return err
			}
		}

		fee := loan.OriginationFee(cfg.LoanFeePct)
		if fee.IsPositive() {
			_, err = appendEntryTx(ctx, tx, uc.ledgerRepo, uc.idGen, AppendEntryInput{
				Stream:      domain.AdminExpenseStream(),
				EntryDate:   at,
				Inflow:      fee,
				Description: fmt.Sprintf("loan origination fee %s", loan.ID),
			})
			if err != nil {
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		approved = loan

		metrics.LoansApproved.Inc()
		metrics.SchedulesGenerated.Inc()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return approved, nil
}

// RejectLoan rejects a loan request. Rejection is terminal.
func (uc *LoanUseCase) RejectLoan(ctx context.Context, id string) (*domain.Loan, error) {
	loan, err := uc.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := loan.CanReject(); err != nil {
		return nil, err
	}

	loan.Status = domain.LoanRejected
	loan.UpdatedAt = time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.loanRepo.Update(ctx, tx, loan); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.LoansRejected.Inc()

	return loan, nil
}

// GetLoan retrieves a loan by ID.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return uc.loanRepo.GetByID(ctx, id)
}

// GetSchedule returns the amortization schedule rows of a loan in order.
func (uc *LoanUseCase) GetSchedule(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	if _, err := uc.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}

	return uc.installmentRepo.ListByLoan(ctx, loanID)
}

// ListLoansInput represents input for listing loans.
type ListLoansInput struct {
	MemberID string
	Limit    int
	Offset   int
}

// ListLoans lists loans, optionally filtered to one member.
func (uc *LoanUseCase) ListLoans(ctx context.Context, input ListLoansInput) ([]*domain.Loan, error) {
	limit := clampLimit(input.Limit)

	if input.MemberID != "" {
		return uc.loanRepo.ListByMember(ctx, input.MemberID, limit, input.Offset)
	}

	return uc.loanRepo.List(ctx, limit, input.Offset)
}
