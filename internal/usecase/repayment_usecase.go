package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/metrics"
)

// RepaymentUseCase records installment payments and runs the payoff flow:
// when the last unpaid installment of a loan is settled, the loan becomes
// Terminated and its total interest is distributed across the active
// members' savings streams.
type RepaymentUseCase struct {
	txManager       TransactionManager
	loanRepo        LoanRepository
	installmentRepo InstallmentRepository
	memberRepo      MemberRepository
	ledgerRepo      LedgerRepository
	idGen           IDGenerator
	retrier         Retrier
}

// NewRepaymentUseCase creates a new RepaymentUseCase.
func NewRepaymentUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	installmentRepo InstallmentRepository,
	memberRepo MemberRepository,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	retrier Retrier,
) *RepaymentUseCase {
	return &RepaymentUseCase{
		txManager:       txManager,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		memberRepo:      memberRepo,
		ledgerRepo:      ledgerRepo,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// RecordPaymentInput represents input for recording an installment payment.
type RecordPaymentInput struct {
	PaidDate time.Time
	Note     string
	ProofRef string
}

// PaymentResult reports what a recorded payment did. Distributed is zero
// unless this payment terminated the loan.
type PaymentResult struct {
	Installment *domain.Installment
	Loan        *domain.Loan
	PaidOff     bool
	Distributed decimal.Decimal
}

// RecordPayment marks one installment as paid. Payments against a
// Terminated loan are refused outright; paying an installment that is
// already paid is a benign no-op. The payoff side effects run in the same
// transaction as the payment itself.
func (uc *RepaymentUseCase) RecordPayment(ctx context.Context, installmentID string, input RecordPaymentInput) (*PaymentResult, error) {
	var result *PaymentResult

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		inst, err := uc.installmentRepo.GetByIDForUpdate(ctx, tx, installmentID)
		if err != nil {
			return err
		}

		loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, inst.LoanID)
		if err != nil {
			return err
		}

		if loan.Status == domain.LoanTerminated {
			return domain.ErrLoanTerminated
		}

		if loan.Status != domain.LoanApproved {
			return domain.ErrLoanNotApproved
		}

		if inst.Paid {
			result = &PaymentResult{Installment: inst, Loan: loan, Distributed: decimal.Zero}
			return nil
		}

		paidDate := input.PaidDate
		if paidDate.IsZero() {
			paidDate = time.Now().UTC()
		}

		if err := uc.installmentRepo.MarkPaid(ctx, tx, inst.ID, paidDate, input.Note, input.ProofRef); err != nil {
			return err
		}

		inst.Paid = true
		inst.PaidDate = &paidDate
		inst.Note = input.Note
		inst.ProofRef = input.ProofRef

		unpaid, err := uc.installmentRepo.CountUnpaidByLoan(ctx, tx, loan.ID)
		if err != nil {
			return err
		}

		result = &PaymentResult{Installment: inst, Loan: loan, Distributed: decimal.Zero}

		if unpaid == 0 {
			loan.Status = domain.LoanTerminated
			loan.UpdatedAt = time.Now().UTC()

			if err := uc.loanRepo.Update(ctx, tx, loan); err != nil {
				return err
			}

			distributed, err := uc.distributeInterest(ctx, tx, loan, paidDate)
			if err != nil {
				return err
			}

			result.PaidOff = true
			result.Distributed = distributed
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()

	if result.PaidOff {
		metrics.LoansTerminated.Inc()
		metrics.DistributionsRun.Inc()
		metrics.DistributionAmount.Observe(result.Distributed.InexactFloat64())
	}

	return result, nil
}

// distributeInterest splits the loan's total collected interest evenly
// across the active members and appends one savings entry per member. The
// per-member share is rounded to the cent; the unrounded remainder stays in
// the fund.
func (uc *RepaymentUseCase) distributeInterest(ctx context.Context, tx Transaction, loan *domain.Loan, at time.Time) (decimal.Decimal, error) {
	total, err := uc.installmentRepo.SumInterestByLoan(ctx, tx, loan.ID)
	if err != nil {
		return decimal.Zero, err
	}

	if !total.IsPositive() {
		return decimal.Zero, nil
	}

	members, err := uc.memberRepo.ListActive(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if len(members) == 0 {
		return decimal.Zero, nil
	}

	share := domain.Round2(total.Div(decimal.NewFromInt(int64(len(members)))))
	if !share.IsPositive() {
		return decimal.Zero, nil
	}

	description := fmt.Sprintf("interest distribution loan %s", loan.ID)

	for _, m := range members {
		_, err := appendEntryTx(ctx, tx, uc.ledgerRepo, uc.idGen, AppendEntryInput{
			Stream:      domain.SavingsStream(m.ID),
			EntryDate:   at,
			Inflow:      share,
			Description: description,
		})
		if err != nil {
			return decimal.Zero, err
		}
	}

	return share.Mul(decimal.NewFromInt(int64(len(members)))), nil
}
