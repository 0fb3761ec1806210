package domain

import (
	"errors"
	"fmt"
)

var (
	// Member errors
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberInactive     = errors.New("member is inactive")
	ErrMemberHasOpenLoans = errors.New("member holds open loans")
	ErrDuplicateMember    = errors.New("member with this national ID already exists")

	// Loan errors
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanNotApproved   = errors.New("loan is not approved")
	ErrLoanTerminated    = errors.New("loan is already terminated")
	ErrInvalidTransition = errors.New("invalid loan state transition")

	// Schedule errors
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrInvalidTerm         = errors.New("term must be a positive number of months")

	// Ledger errors
	ErrEntryNotFound   = errors.New("ledger entry not found")
	ErrMalformedAmount = errors.New("malformed monetary amount")

	// Configuration errors
	ErrConfigNotFound = errors.New("fund configuration not found")
)

// ValidationError is a field-scoped validation failure. The transition or
// mutation that raised it is aborted with no state change.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// AsValidationError unwraps err as a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
