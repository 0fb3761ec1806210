package domain

import (
	"regexp"
	"strings"
	"time"
)

// MemberStatus is the lifecycle state of a fund member. Members are never
// hard-deleted; an inactive member keeps its ledger history and loans but is
// excluded from listings and profit distribution.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

// Member is a participant of the savings fund.
type Member struct {
	ID         string
	NationalID string
	FirstName  string
	LastName   string
	Email      string
	BirthDate  time.Time
	JoinedAt   time.Time
	Status     MemberStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the member participates in listings and
// interest distribution.
func (m *Member) IsActive() bool {
	return m.Status == MemberActive
}

// CanDeactivate checks the referential guard for soft deletion: a member
// with any open loan, as borrower or guarantor, cannot be deactivated.
func (m *Member) CanDeactivate(openLoans int) error {
	if openLoans > 0 {
		return ErrMemberHasOpenLoans
	}

	return nil
}

var nationalIDRegex = regexp.MustCompile(`^[0-9]{6,15}$`)

// ValidateNationalID validates the unique national ID string.
func ValidateNationalID(id string) error {
	if !nationalIDRegex.MatchString(strings.TrimSpace(id)) {
		return &ValidationError{Field: "national_id", Message: "must be 6 to 15 digits"}
	}

	return nil
}

// ValidateMemberName validates a member name field.
func ValidateMemberName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: field, Message: "must not be empty"}
	}

	if len(name) > 100 {
		return &ValidationError{Field: field, Message: "exceeds 100 characters"}
	}

	return nil
}
