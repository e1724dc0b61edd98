package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tags a fund movement as money entering or leaving the club.
// The sign of a movement is always derived from this tag, never from notes.
type MovementKind string

const (
	MovementKindDeposit    MovementKind = "deposit"
	MovementKindWithdrawal MovementKind = "withdrawal"
)

// IsValid checks if the kind is a valid movement kind
func (k MovementKind) IsValid() bool {
	return k == MovementKindDeposit || k == MovementKindWithdrawal
}

type MovementStatus string

const (
	MovementStatusPending  MovementStatus = "pending"
	MovementStatusApproved MovementStatus = "approved"
	MovementStatusRejected MovementStatus = "rejected"
)

// FundMovement is an append-only ledger row for member capital.
// Amount is always a positive magnitude.
type FundMovement struct {
	ID              string
	MemberID        string
	Kind            MovementKind
	Amount          decimal.Decimal
	Status          MovementStatus
	Notes           string
	RejectionReason string
	ReviewedBy      string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

// Validate checks if the movement is well formed.
func (m *FundMovement) Validate() error {
	if !m.Kind.IsValid() {
		return ErrInvalidMovementKind
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// SignedAmount returns the movement's contribution to a balance:
// positive for deposits, negative for withdrawals.
func (m *FundMovement) SignedAmount() decimal.Decimal {
	if m.Kind == MovementKindWithdrawal {
		return m.Amount.Neg()
	}
	return m.Amount
}

// IsPending reports whether the movement still awaits review.
func (m *FundMovement) IsPending() bool {
	return m.Status == MovementStatusPending
}
