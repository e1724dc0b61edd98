package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFundMovement_Validate(t *testing.T) {
	tests := []struct {
		name        string
		kind        MovementKind
		amount      decimal.Decimal
		expectError error
	}{
		{
			name:   "valid deposit",
			kind:   MovementKindDeposit,
			amount: decimal.NewFromInt(100),
		},
		{
			name:   "valid withdrawal",
			kind:   MovementKindWithdrawal,
			amount: decimal.NewFromInt(50),
		},
		{
			name:        "zero amount",
			kind:        MovementKindDeposit,
			amount:      decimal.Zero,
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			kind:        MovementKindWithdrawal,
			amount:      decimal.NewFromInt(-10),
			expectError: ErrInvalidAmount,
		},
		{
			name:        "unknown kind",
			kind:        MovementKind("transfer"),
			amount:      decimal.NewFromInt(10),
			expectError: ErrInvalidMovementKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &FundMovement{Kind: tt.kind, Amount: tt.amount}
			if err := m.Validate(); err != tt.expectError {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestFundMovement_SignedAmount(t *testing.T) {
	deposit := &FundMovement{Kind: MovementKindDeposit, Amount: decimal.NewFromInt(100)}
	if !deposit.SignedAmount().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100, got %s", deposit.SignedAmount())
	}

	withdrawal := &FundMovement{Kind: MovementKindWithdrawal, Amount: decimal.NewFromInt(100)}
	if !withdrawal.SignedAmount().Equal(decimal.NewFromInt(-100)) {
		t.Errorf("expected -100, got %s", withdrawal.SignedAmount())
	}
}
