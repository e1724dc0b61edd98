package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdditionalExpense is a cost attached to a vehicle after purchase,
// such as repairs, transport, or registration fees.
type AdditionalExpense struct {
	ID          string
	VehicleID   string
	Description string
	Amount      decimal.Decimal
	IncurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the expense is well formed.
func (e *AdditionalExpense) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// SumExpenses totals a set of expenses. Returns zero for an empty set.
func SumExpenses(expenses []*AdditionalExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
