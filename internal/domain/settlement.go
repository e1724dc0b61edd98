package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// SettlementFigures holds the derived amounts of a sale settlement.
type SettlementFigures struct {
	TotalCost decimal.Decimal
	Profit    decimal.Decimal
	FeeAmount decimal.Decimal
	NetProfit decimal.Decimal
}

// ComputeSettlement derives the settlement figures for a sale.
//
// totalCost = purchasePrice + additionalExpenses
// profit    = soldPrice - totalCost (may be negative)
// feeAmount = profit * feePct / 100 when profit is positive, zero otherwise
// netProfit = profit - feeAmount
func ComputeSettlement(purchasePrice, additionalExpenses, soldPrice, feePct decimal.Decimal) SettlementFigures {
	totalCost := purchasePrice.Add(additionalExpenses)
	profit := soldPrice.Sub(totalCost)

	feeAmount := decimal.Zero
	if profit.IsPositive() {
		feeAmount = profit.Mul(feePct).Div(oneHundred)
	}

	return SettlementFigures{
		TotalCost: totalCost,
		Profit:    profit,
		FeeAmount: feeAmount,
		NetProfit: profit.Sub(feeAmount),
	}
}

// SaleSettlement is the immutable record of a vehicle sale. Vehicle attributes
// are snapshotted at settlement time so later edits or deletions of the vehicle
// never change historical figures.
type SaleSettlement struct {
	ID        string
	VehicleID string
	MemberID  string

	SoldPrice decimal.Decimal
	SoldDate  time.Time

	VINSnapshot           string
	MakeSnapshot          string
	ModelSnapshot         string
	YearSnapshot          int
	PurchasePriceSnapshot decimal.Decimal
	PurchaseDateSnapshot  time.Time
	ExpensesSnapshot      decimal.Decimal

	Profit           decimal.Decimal
	FeePct           decimal.Decimal
	FeeAmount        decimal.Decimal
	NetProfit        decimal.Decimal

	CreatedAt time.Time
}

// Validate checks the internal arithmetic of a stored settlement.
// Used by reconciliation to detect drift in historical records.
func (s *SaleSettlement) Validate() error {
	figures := ComputeSettlement(s.PurchasePriceSnapshot, s.ExpensesSnapshot, s.SoldPrice, s.FeePct)
	if !figures.Profit.Equal(s.Profit) ||
		!figures.FeeAmount.Equal(s.FeeAmount) ||
		!figures.NetProfit.Equal(s.NetProfit) {
		return ErrSettlementInconsistent
	}
	return nil
}
