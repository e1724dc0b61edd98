package domain

import "github.com/shopspring/decimal"

// MemberBalance holds the derived balances for one member.
type MemberBalance struct {
	AvailableBalance decimal.Decimal
	InvestedCapital  decimal.Decimal
}

// ComputeBalance derives a member's balances from ledger aggregates.
//
// availableBalance is approved deposits minus approved withdrawals minus the
// purchase cost of every vehicle the member has ever owned, clamped at zero.
// Sold vehicles still count toward purchase cost: sale proceeds settle outside
// the fund ledger.
//
// investedCapital is the larger of gross approved deposits and total purchase
// cost, covering members whose buying outran their recorded deposits.
func ComputeBalance(approvedDeposits, approvedWithdrawals, totalPurchaseCost decimal.Decimal) MemberBalance {
	available := approvedDeposits.Sub(approvedWithdrawals).Sub(totalPurchaseCost)
	if available.IsNegative() {
		available = decimal.Zero
	}

	invested := approvedDeposits
	if totalPurchaseCost.GreaterThan(invested) {
		invested = totalPurchaseCost
	}

	return MemberBalance{
		AvailableBalance: available,
		InvestedCapital:  invested,
	}
}
