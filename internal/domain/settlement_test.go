package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name          string
		purchasePrice string
		expenses      string
		soldPrice     string
		feePct        string
		wantProfit    string
		wantFee       string
		wantNet       string
	}{
		{
			name:          "profitable sale with fee",
			purchasePrice: "10000",
			expenses:      "500",
			soldPrice:     "13000",
			feePct:        "10",
			wantProfit:    "2500",
			wantFee:       "250",
			wantNet:       "2250",
		},
		{
			name:          "loss - no fee charged",
			purchasePrice: "10000",
			expenses:      "0",
			soldPrice:     "9000",
			feePct:        "10",
			wantProfit:    "-1000",
			wantFee:       "0",
			wantNet:       "-1000",
		},
		{
			name:          "break even - no fee charged",
			purchasePrice: "8000",
			expenses:      "1000",
			soldPrice:     "9000",
			feePct:        "15",
			wantProfit:    "0",
			wantFee:       "0",
			wantNet:       "0",
		},
		{
			name:          "zero fee percentage",
			purchasePrice: "5000",
			expenses:      "250",
			soldPrice:     "7000",
			feePct:        "0",
			wantProfit:    "1750",
			wantFee:       "0",
			wantNet:       "1750",
		},
		{
			name:          "fractional amounts stay exact",
			purchasePrice: "1000.10",
			expenses:      "99.90",
			soldPrice:     "1300",
			feePct:        "10",
			wantProfit:    "200",
			wantFee:       "20",
			wantNet:       "180",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purchase, _ := decimal.NewFromString(tt.purchasePrice)
			expenses, _ := decimal.NewFromString(tt.expenses)
			sold, _ := decimal.NewFromString(tt.soldPrice)
			feePct, _ := decimal.NewFromString(tt.feePct)

			figures := ComputeSettlement(purchase, expenses, sold, feePct)

			wantProfit, _ := decimal.NewFromString(tt.wantProfit)
			wantFee, _ := decimal.NewFromString(tt.wantFee)
			wantNet, _ := decimal.NewFromString(tt.wantNet)

			if !figures.Profit.Equal(wantProfit) {
				t.Errorf("profit: expected %s, got %s", wantProfit, figures.Profit)
			}
			if !figures.FeeAmount.Equal(wantFee) {
				t.Errorf("fee: expected %s, got %s", wantFee, figures.FeeAmount)
			}
			if !figures.NetProfit.Equal(wantNet) {
				t.Errorf("net profit: expected %s, got %s", wantNet, figures.NetProfit)
			}
			if !figures.TotalCost.Equal(purchase.Add(expenses)) {
				t.Errorf("total cost: expected %s, got %s", purchase.Add(expenses), figures.TotalCost)
			}
		})
	}
}

func TestSaleSettlement_Validate(t *testing.T) {
	figures := ComputeSettlement(
		decimal.NewFromInt(10000),
		decimal.NewFromInt(500),
		decimal.NewFromInt(13000),
		decimal.NewFromInt(10),
	)

	settlement := &SaleSettlement{
		SoldPrice:             decimal.NewFromInt(13000),
		PurchasePriceSnapshot: decimal.NewFromInt(10000),
		ExpensesSnapshot:      decimal.NewFromInt(500),
		Profit:                figures.Profit,
		FeePct:                decimal.NewFromInt(10),
		FeeAmount:             figures.FeeAmount,
		NetProfit:             figures.NetProfit,
	}

	if err := settlement.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	settlement.NetProfit = settlement.NetProfit.Add(decimal.NewFromInt(1))
	if err := settlement.Validate(); err != ErrSettlementInconsistent {
		t.Errorf("expected ErrSettlementInconsistent, got %v", err)
	}
}
