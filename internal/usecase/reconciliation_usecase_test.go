package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
	"github.com/tctpro/clubledger/internal/usecase/mocks"
)

type reconFixture struct {
	uc             *usecase.ReconciliationUseCase
	memberRepo     *mocks.MockMemberRepository
	settlementRepo *mocks.MockSettlementRepository
	fundRepo       *mocks.MockFundRepository
	vehicleRepo    *mocks.MockVehicleRepository
}

func newReconFixture() *reconFixture {
	f := &reconFixture{
		memberRepo:     mocks.NewMockMemberRepository(),
		settlementRepo: mocks.NewMockSettlementRepository(),
		fundRepo:       mocks.NewMockFundRepository(),
		vehicleRepo:    mocks.NewMockVehicleRepository(),
	}
	f.uc = usecase.NewReconciliationUseCase(f.memberRepo, f.settlementRepo, f.fundRepo, f.vehicleRepo)
	return f
}

func consistentSettlement(id, memberID string) *domain.SaleSettlement {
	return &domain.SaleSettlement{
		ID:                    id,
		VehicleID:             "veh-" + id,
		MemberID:              memberID,
		SoldPrice:             decimal.NewFromInt(13000),
		PurchasePriceSnapshot: decimal.NewFromInt(10000),
		ExpensesSnapshot:      decimal.NewFromInt(500),
		Profit:                decimal.NewFromInt(2500),
		FeePct:                decimal.NewFromInt(10),
		FeeAmount:             decimal.NewFromInt(250),
		NetProfit:             decimal.NewFromInt(2250),
	}
}

func TestReconciliationUseCase_ReconcileMember(t *testing.T) {
	ctx := context.Background()
	f := newReconFixture()

	_ = f.memberRepo.Create(ctx, &domain.Member{ID: "mem-1", Email: "jo@club.example", Active: true})
	_ = f.fundRepo.Create(ctx, &domain.FundMovement{
		ID: "mv-1", MemberID: "mem-1", Kind: domain.MovementKindDeposit,
		Amount: decimal.NewFromInt(1000), Status: domain.MovementStatusApproved,
	})
	_ = f.vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 700))

	result, err := f.uc.ReconcileMember(ctx, "mem-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.AvailableBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("available: expected 300, got %s", result.AvailableBalance)
	}
	if !result.InvestedCapital.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("invested: expected 1000, got %s", result.InvestedCapital)
	}
	if !result.PurchaseCost.Equal(decimal.NewFromInt(700)) {
		t.Errorf("purchase cost: expected 700, got %s", result.PurchaseCost)
	}

	if _, err := f.uc.ReconcileMember(ctx, "ghost"); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Errorf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestReconciliationUseCase_CheckSettlements(t *testing.T) {
	ctx := context.Background()

	t.Run("clean history", func(t *testing.T) {
		f := newReconFixture()
		_ = f.settlementRepo.Create(ctx, nil, consistentSettlement("stl-1", "mem-1"))
		_ = f.settlementRepo.Create(ctx, nil, consistentSettlement("stl-2", "mem-1"))

		discrepancies, checked, err := f.uc.CheckSettlements(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if checked != 2 {
			t.Errorf("expected 2 checked, got %d", checked)
		}
		if len(discrepancies) != 0 {
			t.Errorf("expected no discrepancies, got %d", len(discrepancies))
		}
	})

	t.Run("flags tampered figures", func(t *testing.T) {
		f := newReconFixture()
		tampered := consistentSettlement("stl-1", "mem-1")
		tampered.NetProfit = decimal.NewFromInt(9999)
		_ = f.settlementRepo.Create(ctx, nil, tampered)

		discrepancies, checked, err := f.uc.CheckSettlements(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if checked != 1 {
			t.Errorf("expected 1 checked, got %d", checked)
		}
		if len(discrepancies) != 1 || discrepancies[0].SettlementID != "stl-1" {
			t.Fatalf("expected stl-1 flagged, got %+v", discrepancies)
		}
	})
}

func TestReconciliationUseCase_GenerateReport(t *testing.T) {
	ctx := context.Background()
	f := newReconFixture()

	_ = f.memberRepo.Create(ctx, &domain.Member{ID: "mem-1", Email: "jo@club.example", Active: true})
	_ = f.memberRepo.Create(ctx, &domain.Member{ID: "mem-2", Email: "sam@club.example", Active: true})
	_ = f.settlementRepo.Create(ctx, nil, consistentSettlement("stl-1", "mem-1"))

	report, err := f.uc.GenerateReport(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.MembersChecked != 2 {
		t.Errorf("expected 2 members checked, got %d", report.MembersChecked)
	}
	if report.SettlementsChecked != 1 {
		t.Errorf("expected 1 settlement checked, got %d", report.SettlementsChecked)
	}
	if !report.Consistent {
		t.Error("expected consistent report")
	}
}
