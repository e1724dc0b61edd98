package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
)

// ReconciliationUseCase recomputes derived figures from stored records to
// detect drift between history and the arithmetic that produced it.
type ReconciliationUseCase struct {
	memberRepo     MemberRepository
	settlementRepo SettlementRepository
	fundRepo       FundRepository
	vehicleRepo    VehicleRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	memberRepo MemberRepository,
	settlementRepo SettlementRepository,
	fundRepo FundRepository,
	vehicleRepo VehicleRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		memberRepo:     memberRepo,
		settlementRepo: settlementRepo,
		fundRepo:       fundRepo,
		vehicleRepo:    vehicleRepo,
	}
}

// MemberReconciliation is the recomputed position of one member.
type MemberReconciliation struct {
	MemberID         string
	AvailableBalance decimal.Decimal
	InvestedCapital  decimal.Decimal
	Deposits         decimal.Decimal
	Withdrawals      decimal.Decimal
	PurchaseCost     decimal.Decimal
	CheckedAt        time.Time
}

// ReconcileMember recomputes one member's balances from the ledger.
func (uc *ReconciliationUseCase) ReconcileMember(ctx context.Context, memberID string) (*MemberReconciliation, error) {
	if _, err := uc.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	deposits, withdrawals, err := uc.fundRepo.ApprovedTotals(ctx, memberID)
	if err != nil {
		return nil, err
	}
	purchaseCost, err := uc.vehicleRepo.TotalPurchaseCost(ctx, memberID)
	if err != nil {
		return nil, err
	}

	balance := domain.ComputeBalance(deposits, withdrawals, purchaseCost)

	return &MemberReconciliation{
		MemberID:         memberID,
		AvailableBalance: balance.AvailableBalance,
		InvestedCapital:  balance.InvestedCapital,
		Deposits:         deposits,
		Withdrawals:      withdrawals,
		PurchaseCost:     purchaseCost,
		CheckedAt:        time.Now().UTC(),
	}, nil
}

// SettlementDiscrepancy flags a settlement whose stored figures no longer
// match its own snapshot arithmetic.
type SettlementDiscrepancy struct {
	SettlementID string
	MemberID     string
	Detail       string
}

// CheckSettlements revalidates the arithmetic of every stored settlement.
func (uc *ReconciliationUseCase) CheckSettlements(ctx context.Context) ([]*SettlementDiscrepancy, int, error) {
	limit, offset, _ := domain.ValidatePagination(10000, 0)

	checked := 0
	var discrepancies []*SettlementDiscrepancy
	for {
		settlements, err := uc.settlementRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, checked, err
		}
		if len(settlements) == 0 {
			break
		}

		for _, s := range settlements {
			checked++
			if err := s.Validate(); err != nil {
				discrepancies = append(discrepancies, &SettlementDiscrepancy{
					SettlementID: s.ID,
					MemberID:     s.MemberID,
					Detail:       err.Error(),
				})
			}
		}

		if len(settlements) < limit {
			break
		}
		offset += limit
	}

	return discrepancies, checked, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	MembersChecked     int
	Members            []*MemberReconciliation
	SettlementsChecked int
	Discrepancies      []*SettlementDiscrepancy
	Consistent         bool
	CheckedAt          time.Time
}

// GenerateReport reconciles every member and revalidates every settlement.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	limit, offset, _ := domain.ValidatePagination(10000, 0)
	members, err := uc.memberRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	results := make([]*MemberReconciliation, 0, len(members))
	for _, member := range members {
		result, err := uc.ReconcileMember(ctx, member.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile member %s: %w", member.ID, err)
		}
		results = append(results, result)
	}

	discrepancies, checked, err := uc.CheckSettlements(ctx)
	if err != nil {
		return nil, err
	}

	return &ReconciliationReport{
		MembersChecked:     len(results),
		Members:            results,
		SettlementsChecked: checked,
		Discrepancies:      discrepancies,
		Consistent:         len(discrepancies) == 0,
		CheckedAt:          time.Now().UTC(),
	}, nil
}
