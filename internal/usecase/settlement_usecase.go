package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/infrastructure/metrics"
)

// SettlementUseCase records vehicle sales and exposes settlement history.
type SettlementUseCase struct {
	txManager      TransactionManager
	vehicleRepo    VehicleRepository
	expenseRepo    ExpenseRepository
	settlementRepo SettlementRepository
	feePolicy      FeePolicyResolver
	outboxRepo     OutboxRepository
	auditRepo      AuditRepository
	idGen          IDGenerator
	metrics        *metrics.Metrics
	stats          StatsInvalidator
}

func NewSettlementUseCase(
	txManager TransactionManager,
	vehicleRepo VehicleRepository,
	expenseRepo ExpenseRepository,
	settlementRepo SettlementRepository,
	feePolicy FeePolicyResolver,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:      txManager,
		vehicleRepo:    vehicleRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		feePolicy:      feePolicy,
		outboxRepo:     outboxRepo,
		auditRepo:      auditRepo,
		idGen:          idGen,
		metrics:        metrics,
	}
}

// SetStatsInvalidator wires cached member-stats invalidation. Optional.
func (uc *SettlementUseCase) SetStatsInvalidator(stats StatsInvalidator) {
	uc.stats = stats
}

// SettleInput represents input for settling a vehicle sale.
type SettleInput struct {
	VehicleID string
	SoldPrice decimal.Decimal
	SoldDate  time.Time
	ActorID   string
	ActorRole domain.Role
}

// Settle records the sale of a vehicle: it snapshots the vehicle and its
// expense total, applies the current franchise fee policy, writes the
// settlement, and flips the vehicle to SOLD. The whole flow runs in one
// transaction with the vehicle row locked, and the status flip is guarded by
// a conditional update, so concurrent calls settle a vehicle exactly once.
func (uc *SettlementUseCase) Settle(ctx context.Context, input SettleInput) (*domain.SaleSettlement, error) {
	if err := domain.ValidateAmount(input.SoldPrice); err != nil {
		return nil, err
	}

	start := time.Now()
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	vehicle, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, tx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	// Members can only settle their own vehicles. A foreign vehicle is
	// indistinguishable from a missing one.
	if !input.ActorRole.CanActForOthers() && vehicle.MemberID != input.ActorID {
		return nil, domain.ErrVehicleNotFound
	}

	if vehicle.IsSold() {
		return nil, domain.ErrVehicleAlreadySold
	}

	expensesTotal, err := uc.expenseRepo.TotalByVehicleTx(txCtx, tx, vehicle.ID)
	if err != nil {
		return nil, err
	}

	// Policy is read fresh for every settlement, never cached across sales.
	feePct, err := uc.feePolicy.FranchiseFeePct(txCtx)
	if err != nil {
		return nil, err
	}

	figures := domain.ComputeSettlement(vehicle.PurchasePrice, expensesTotal, input.SoldPrice, feePct)

	soldDate := input.SoldDate
	if soldDate.IsZero() {
		soldDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	settlement := &domain.SaleSettlement{
		ID:                    uc.idGen.Generate(),
		VehicleID:             vehicle.ID,
		MemberID:              vehicle.MemberID,
		SoldPrice:             input.SoldPrice,
		SoldDate:              soldDate,
		VINSnapshot:           vehicle.VIN,
		MakeSnapshot:          vehicle.Make,
		ModelSnapshot:         vehicle.Model,
		YearSnapshot:          vehicle.Year,
		PurchasePriceSnapshot: vehicle.PurchasePrice,
		PurchaseDateSnapshot:  vehicle.PurchaseDate,
		ExpensesSnapshot:      expensesTotal,
		Profit:                figures.Profit,
		FeePct:                feePct,
		FeeAmount:             figures.FeeAmount,
		NetProfit:             figures.NetProfit,
		CreatedAt:             now,
	}

	if err := uc.settlementRepo.Create(txCtx, tx, settlement); err != nil {
		return nil, err
	}

	sold, err := uc.vehicleRepo.MarkSoldIfInStock(txCtx, tx, vehicle.ID, now)
	if err != nil {
		return nil, err
	}
	if !sold {
		return nil, domain.ErrVehicleAlreadySold
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   settlement.ID,
		AggregateType: domain.AggregateTypeSettlement,
		EventType:     domain.EventTypeSettlementCreated,
		Payload: map[string]any{
			"settlement_id": settlement.ID,
			"vehicle_id":    settlement.VehicleID,
			"member_id":     settlement.MemberID,
			"sold_price":    settlement.SoldPrice.String(),
			"net_profit":    settlement.NetProfit.String(),
			"event_at":      now.Format(time.RFC3339),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementsCreated.Inc()
		uc.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}

	if uc.stats != nil {
		uc.stats.InvalidateStats(ctx, vehicle.MemberID)
	}

	// Audit failures never fail the settlement.
	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			MemberID:     input.ActorID,
			Action:       string(domain.AuditActionVehicleSell),
			ResourceType: "vehicle",
			ResourceID:   vehicle.ID,
			AfterState:   domain.MarshalState(settlement),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now(),
		}
		_ = uc.auditRepo.Create(ctx, auditLog)
	}

	return settlement, nil
}

// GetSettlement retrieves a settlement by ID. Members only see their own.
func (uc *SettlementUseCase) GetSettlement(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.SaleSettlement, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actorRole.CanActForOthers() && settlement.MemberID != actorID {
		return nil, domain.ErrSettlementNotFound
	}

	return settlement, nil
}

// ListSettlementsInput represents input for listing settlements.
type ListSettlementsInput struct {
	ActorID   string
	ActorRole domain.Role
	MemberID  string
	Limit     int
	Offset    int
}

// ListSettlements lists settlements. Members are always scoped to themselves;
// admins may scope to any member or list across the club.
func (uc *SettlementUseCase) ListSettlements(ctx context.Context, input ListSettlementsInput) ([]*domain.SaleSettlement, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	memberID := input.MemberID
	if !input.ActorRole.CanActForOthers() {
		memberID = input.ActorID
	}

	if memberID == "" {
		return uc.settlementRepo.List(ctx, limit, offset)
	}
	return uc.settlementRepo.ListByMember(ctx, memberID, limit, offset)
}
