package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/infrastructure/metrics"
)

// FundUseCase manages the append-only fund ledger and derived balances.
type FundUseCase struct {
	txManager   TransactionManager
	fundRepo    FundRepository
	memberRepo  MemberRepository
	vehicleRepo VehicleRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
	stats       StatsInvalidator
}

func NewFundUseCase(
	txManager TransactionManager,
	fundRepo FundRepository,
	memberRepo MemberRepository,
	vehicleRepo VehicleRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *FundUseCase {
	return &FundUseCase{
		txManager:   txManager,
		fundRepo:    fundRepo,
		memberRepo:  memberRepo,
		vehicleRepo: vehicleRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// SetStatsInvalidator wires cached member-stats invalidation. Optional.
func (uc *FundUseCase) SetStatsInvalidator(stats StatsInvalidator) {
	uc.stats = stats
}

// RecordDepositInput represents input for recording a deposit.
type RecordDepositInput struct {
	MemberID string
	Amount   decimal.Decimal
	Notes    string
	// ActorID is the member or admin performing the operation.
	ActorID   string
	ActorRole domain.Role
}

// RecordDeposit appends a deposit to the ledger. A member's own request
// enters pending review; an admin deposit is approved immediately.
func (uc *FundUseCase) RecordDeposit(ctx context.Context, input RecordDepositInput) (*domain.FundMovement, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if _, err := uc.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movement := &domain.FundMovement{
		ID:        uc.idGen.Generate(),
		MemberID:  input.MemberID,
		Kind:      domain.MovementKindDeposit,
		Amount:    input.Amount,
		Status:    domain.MovementStatusPending,
		Notes:     input.Notes,
		CreatedAt: now,
	}

	if input.ActorRole.CanReviewFunds() {
		movement.Status = domain.MovementStatusApproved
		movement.ReviewedBy = input.ActorID
		movement.ReviewedAt = &now
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.fundRepo.CreateTx(txCtx, tx, movement); err != nil {
		return nil, err
	}

	if err := uc.createMovementEvent(txCtx, tx, movement, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsRecorded.Inc()
	}
	uc.invalidateStats(ctx, movement.MemberID)

	uc.audit(ctx, input.ActorID, domain.AuditActionFundDeposit, movement)
	return movement, nil
}

// WithdrawInput represents input for recording a withdrawal.
type WithdrawInput struct {
	MemberID string
	Amount   decimal.Decimal
	Notes    string
	ActorID  string
}

// WithdrawResult carries the recorded movement with the balances around it.
type WithdrawResult struct {
	Movement      *domain.FundMovement
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// Withdraw appends an approved withdrawal after validating it against the
// member's available balance. The balance check and the insert share one
// transaction, serialized on the member row lock, so concurrent withdrawals
// cannot both pass the check against a stale balance.
func (uc *FundUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*WithdrawResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
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

	if _, err := uc.memberRepo.GetByIDForUpdate(txCtx, tx, input.MemberID); err != nil {
		return nil, err
	}

	deposits, withdrawals, err := uc.fundRepo.ApprovedTotalsTx(txCtx, tx, input.MemberID)
	if err != nil {
		return nil, err
	}
	purchaseCost, err := uc.vehicleRepo.TotalPurchaseCostTx(txCtx, tx, input.MemberID)
	if err != nil {
		return nil, err
	}

	balance := domain.ComputeBalance(deposits, withdrawals, purchaseCost)
	if input.Amount.GreaterThan(balance.AvailableBalance) {
		return nil, domain.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	movement := &domain.FundMovement{
		ID:         uc.idGen.Generate(),
		MemberID:   input.MemberID,
		Kind:       domain.MovementKindWithdrawal,
		Amount:     input.Amount,
		Status:     domain.MovementStatusApproved,
		Notes:      input.Notes,
		ReviewedBy: input.ActorID,
		ReviewedAt: &now,
		CreatedAt:  now,
	}

	if err := uc.fundRepo.CreateTx(txCtx, tx, movement); err != nil {
		return nil, err
	}

	if err := uc.createMovementEvent(txCtx, tx, movement, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsRecorded.Inc()
		uc.metrics.MovementDuration.Observe(time.Since(start).Seconds())
	}
	uc.invalidateStats(ctx, movement.MemberID)

	uc.audit(ctx, input.ActorID, domain.AuditActionFundWithdraw, movement)

	return &WithdrawResult{
		Movement:      movement,
		BalanceBefore: balance.AvailableBalance,
		BalanceAfter:  balance.AvailableBalance.Sub(input.Amount),
	}, nil
}

// ReviewInput represents an admin decision on a pending movement.
type ReviewInput struct {
	MovementID      string
	Approve         bool
	RejectionReason string
	ReviewerID      string
}

// Review applies a terminal approve/reject decision to a pending movement.
// The status change is a conditional update, so two concurrent reviews
// resolve to exactly one decision.
func (uc *FundUseCase) Review(ctx context.Context, input ReviewInput) (*domain.FundMovement, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	movement, err := uc.fundRepo.GetByIDForUpdate(txCtx, tx, input.MovementID)
	if err != nil {
		return nil, err
	}

	if !movement.IsPending() {
		return nil, domain.ErrAlreadyReviewed
	}

	status := domain.MovementStatusRejected
	if input.Approve {
		status = domain.MovementStatusApproved
	}

	now := time.Now().UTC()
	reviewed, err := uc.fundRepo.ReviewIfPending(txCtx, tx, movement.ID, status, input.ReviewerID, input.RejectionReason, now)
	if err != nil {
		return nil, err
	}
	if !reviewed {
		return nil, domain.ErrAlreadyReviewed
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   movement.ID,
		AggregateType: domain.AggregateTypeMovement,
		EventType:     domain.EventTypeMovementReviewed,
		Payload: map[string]any{
			"movement_id": movement.ID,
			"reviewed_by": input.ReviewerID,
			"status":      string(status),
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

	movement.Status = status
	movement.ReviewedBy = input.ReviewerID
	movement.ReviewedAt = &now
	if !input.Approve {
		movement.RejectionReason = input.RejectionReason
	}

	if uc.metrics != nil {
		uc.metrics.MovementsReviewed.Inc()
	}
	uc.invalidateStats(ctx, movement.MemberID)

	uc.audit(ctx, input.ReviewerID, domain.AuditActionFundReview, movement)
	return movement, nil
}

// Balance derives a member's available balance and invested capital from the
// approved ledger and vehicle purchases.
func (uc *FundUseCase) Balance(ctx context.Context, memberID string) (*domain.MemberBalance, error) {
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
	return &balance, nil
}

// GetMovement retrieves a movement. Members only see their own.
func (uc *FundUseCase) GetMovement(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.FundMovement, error) {
	movement, err := uc.fundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorRole.CanActForOthers() && movement.MemberID != actorID {
		return nil, domain.ErrMovementNotFound
	}
	return movement, nil
}

// ListMovementsInput represents input for listing movements.
type ListMovementsInput struct {
	ActorID   string
	ActorRole domain.Role
	MemberID  string
	Limit     int
	Offset    int
}

// ListMovements lists fund movements with member scoping.
func (uc *FundUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.FundMovement, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	memberID := input.MemberID
	if !input.ActorRole.CanActForOthers() {
		memberID = input.ActorID
	}

	if memberID == "" {
		return uc.fundRepo.List(ctx, limit, offset)
	}
	return uc.fundRepo.ListByMember(ctx, memberID, limit, offset)
}

// Stats summarizes movements by review status across the club.
func (uc *FundUseCase) Stats(ctx context.Context) (*MovementStats, error) {
	return uc.fundRepo.Stats(ctx)
}

func (uc *FundUseCase) createMovementEvent(ctx context.Context, tx Transaction, movement *domain.FundMovement, now time.Time) error {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   movement.ID,
		AggregateType: domain.AggregateTypeMovement,
		EventType:     domain.EventTypeMovementRecorded,
		Payload: map[string]any{
			"movement_id": movement.ID,
			"member_id":   movement.MemberID,
			"kind":        string(movement.Kind),
			"amount":      movement.Amount.String(),
			"status":      string(movement.Status),
		},
		CreatedAt: now,
		Published: false,
	}
	return uc.outboxRepo.Create(ctx, tx, event)
}

func (uc *FundUseCase) invalidateStats(ctx context.Context, memberID string) {
	if uc.stats == nil {
		return
	}
	uc.stats.InvalidateStats(ctx, memberID)
}

func (uc *FundUseCase) audit(ctx context.Context, actorID string, action domain.AuditAction, movement *domain.FundMovement) {
	if uc.auditRepo == nil {
		return
	}
	auditLog := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		MemberID:     actorID,
		Action:       string(action),
		ResourceType: "fund_movement",
		ResourceID:   movement.ID,
		AfterState:   domain.MarshalState(movement),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now(),
	}
	_ = uc.auditRepo.Create(ctx, auditLog)
}
