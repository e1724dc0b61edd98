package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
)

// ExpenseUseCase handles additional expenses attached to vehicles.
// Expenses are frozen once a vehicle is sold: the settlement snapshot has
// already fixed the expense total, and later edits would desync history.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	vehicleRepo VehicleRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

func NewExpenseUseCase(
	expenseRepo ExpenseRepository,
	vehicleRepo VehicleRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		vehicleRepo: vehicleRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// AddExpenseInput represents input for recording an expense.
type AddExpenseInput struct {
	VehicleID   string
	Description string
	Amount      decimal.Decimal
	IncurredAt  time.Time
	ActorID     string
	ActorRole   domain.Role
}

// AddExpense records an expense against an in-stock vehicle.
func (uc *ExpenseUseCase) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.AdditionalExpense, error) {
	vehicle, err := uc.ownedVehicle(ctx, input.VehicleID, input.ActorID, input.ActorRole)
	if err != nil {
		return nil, err
	}
	if vehicle.IsSold() {
		return nil, domain.ErrVehicleAlreadySold
	}

	now := time.Now().UTC()
	incurredAt := input.IncurredAt
	if incurredAt.IsZero() {
		incurredAt = now
	}

	expense := &domain.AdditionalExpense{
		ID:          uc.idGen.Generate(),
		VehicleID:   vehicle.ID,
		Description: input.Description,
		Amount:      input.Amount,
		IncurredAt:  incurredAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	uc.audit(ctx, input.ActorID, domain.AuditActionExpenseCreate, expense)
	return expense, nil
}

// UpdateExpenseInput represents input for editing an expense.
type UpdateExpenseInput struct {
	ID          string
	ActorID     string
	ActorRole   domain.Role
	Description *string
	Amount      *decimal.Decimal
}

// UpdateExpense edits an expense on an in-stock vehicle.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*domain.AdditionalExpense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	vehicle, err := uc.ownedVehicle(ctx, expense.VehicleID, input.ActorID, input.ActorRole)
	if err != nil {
		return nil, err
	}
	if vehicle.IsSold() {
		return nil, domain.ErrVehicleAlreadySold
	}

	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	uc.audit(ctx, input.ActorID, domain.AuditActionExpenseUpdate, expense)
	return expense, nil
}

// DeleteExpense removes an expense from an in-stock vehicle.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id, actorID string, actorRole domain.Role) error {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	vehicle, err := uc.ownedVehicle(ctx, expense.VehicleID, actorID, actorRole)
	if err != nil {
		return err
	}
	if vehicle.IsSold() {
		return domain.ErrVehicleAlreadySold
	}

	if err := uc.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit(ctx, actorID, domain.AuditActionExpenseDelete, expense)
	return nil
}

// ListExpenses lists a vehicle's expenses.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, vehicleID, actorID string, actorRole domain.Role) ([]*domain.AdditionalExpense, error) {
	if _, err := uc.ownedVehicle(ctx, vehicleID, actorID, actorRole); err != nil {
		return nil, err
	}
	return uc.expenseRepo.ListByVehicle(ctx, vehicleID)
}

// TotalExpenses sums a vehicle's expenses. Zero when there are none.
func (uc *ExpenseUseCase) TotalExpenses(ctx context.Context, vehicleID, actorID string, actorRole domain.Role) (decimal.Decimal, error) {
	if _, err := uc.ownedVehicle(ctx, vehicleID, actorID, actorRole); err != nil {
		return decimal.Zero, err
	}
	return uc.expenseRepo.TotalByVehicle(ctx, vehicleID)
}

func (uc *ExpenseUseCase) ownedVehicle(ctx context.Context, vehicleID, actorID string, actorRole domain.Role) (*domain.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !actorRole.CanActForOthers() && vehicle.MemberID != actorID {
		return nil, domain.ErrVehicleNotFound
	}
	return vehicle, nil
}

func (uc *ExpenseUseCase) audit(ctx context.Context, actorID string, action domain.AuditAction, expense *domain.AdditionalExpense) {
	if uc.auditRepo == nil {
		return
	}
	auditLog := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		MemberID:     actorID,
		Action:       string(action),
		ResourceType: "expense",
		ResourceID:   expense.ID,
		AfterState:   domain.MarshalState(expense),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now(),
	}
	_ = uc.auditRepo.Create(ctx, auditLog)
}
