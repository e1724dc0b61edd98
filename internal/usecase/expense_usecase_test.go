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

func newExpenseFixture() (*usecase.ExpenseUseCase, *mocks.MockExpenseRepository, *mocks.MockVehicleRepository) {
	expenseRepo := mocks.NewMockExpenseRepository()
	vehicleRepo := mocks.NewMockVehicleRepository()
	uc := usecase.NewExpenseUseCase(expenseRepo, vehicleRepo, mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator())
	return uc, expenseRepo, vehicleRepo
}

func TestExpenseUseCase_AddExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("records expense on in-stock vehicle", func(t *testing.T) {
		uc, _, vehicleRepo := newExpenseFixture()
		_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

		expense, err := uc.AddExpense(ctx, usecase.AddExpenseInput{
			VehicleID:   "veh-1",
			Description: "new tires",
			Amount:      decimal.NewFromInt(300),
			ActorID:     "mem-1",
			ActorRole:   domain.RoleMember,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if expense.VehicleID != "veh-1" {
			t.Errorf("expected vehicle veh-1, got %s", expense.VehicleID)
		}
		if expense.IncurredAt.IsZero() {
			t.Error("expected incurred date defaulted")
		}
	})

	t.Run("sold vehicle freezes expenses", func(t *testing.T) {
		uc, _, vehicleRepo := newExpenseFixture()
		vehicle := inStockVehicle("veh-1", "mem-1", 10000)
		vehicle.Status = domain.VehicleStatusSold
		_ = vehicleRepo.Create(ctx, vehicle)

		_, err := uc.AddExpense(ctx, usecase.AddExpenseInput{
			VehicleID:   "veh-1",
			Description: "detailing",
			Amount:      decimal.NewFromInt(100),
			ActorID:     "mem-1",
			ActorRole:   domain.RoleMember,
		})
		if !errors.Is(err, domain.ErrVehicleAlreadySold) {
			t.Errorf("expected ErrVehicleAlreadySold, got %v", err)
		}
	})

	t.Run("foreign vehicle looks missing", func(t *testing.T) {
		uc, _, vehicleRepo := newExpenseFixture()
		_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

		_, err := uc.AddExpense(ctx, usecase.AddExpenseInput{
			VehicleID:   "veh-1",
			Description: "detailing",
			Amount:      decimal.NewFromInt(100),
			ActorID:     "mem-2",
			ActorRole:   domain.RoleMember,
		})
		if !errors.Is(err, domain.ErrVehicleNotFound) {
			t.Errorf("expected ErrVehicleNotFound, got %v", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		uc, _, vehicleRepo := newExpenseFixture()
		_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

		_, err := uc.AddExpense(ctx, usecase.AddExpenseInput{
			VehicleID:   "veh-1",
			Description: "detailing",
			Amount:      decimal.Zero,
			ActorID:     "mem-1",
			ActorRole:   domain.RoleMember,
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestExpenseUseCase_UpdateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("edits expense while in stock", func(t *testing.T) {
		uc, expenseRepo, vehicleRepo := newExpenseFixture()
		_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))
		_ = expenseRepo.Create(ctx, &domain.AdditionalExpense{ID: "exp-1", VehicleID: "veh-1", Description: "tires", Amount: decimal.NewFromInt(300)})

		newAmount := decimal.NewFromInt(350)
		expense, err := uc.UpdateExpense(ctx, usecase.UpdateExpenseInput{
			ID:        "exp-1",
			ActorID:   "mem-1",
			ActorRole: domain.RoleMember,
			Amount:    &newAmount,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !expense.Amount.Equal(newAmount) {
			t.Errorf("expected amount 350, got %s", expense.Amount)
		}
	})

	t.Run("frozen after sale", func(t *testing.T) {
		uc, expenseRepo, vehicleRepo := newExpenseFixture()
		vehicle := inStockVehicle("veh-1", "mem-1", 10000)
		vehicle.Status = domain.VehicleStatusSold
		_ = vehicleRepo.Create(ctx, vehicle)
		_ = expenseRepo.Create(ctx, &domain.AdditionalExpense{ID: "exp-1", VehicleID: "veh-1", Description: "tires", Amount: decimal.NewFromInt(300)})

		newAmount := decimal.NewFromInt(999)
		_, err := uc.UpdateExpense(ctx, usecase.UpdateExpenseInput{
			ID:        "exp-1",
			ActorID:   "mem-1",
			ActorRole: domain.RoleMember,
			Amount:    &newAmount,
		})
		if !errors.Is(err, domain.ErrVehicleAlreadySold) {
			t.Errorf("expected ErrVehicleAlreadySold, got %v", err)
		}
	})
}

func TestExpenseUseCase_DeleteExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes while in stock", func(t *testing.T) {
		uc, expenseRepo, vehicleRepo := newExpenseFixture()
		_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))
		_ = expenseRepo.Create(ctx, &domain.AdditionalExpense{ID: "exp-1", VehicleID: "veh-1", Description: "tires", Amount: decimal.NewFromInt(300)})

		if err := uc.DeleteExpense(ctx, "exp-1", "mem-1", domain.RoleMember); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := expenseRepo.GetByID(ctx, "exp-1"); !errors.Is(err, domain.ErrExpenseNotFound) {
			t.Error("expected expense removed")
		}
	})

	t.Run("frozen after sale", func(t *testing.T) {
		uc, expenseRepo, vehicleRepo := newExpenseFixture()
		vehicle := inStockVehicle("veh-1", "mem-1", 10000)
		vehicle.Status = domain.VehicleStatusSold
		_ = vehicleRepo.Create(ctx, vehicle)
		_ = expenseRepo.Create(ctx, &domain.AdditionalExpense{ID: "exp-1", VehicleID: "veh-1", Description: "tires", Amount: decimal.NewFromInt(300)})

		if err := uc.DeleteExpense(ctx, "exp-1", "mem-1", domain.RoleMember); !errors.Is(err, domain.ErrVehicleAlreadySold) {
			t.Errorf("expected ErrVehicleAlreadySold, got %v", err)
		}
	})
}

func TestExpenseUseCase_TotalExpenses(t *testing.T) {
	ctx := context.Background()
	uc, expenseRepo, vehicleRepo := newExpenseFixture()
	_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

	total, err := uc.TotalExpenses(ctx, "veh-1", "mem-1", domain.RoleMember)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("expected zero total with no expenses, got %s", total)
	}

	_ = expenseRepo.Create(ctx, &domain.AdditionalExpense{ID: "exp-1", VehicleID: "veh-1", Amount: decimal.NewFromInt(300)})
	_ = expenseRepo.Create(ctx, &domain.AdditionalExpense{ID: "exp-2", VehicleID: "veh-1", Amount: decimal.RequireFromString("200.50")})

	total, err = uc.TotalExpenses(ctx, "veh-1", "mem-1", domain.RoleMember)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("500.50")) {
		t.Errorf("expected 500.50, got %s", total)
	}
}
