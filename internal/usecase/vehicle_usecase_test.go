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

func newVehicleFixture() (*usecase.VehicleUseCase, *mocks.MockVehicleRepository, *mocks.MockSettlementRepository) {
	vehicleRepo := mocks.NewMockVehicleRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	uc := usecase.NewVehicleUseCase(vehicleRepo, settlementRepo, mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator())
	return uc, vehicleRepo, settlementRepo
}

func TestVehicleUseCase_CreateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates in stock", func(t *testing.T) {
		uc, _, _ := newVehicleFixture()

		vehicle, err := uc.CreateVehicle(ctx, usecase.CreateVehicleInput{
			MemberID:      "mem-1",
			VIN:           "1hgcm82633a004352",
			Make:          "Honda",
			Model:         "Accord",
			Year:          2019,
			PurchasePrice: decimal.NewFromInt(10000),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if vehicle.Status != domain.VehicleStatusInStock {
			t.Errorf("expected IN_STOCK, got %s", vehicle.Status)
		}
		if vehicle.VIN != "1HGCM82633A004352" {
			t.Errorf("expected VIN uppercased, got %s", vehicle.VIN)
		}
		if vehicle.PurchaseDate.IsZero() {
			t.Error("expected purchase date defaulted")
		}
	})

	t.Run("duplicate VIN within a member's inventory", func(t *testing.T) {
		uc, vehicleRepo, _ := newVehicleFixture()
		_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

		_, err := uc.CreateVehicle(ctx, usecase.CreateVehicleInput{
			MemberID:      "mem-1",
			VIN:           "1HGCM82633A004352",
			Make:          "Honda",
			Model:         "Accord",
			Year:          2019,
			PurchasePrice: decimal.NewFromInt(9000),
		})
		if !errors.Is(err, domain.ErrDuplicateVIN) {
			t.Errorf("expected ErrDuplicateVIN, got %v", err)
		}
	})

	t.Run("same VIN allowed across members", func(t *testing.T) {
		uc, vehicleRepo, _ := newVehicleFixture()
		_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

		_, err := uc.CreateVehicle(ctx, usecase.CreateVehicleInput{
			MemberID:      "mem-2",
			VIN:           "1HGCM82633A004352",
			Make:          "Honda",
			Model:         "Accord",
			Year:          2019,
			PurchasePrice: decimal.NewFromInt(9000),
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		uc, _, _ := newVehicleFixture()

		tests := []struct {
			name    string
			input   usecase.CreateVehicleInput
			wantErr error
		}{
			{
				name: "bad VIN",
				input: usecase.CreateVehicleInput{
					MemberID: "mem-1", VIN: "IOQ", Make: "Honda", Model: "Accord",
					Year: 2019, PurchasePrice: decimal.NewFromInt(1000),
				},
				wantErr: domain.ErrInvalidVIN,
			},
			{
				name: "bad year",
				input: usecase.CreateVehicleInput{
					MemberID: "mem-1", VIN: "1HGCM82633A004352", Make: "Honda", Model: "Accord",
					Year: 1900, PurchasePrice: decimal.NewFromInt(1000),
				},
				wantErr: domain.ErrInvalidYear,
			},
			{
				name: "non-positive price",
				input: usecase.CreateVehicleInput{
					MemberID: "mem-1", VIN: "1HGCM82633A004352", Make: "Honda", Model: "Accord",
					Year: 2019, PurchasePrice: decimal.Zero,
				},
				wantErr: domain.ErrInvalidAmount,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := uc.CreateVehicle(ctx, tt.input); !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})
}

func TestVehicleUseCase_GetVehicle(t *testing.T) {
	ctx := context.Background()
	uc, vehicleRepo, _ := newVehicleFixture()
	_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

	t.Run("owner sees own vehicle", func(t *testing.T) {
		if _, err := uc.GetVehicle(ctx, "veh-1", "mem-1", domain.RoleMember); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("foreign vehicle looks missing", func(t *testing.T) {
		_, err := uc.GetVehicle(ctx, "veh-1", "mem-2", domain.RoleMember)
		if !errors.Is(err, domain.ErrVehicleNotFound) {
			t.Errorf("expected ErrVehicleNotFound, got %v", err)
		}
	})

	t.Run("admin sees any vehicle", func(t *testing.T) {
		if _, err := uc.GetVehicle(ctx, "veh-1", "admin-1", domain.RoleAdmin); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestVehicleUseCase_UpdateVehicle(t *testing.T) {
	ctx := context.Background()
	uc, vehicleRepo, _ := newVehicleFixture()
	_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

	newModel := "Civic"
	vehicle, err := uc.UpdateVehicle(ctx, usecase.UpdateVehicleInput{
		ID:        "veh-1",
		ActorID:   "mem-1",
		ActorRole: domain.RoleMember,
		Model:     &newModel,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vehicle.Model != "Civic" {
		t.Errorf("expected model updated, got %s", vehicle.Model)
	}
	if vehicle.Make != "Honda" {
		t.Errorf("expected make untouched, got %s", vehicle.Make)
	}

	badYear := 1800
	if _, err := uc.UpdateVehicle(ctx, usecase.UpdateVehicleInput{
		ID:        "veh-1",
		ActorID:   "mem-1",
		ActorRole: domain.RoleMember,
		Year:      &badYear,
	}); !errors.Is(err, domain.ErrInvalidYear) {
		t.Errorf("expected ErrInvalidYear, got %v", err)
	}
}

func TestVehicleUseCase_ListVehicles(t *testing.T) {
	ctx := context.Background()
	uc, vehicleRepo, _ := newVehicleFixture()
	_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))
	_ = vehicleRepo.Create(ctx, inStockVehicle2("veh-2", "mem-2", 8000))

	t.Run("member list is forced to own vehicles", func(t *testing.T) {
		vehicles, err := uc.ListVehicles(ctx, usecase.ListVehiclesInput{
			ActorID:   "mem-1",
			ActorRole: domain.RoleMember,
			MemberID:  "mem-2",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vehicles) != 1 || vehicles[0].MemberID != "mem-1" {
			t.Errorf("expected only mem-1 vehicles, got %d", len(vehicles))
		}
	})

	t.Run("admin lists club-wide", func(t *testing.T) {
		vehicles, err := uc.ListVehicles(ctx, usecase.ListVehiclesInput{
			ActorID:   "admin-1",
			ActorRole: domain.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vehicles) != 2 {
			t.Errorf("expected 2 vehicles, got %d", len(vehicles))
		}
	})
}

func TestVehicleUseCase_DeleteVehicle(t *testing.T) {
	ctx := context.Background()
	uc, vehicleRepo, _ := newVehicleFixture()
	_ = vehicleRepo.Create(ctx, inStockVehicle("veh-1", "mem-1", 10000))

	if err := uc.DeleteVehicle(ctx, "veh-1", "mem-2", domain.RoleMember); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound for foreign delete, got %v", err)
	}

	if err := uc.DeleteVehicle(ctx, "veh-1", "mem-1", domain.RoleMember); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := vehicleRepo.GetByID(ctx, "veh-1"); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Error("expected vehicle removed")
	}
}
