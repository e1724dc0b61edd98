package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
)

// VehicleUseCase handles vehicle inventory operations.
type VehicleUseCase struct {
	vehicleRepo    VehicleRepository
	settlementRepo SettlementRepository
	auditRepo      AuditRepository
	idGen          IDGenerator
}

func NewVehicleUseCase(
	vehicleRepo VehicleRepository,
	settlementRepo SettlementRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo:    vehicleRepo,
		settlementRepo: settlementRepo,
		auditRepo:      auditRepo,
		idGen:          idGen,
	}
}

// CreateVehicleInput represents input for adding a vehicle.
type CreateVehicleInput struct {
	MemberID      string
	VIN           string
	Make          string
	Model         string
	Year          int
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
}

// CreateVehicle adds a vehicle to a member's inventory. The VIN must be
// unique within that member's inventory.
func (uc *VehicleUseCase) CreateVehicle(ctx context.Context, input CreateVehicleInput) (*domain.Vehicle, error) {
	now := time.Now().UTC()

	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}

	// VINs are stored normalized so the per-member uniqueness check is
	// case-insensitive.
	vin := strings.ToUpper(strings.TrimSpace(input.VIN))

	vehicle := &domain.Vehicle{
		ID:            uc.idGen.Generate(),
		MemberID:      input.MemberID,
		VIN:           vin,
		Make:          input.Make,
		Model:         input.Model,
		Year:          input.Year,
		PurchasePrice: input.PurchasePrice,
		PurchaseDate:  purchaseDate,
		Status:        domain.VehicleStatusInStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	existing, err := uc.vehicleRepo.GetByVIN(ctx, input.MemberID, vin)
	if err != nil && !errors.Is(err, domain.ErrVehicleNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateVIN
	}

	if err := uc.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	uc.audit(ctx, input.MemberID, domain.AuditActionVehicleCreate, vehicle)
	return vehicle, nil
}

// GetVehicle retrieves a vehicle. Members only see their own.
func (uc *VehicleUseCase) GetVehicle(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorRole.CanActForOthers() && vehicle.MemberID != actorID {
		return nil, domain.ErrVehicleNotFound
	}
	return vehicle, nil
}

// UpdateVehicleInput represents input for updating vehicle attributes.
// Status and purchase price are not updatable; sales go through settlement.
type UpdateVehicleInput struct {
	ID        string
	ActorID   string
	ActorRole domain.Role
	Make      *string
	Model     *string
	Year      *int
}

// UpdateVehicle updates mutable vehicle attributes.
func (uc *VehicleUseCase) UpdateVehicle(ctx context.Context, input UpdateVehicleInput) (*domain.Vehicle, error) {
	vehicle, err := uc.GetVehicle(ctx, input.ID, input.ActorID, input.ActorRole)
	if err != nil {
		return nil, err
	}

	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		if err := domain.ValidateModelYear(*input.Year); err != nil {
			return nil, err
		}
		vehicle.Year = *input.Year
	}

	vehicle.UpdatedAt = time.Now().UTC()

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	uc.audit(ctx, input.ActorID, domain.AuditActionVehicleUpdate, vehicle)
	return vehicle, nil
}

// DeleteVehicle removes a vehicle and its expenses. Settlements are
// unaffected: they carry their own snapshots.
func (uc *VehicleUseCase) DeleteVehicle(ctx context.Context, id, actorID string, actorRole domain.Role) error {
	vehicle, err := uc.GetVehicle(ctx, id, actorID, actorRole)
	if err != nil {
		return err
	}

	if err := uc.vehicleRepo.Delete(ctx, vehicle.ID); err != nil {
		return err
	}

	uc.audit(ctx, actorID, domain.AuditActionVehicleDelete, vehicle)
	return nil
}

// ListVehiclesInput represents input for listing vehicles.
type ListVehiclesInput struct {
	ActorID   string
	ActorRole domain.Role
	MemberID  string
	Status    domain.VehicleStatus
	Limit     int
	Offset    int
}

// ListVehicles lists vehicles with member scoping and optional status filter.
func (uc *VehicleUseCase) ListVehicles(ctx context.Context, input ListVehiclesInput) ([]*domain.Vehicle, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	memberID := input.MemberID
	if !input.ActorRole.CanActForOthers() {
		memberID = input.ActorID
	}

	return uc.vehicleRepo.List(ctx, VehicleFilter{
		MemberID: memberID,
		Status:   input.Status,
		Limit:    limit,
		Offset:   offset,
	})
}

// SalesHistory returns a member's settlements, newest first.
func (uc *VehicleUseCase) SalesHistory(ctx context.Context, memberID string, limit, offset int) ([]*domain.SaleSettlement, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.settlementRepo.ListByMember(ctx, memberID, limit, offset)
}

func (uc *VehicleUseCase) audit(ctx context.Context, actorID string, action domain.AuditAction, vehicle *domain.Vehicle) {
	if uc.auditRepo == nil {
		return
	}
	auditLog := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		MemberID:     actorID,
		Action:       string(action),
		ResourceType: "vehicle",
		ResourceID:   vehicle.ID,
		AfterState:   domain.MarshalState(vehicle),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now(),
	}
	_ = uc.auditRepo.Create(ctx, auditLog)
}
