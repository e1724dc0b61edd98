package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tctpro/clubledger/internal/adapter/http/dto"
	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

// VehicleService defines the behavior needed by VehicleHandler.
type VehicleService interface {
	CreateVehicle(ctx context.Context, input usecase.CreateVehicleInput) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, input usecase.UpdateVehicleInput) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id, actorID string, actorRole domain.Role) error
	ListVehicles(ctx context.Context, input usecase.ListVehiclesInput) ([]*domain.Vehicle, error)
	SalesHistory(ctx context.Context, memberID string, limit, offset int) ([]*domain.SaleSettlement, error)
}

// VehicleHandler handles vehicle inventory requests.
type VehicleHandler struct {
	vehicleUC VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleUC VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleUC: vehicleUC}
}

// Create adds a vehicle to the actor's inventory. Admins may create on
// behalf of another member via member_id.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	memberID := act.ID
	if req.MemberID != "" && act.Role.CanActForOthers() {
		memberID = req.MemberID
	}

	input := usecase.CreateVehicleInput{
		MemberID:      memberID,
		VIN:           req.VIN,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		PurchasePrice: req.PurchasePrice,
	}
	if req.PurchaseDate != nil {
		input.PurchaseDate = *req.PurchaseDate
	}

	vehicle, err := h.vehicleUC.CreateVehicle(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create vehicle", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.VehicleFromDomain(vehicle))
}

// Get retrieves a vehicle by ID.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	vehicle, err := h.vehicleUC.GetVehicle(r.Context(), chi.URLParam(r, "id"), act.ID, act.Role)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get vehicle", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VehicleFromDomain(vehicle))
}

// Update updates mutable vehicle attributes.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	vehicle, err := h.vehicleUC.UpdateVehicle(r.Context(), usecase.UpdateVehicleInput{
		ID:        chi.URLParam(r, "id"),
		ActorID:   act.ID,
		ActorRole: act.Role,
		Make:      req.Make,
		Model:     req.Model,
		Year:      req.Year,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update vehicle", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VehicleFromDomain(vehicle))
}

// Delete removes a vehicle and its expenses.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.vehicleUC.DeleteVehicle(r.Context(), chi.URLParam(r, "id"), act.ID, act.Role); err != nil {
		writeError(w, mapDomainError(err), "failed to delete vehicle", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists vehicles with optional status filter and pagination. Members
// always see their own inventory; admins may scope by member_id.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	vehicles, err := h.vehicleUC.ListVehicles(r.Context(), usecase.ListVehiclesInput{
		ActorID:   act.ID,
		ActorRole: act.Role,
		MemberID:  r.URL.Query().Get("member_id"),
		Status:    domain.VehicleStatus(r.URL.Query().Get("status")),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list vehicles", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListVehiclesResponse{
		Vehicles: dto.VehiclesFromDomain(vehicles),
		Total:    int64(len(vehicles)),
	})
}

// SalesHistory lists a member's settlements, newest first. Foreign members
// are masked for non-admins.
func (h *VehicleHandler) SalesHistory(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	memberID := chi.URLParam(r, "id")
	if !canViewMember(act, memberID) {
		writeError(w, http.StatusNotFound, "member not found", "")
		return
	}

	settlements, err := h.vehicleUC.SalesHistory(r.Context(), memberID, parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list sales history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSettlementsResponse{
		Settlements: dto.SettlementsFromDomain(settlements),
		Total:       int64(len(settlements)),
	})
}
