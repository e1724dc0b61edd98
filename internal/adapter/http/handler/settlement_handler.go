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

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	Settle(ctx context.Context, input usecase.SettleInput) (*domain.SaleSettlement, error)
	GetSettlement(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.SaleSettlement, error)
	ListSettlements(ctx context.Context, input usecase.ListSettlementsInput) ([]*domain.SaleSettlement, error)
}

// SettlementHandler handles vehicle sale settlement requests.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Settle records the sale of a vehicle and returns the immutable settlement.
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.SettleVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := usecase.SettleInput{
		VehicleID: chi.URLParam(r, "id"),
		SoldPrice: req.SoldPrice,
		ActorID:   act.ID,
		ActorRole: act.Role,
	}
	if req.SoldDate != nil {
		input.SoldDate = *req.SoldDate
	}

	settlement, err := h.settlementUC.Settle(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle vehicle", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SettlementFromDomain(settlement))
}

// Get retrieves a settlement by ID.
func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	settlement, err := h.settlementUC.GetSettlement(r.Context(), chi.URLParam(r, "id"), act.ID, act.Role)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(settlement))
}

// List lists settlements. Members are scoped to their own sales.
func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	settlements, err := h.settlementUC.ListSettlements(r.Context(), usecase.ListSettlementsInput{
		ActorID:   act.ID,
		ActorRole: act.Role,
		MemberID:  r.URL.Query().Get("member_id"),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list settlements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSettlementsResponse{
		Settlements: dto.SettlementsFromDomain(settlements),
		Total:       int64(len(settlements)),
	})
}
