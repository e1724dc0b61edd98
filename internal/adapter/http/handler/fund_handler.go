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

// FundService defines the behavior needed by FundHandler.
type FundService interface {
	RecordDeposit(ctx context.Context, input usecase.RecordDepositInput) (*domain.FundMovement, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*usecase.WithdrawResult, error)
	Review(ctx context.Context, input usecase.ReviewInput) (*domain.FundMovement, error)
	Balance(ctx context.Context, memberID string) (*domain.MemberBalance, error)
	GetMovement(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.FundMovement, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.FundMovement, error)
	Stats(ctx context.Context) (*usecase.MovementStats, error)
}

// FundHandler handles fund ledger requests.
type FundHandler struct {
	fundUC FundService
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundUC FundService) *FundHandler {
	return &FundHandler{fundUC: fundUC}
}

// Deposit records a deposit request for the acting member. Member requests
// enter pending review; admin deposits are approved immediately.
func (h *FundHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.fundUC.RecordDeposit(r.Context(), usecase.RecordDepositInput{
		MemberID:  act.ID,
		Amount:    req.Amount,
		Notes:     req.Notes,
		ActorID:   act.ID,
		ActorRole: act.Role,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// Adjust records an admin fund adjustment for a member: an immediately
// approved deposit or a balance-checked withdrawal.
func (h *FundHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	memberID := chi.URLParam(r, "id")

	var req dto.AdjustFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	switch domain.MovementKind(req.Direction) {
	case domain.MovementKindDeposit:
		movement, err := h.fundUC.RecordDeposit(r.Context(), usecase.RecordDepositInput{
			MemberID:  memberID,
			Amount:    req.Amount,
			Notes:     req.Notes,
			ActorID:   act.ID,
			ActorRole: act.Role,
		})
		if err != nil {
			writeError(w, mapDomainError(err), "failed to record deposit", err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))

	case domain.MovementKindWithdrawal:
		result, err := h.fundUC.Withdraw(r.Context(), usecase.WithdrawInput{
			MemberID: memberID,
			Amount:   req.Amount,
			Notes:    req.Notes,
			ActorID:  act.ID,
		})
		if err != nil {
			writeError(w, mapDomainError(err), "failed to record withdrawal", err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, dto.WithdrawalFromResult(result))

	default:
		writeError(w, http.StatusBadRequest, "invalid direction", "direction must be deposit or withdrawal")
	}
}

// Review applies an admin approve/reject decision to a pending movement.
func (h *FundHandler) Review(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.ReviewMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.fundUC.Review(r.Context(), usecase.ReviewInput{
		MovementID:      chi.URLParam(r, "id"),
		Approve:         req.Approve,
		RejectionReason: req.RejectionReason,
		ReviewerID:      act.ID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to review movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Balance returns a member's available balance and invested capital.
func (h *FundHandler) Balance(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	memberID := chi.URLParam(r, "id")
	if !canViewMember(act, memberID) {
		writeError(w, http.StatusNotFound, "member not found", "")
		return
	}

	balance, err := h.fundUC.Balance(r.Context(), memberID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		MemberID:         memberID,
		AvailableBalance: balance.AvailableBalance,
		InvestedCapital:  balance.InvestedCapital,
	})
}

// Get retrieves a fund movement by ID.
func (h *FundHandler) Get(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	movement, err := h.fundUC.GetMovement(r.Context(), chi.URLParam(r, "id"), act.ID, act.Role)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// List lists fund movements. Members are scoped to their own ledger.
func (h *FundHandler) List(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	movements, err := h.fundUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		ActorID:   act.ID,
		ActorRole: act.Role,
		MemberID:  r.URL.Query().Get("member_id"),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Total:     int64(len(movements)),
	})
}

// Stats summarizes movements by review status across the club.
func (h *FundHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.fundUC.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get movement stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
