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

// MemberService defines the behavior needed by MemberHandler.
type MemberService interface {
	GetMember(ctx context.Context, id string) (*domain.Member, error)
	UpdateMember(ctx context.Context, input usecase.UpdateMemberInput) (*domain.Member, error)
	DeleteMember(ctx context.Context, id, actorID string) error
	ListMembers(ctx context.Context, limit, offset int) ([]*domain.Member, error)
	GetStats(ctx context.Context, memberID string) (*usecase.MemberStats, error)
}

// MemberHandler handles member management requests.
type MemberHandler struct {
	memberUC MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberUC MemberService) *MemberHandler {
	return &MemberHandler{memberUC: memberUC}
}

// Get retrieves a member by ID. A foreign member looks not found to
// non-admins.
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !canViewMember(act, id) {
		writeError(w, http.StatusNotFound, "member not found", "")
		return
	}

	member, err := h.memberUC.GetMember(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get member", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

// Update updates member attributes. Members may change their own name and
// password; role and active flips are admin-only.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !canViewMember(act, id) {
		writeError(w, http.StatusNotFound, "member not found", "")
		return
	}

	var req dto.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if (req.Role != nil || req.Active != nil) && !act.Role.CanActForOthers() {
		writeError(w, http.StatusForbidden, "insufficient permissions", "role and active changes require admin")
		return
	}

	input := usecase.UpdateMemberInput{
		ID:       id,
		Name:     req.Name,
		Active:   req.Active,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	member, err := h.memberUC.UpdateMember(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update member", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

// Delete removes a member and everything they own.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.memberUC.DeleteMember(r.Context(), id, act.ID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete member", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists members with pagination.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	members, err := h.memberUC.ListMembers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMembersResponse{
		Members: dto.MembersFromDomain(members),
		Total:   int64(len(members)),
	})
}

// Stats returns a member's derived inventory and financial position.
func (h *MemberHandler) Stats(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !canViewMember(act, id) {
		writeError(w, http.StatusNotFound, "member not found", "")
		return
	}

	stats, err := h.memberUC.GetStats(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
