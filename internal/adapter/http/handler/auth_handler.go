package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tctpro/clubledger/internal/adapter/http/dto"
	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/infrastructure/auth"
	"github.com/tctpro/clubledger/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.Member, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Member, error)
	GetMember(ctx context.Context, id string) (*domain.Member, error)
}

// AuthHandler handles signup and login.
type AuthHandler struct {
	members    AuthService
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(members AuthService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		members:    members,
		jwtManager: jwtManager,
	}
}

// Signup registers a new member. Self-signup always yields the member role;
// admins are provisioned out of band.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.members.Signup(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to sign up", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MemberFromDomain(member))
}

// Login verifies credentials and issues a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.members.Authenticate(r.Context(), usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(member)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:  token,
		Member: dto.MemberFromDomain(member),
	})
}

// Me returns the authenticated member's full profile. The context member
// carries only the token claims, so the profile is loaded fresh.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := actor(w, r)
	if !ok {
		return
	}

	member, err := h.members.GetMember(r.Context(), claims.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get member", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}
