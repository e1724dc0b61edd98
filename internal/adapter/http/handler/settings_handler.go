package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tctpro/clubledger/internal/adapter/http/dto"
	"github.com/tctpro/clubledger/internal/domain"
)

// SettingsService defines the behavior needed by SettingsHandler.
type SettingsService interface {
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)
	UpdateSetting(ctx context.Context, key, value, actorID string) (*domain.Setting, error)
	ListSettings(ctx context.Context) ([]*domain.Setting, error)
}

// SettingsHandler handles admin app-setting requests.
type SettingsHandler struct {
	settingsUC SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsUC SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsUC: settingsUC}
}

// Get retrieves a setting by key.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingsUC.GetSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get setting", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingFromDomain(setting))
}

// Update upserts a setting value.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	setting, err := h.settingsUC.UpdateSetting(r.Context(), chi.URLParam(r, "key"), req.Value, act.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update setting", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingFromDomain(setting))
}

// List returns all settings.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUC.ListSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list settings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(settings))
}
