package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
)

// SettingsUseCase manages admin key-value settings, including the franchise
// fee policy applied by settlements.
type SettingsUseCase struct {
	settingsRepo SettingsRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	logger       zerolog.Logger
}

func NewSettingsUseCase(
	settingsRepo SettingsRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
		logger:       logger,
	}
}

// GetSetting retrieves a setting by key.
func (uc *SettingsUseCase) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	return uc.settingsRepo.Get(ctx, key)
}

// ListSettings returns all settings.
func (uc *SettingsUseCase) ListSettings(ctx context.Context) ([]*domain.Setting, error) {
	return uc.settingsRepo.List(ctx)
}

// UpdateSetting upserts a setting value. The franchise fee is validated as a
// percentage; other keys are stored as-is.
func (uc *SettingsUseCase) UpdateSetting(ctx context.Context, key, value, actorID string) (*domain.Setting, error) {
	if key == domain.SettingKeyFranchiseFee {
		pct, err := decimal.NewFromString(value)
		if err != nil {
			return nil, domain.ErrInvalidFeePct
		}
		if err := domain.ValidateFeePct(pct); err != nil {
			return nil, err
		}
	}

	var oldValue string
	if existing, err := uc.settingsRepo.Get(ctx, key); err == nil {
		oldValue = existing.Value
	}

	setting := &domain.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: actorID,
		UpdatedAt: time.Now().UTC(),
	}

	if err := uc.settingsRepo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			MemberID:     actorID,
			Action:       string(domain.AuditActionSettingUpdate),
			ResourceType: "setting",
			ResourceID:   key,
			BeforeState:  domain.JSON{"value": oldValue},
			AfterState:   domain.JSON{"value": value},
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now(),
		}
		_ = uc.auditRepo.Create(ctx, auditLog)
	}

	return setting, nil
}

// FranchiseFeePct reads the fee policy fresh from the settings store.
// A missing or unreadable policy resolves to zero so settlements proceed
// with no fee; the condition is logged for operators.
func (uc *SettingsUseCase) FranchiseFeePct(ctx context.Context) (decimal.Decimal, error) {
	setting, err := uc.settingsRepo.Get(ctx, domain.SettingKeyFranchiseFee)
	if err != nil {
		if errors.Is(err, domain.ErrSettingNotFound) {
			uc.logger.Warn().Msg("franchise fee setting missing, applying zero fee")
			return decimal.Zero, nil
		}
		uc.logger.Warn().Err(err).Msg("franchise fee policy unavailable, applying zero fee")
		return decimal.Zero, nil
	}

	pct, err := decimal.NewFromString(setting.Value)
	if err != nil {
		uc.logger.Warn().Str("value", setting.Value).Msg("franchise fee setting unparseable, applying zero fee")
		return decimal.Zero, nil
	}

	if err := domain.ValidateFeePct(pct); err != nil {
		uc.logger.Warn().Str("value", setting.Value).Msg("franchise fee setting out of range, applying zero fee")
		return decimal.Zero, nil
	}

	return pct, nil
}
