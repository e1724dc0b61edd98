package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tctpro/clubledger/internal/domain"
)

// MemberUseCase handles member management operations
type MemberUseCase struct {
	memberRepo     MemberRepository
	vehicleRepo    VehicleRepository
	fundRepo       FundRepository
	settlementRepo SettlementRepository
	auditRepo      AuditRepository
	idGen          IDGenerator
	cache          Cache
}

// NewMemberUseCase creates a new member use case
func NewMemberUseCase(
	memberRepo MemberRepository,
	vehicleRepo VehicleRepository,
	fundRepo FundRepository,
	settlementRepo SettlementRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	cache Cache,
) *MemberUseCase {
	return &MemberUseCase{
		memberRepo:     memberRepo,
		vehicleRepo:    vehicleRepo,
		fundRepo:       fundRepo,
		settlementRepo: settlementRepo,
		auditRepo:      auditRepo,
		idGen:          idGen,
		cache:          cache,
	}
}

// SignupInput represents input for registering a member
type SignupInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// Signup registers a new member with a hashed password
func (uc *MemberUseCase) Signup(ctx context.Context, input SignupInput) (*domain.Member, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.IsValid() {
		return nil, errors.New("invalid role")
	}

	existing, err := uc.memberRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.Member{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: hashedPassword,
		Role:           role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	// Don't return hashed password
	member.HashedPassword = ""
	return member, nil
}

// AuthenticateInput represents authentication input
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies member credentials
func (uc *MemberUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.Member, error) {
	member, err := uc.memberRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !member.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if err := verifyPassword(member.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	member.HashedPassword = ""
	return member, nil
}

// GetMember retrieves a member by ID
func (uc *MemberUseCase) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.HashedPassword = ""
	return member, nil
}

// UpdateMemberInput represents input for updating a member
type UpdateMemberInput struct {
	ID       string
	Name     *string
	Role     *domain.Role
	Active   *bool
	Password *string
}

// UpdateMember updates member information
func (uc *MemberUseCase) UpdateMember(ctx context.Context, input UpdateMemberInput) (*domain.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		member.Name = *input.Name
	}

	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, errors.New("invalid role")
		}
		member.Role = *input.Role
	}

	if input.Active != nil {
		member.Active = *input.Active
	}

	if input.Password != nil {
		if err := domain.ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashedPassword, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		member.HashedPassword = hashedPassword
	}

	member.UpdatedAt = time.Now().UTC()

	if err := uc.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	member.HashedPassword = ""
	return member, nil
}

// DeleteMember removes a member and everything they own: vehicles,
// expenses, settlements, and fund movements.
func (uc *MemberUseCase) DeleteMember(ctx context.Context, id, actorID string) error {
	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.memberRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateStats(ctx, id)

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			MemberID:     actorID,
			Action:       string(domain.AuditActionMemberDelete),
			ResourceType: "member",
			ResourceID:   id,
			BeforeState:  domain.MarshalState(member),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now(),
		}
		_ = uc.auditRepo.Create(ctx, auditLog)
	}

	return nil
}

// ListMembers lists all members with pagination
func (uc *MemberUseCase) ListMembers(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)

	members, err := uc.memberRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		member.HashedPassword = ""
	}

	return members, nil
}

// MemberStats aggregates a member's inventory and financial position.
type MemberStats struct {
	MemberID         string          `json:"member_id"`
	TotalVehicles    int             `json:"total_vehicles"`
	VehiclesSold     int             `json:"vehicles_sold"`
	VehiclesInStock  int             `json:"vehicles_in_stock"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalFees        decimal.Decimal `json:"total_fees"`
	TotalNetProfit   decimal.Decimal `json:"total_net_profit"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	InvestedCapital  decimal.Decimal `json:"invested_capital"`
	WalletBalance    decimal.Decimal `json:"wallet_balance"`
}

// GetStats derives a member's stats from vehicles, settlements, and the fund
// ledger. Results are cached briefly; writes invalidate via InvalidateStats.
func (uc *MemberUseCase) GetStats(ctx context.Context, memberID string) (*MemberStats, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, statsCacheKey(memberID)); err == nil && data != nil {
			var cached MemberStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if _, err := uc.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	total, sold, err := uc.vehicleRepo.CountByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	totals, err := uc.settlementRepo.TotalsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	deposits, withdrawals, err := uc.fundRepo.ApprovedTotals(ctx, memberID)
	if err != nil {
		return nil, err
	}
	purchaseCost, err := uc.vehicleRepo.TotalPurchaseCost(ctx, memberID)
	if err != nil {
		return nil, err
	}

	balance := domain.ComputeBalance(deposits, withdrawals, purchaseCost)

	stats := &MemberStats{
		MemberID:         memberID,
		TotalVehicles:    total,
		VehiclesSold:     sold,
		VehiclesInStock:  total - sold,
		TotalRevenue:     totals.TotalRevenue,
		TotalProfit:      totals.TotalProfit,
		TotalFees:        totals.TotalFees,
		TotalNetProfit:   totals.TotalNet,
		AvailableBalance: balance.AvailableBalance,
		InvestedCapital:  balance.InvestedCapital,
		WalletBalance:    deposits.Sub(withdrawals).Add(totals.TotalRevenue).Sub(purchaseCost),
	}

	if uc.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			_ = uc.cache.Set(ctx, statsCacheKey(memberID), data, MemberStatsCacheTTL)
		}
	}

	return stats, nil
}

// InvalidateStats drops a member's cached stats after a financial write.
func (uc *MemberUseCase) InvalidateStats(ctx context.Context, memberID string) {
	uc.invalidateStats(ctx, memberID)
}

func (uc *MemberUseCase) invalidateStats(ctx context.Context, memberID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, statsCacheKey(memberID))
}

func statsCacheKey(memberID string) string {
	return fmt.Sprintf("member:stats:%s", memberID)
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
