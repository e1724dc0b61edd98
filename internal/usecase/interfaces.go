package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
)

// MemberRepository defines data access for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	// GetByIDForUpdate locks the member row. Used to serialize balance-sensitive
	// writes for one member against each other.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	// Delete removes the member and cascades to vehicles, expenses,
	// settlements, and fund movements.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Member, error)
}

// VehicleFilter narrows vehicle listings.
type VehicleFilter struct {
	MemberID string
	Status   domain.VehicleStatus
	Limit    int
	Offset   int
}

// VehicleRepository defines data access for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Vehicle, error)
	GetByVIN(ctx context.Context, memberID, vin string) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	// MarkSoldIfInStock flips the vehicle to SOLD only when it is still
	// IN_STOCK. Returns false when another settlement got there first.
	MarkSoldIfInStock(ctx context.Context, tx Transaction, id string, updatedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter VehicleFilter) ([]*domain.Vehicle, error)
	// TotalPurchaseCost sums purchase prices over every vehicle the member
	// has ever owned, sold ones included.
	TotalPurchaseCost(ctx context.Context, memberID string) (decimal.Decimal, error)
	TotalPurchaseCostTx(ctx context.Context, tx Transaction, memberID string) (decimal.Decimal, error)
	CountByMember(ctx context.Context, memberID string) (total, sold int, err error)
}

// ExpenseRepository defines data access for additional expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.AdditionalExpense) error
	GetByID(ctx context.Context, id string) (*domain.AdditionalExpense, error)
	Update(ctx context.Context, expense *domain.AdditionalExpense) error
	Delete(ctx context.Context, id string) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.AdditionalExpense, error)
	TotalByVehicle(ctx context.Context, vehicleID string) (decimal.Decimal, error)
	TotalByVehicleTx(ctx context.Context, tx Transaction, vehicleID string) (decimal.Decimal, error)
}

// SettlementTotals aggregates settlement figures for one member.
type SettlementTotals struct {
	SoldCount    int
	TotalRevenue decimal.Decimal
	TotalProfit  decimal.Decimal
	TotalFees    decimal.Decimal
	TotalNet     decimal.Decimal
}

// SettlementRepository defines data access for sale settlements.
type SettlementRepository interface {
	Create(ctx context.Context, tx Transaction, settlement *domain.SaleSettlement) error
	GetByID(ctx context.Context, id string) (*domain.SaleSettlement, error)
	GetByVehicle(ctx context.Context, vehicleID string) (*domain.SaleSettlement, error)
	ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.SaleSettlement, error)
	List(ctx context.Context, limit, offset int) ([]*domain.SaleSettlement, error)
	TotalsByMember(ctx context.Context, memberID string) (*SettlementTotals, error)
}

// MovementStats aggregates fund movements by review status.
type MovementStats struct {
	PendingCount   int             `json:"pending_count"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	ApprovedCount  int             `json:"approved_count"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	RejectedCount  int             `json:"rejected_count"`
	RejectedAmount decimal.Decimal `json:"rejected_amount"`
}

// FundRepository defines data access for fund movements.
type FundRepository interface {
	Create(ctx context.Context, movement *domain.FundMovement) error
	CreateTx(ctx context.Context, tx Transaction, movement *domain.FundMovement) error
	GetByID(ctx context.Context, id string) (*domain.FundMovement, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.FundMovement, error)
	// ReviewIfPending applies a review decision only when the movement is
	// still pending. Returns false when it was already reviewed.
	ReviewIfPending(ctx context.Context, tx Transaction, id string, status domain.MovementStatus, reviewedBy, rejectionReason string, reviewedAt time.Time) (bool, error)
	ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.FundMovement, error)
	List(ctx context.Context, limit, offset int) ([]*domain.FundMovement, error)
	// ApprovedTotals returns gross approved deposits and withdrawals for a member.
	ApprovedTotals(ctx context.Context, memberID string) (deposits, withdrawals decimal.Decimal, err error)
	ApprovedTotalsTx(ctx context.Context, tx Transaction, memberID string) (deposits, withdrawals decimal.Decimal, err error)
	Stats(ctx context.Context) (*MovementStats, error)
}

// SettingsRepository defines data access for app settings.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
	List(ctx context.Context) ([]*domain.Setting, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// FeePolicyResolver resolves the franchise fee percentage applied to a
// profitable sale. Implementations read the policy fresh on every call.
type FeePolicyResolver interface {
	FranchiseFeePct(ctx context.Context) (decimal.Decimal, error)
}

// Retrier retries an operation on transient failures such as deadlocks.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// StatsInvalidator drops a member's cached stats after a financial write.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context, memberID string)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
