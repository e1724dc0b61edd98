package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mu      sync.RWMutex
	members map[string]*domain.Member

	CreateFunc           func(ctx context.Context, member *domain.Member) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Member, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Member, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.Member, error)
	UpdateFunc           func(ctx context.Context, member *domain.Member) error
	DeleteFunc           func(ctx context.Context, id string) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Member, error)
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{
		members: make(map[string]*domain.Member),
	}
}

// cloneMember copies a member so the store never aliases caller pointers,
// matching the value semantics of a real repository.
func cloneMember(member *domain.Member) *domain.Member {
	if member == nil {
		return nil
	}
	clone := *member
	return &clone
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.ID] = cloneMember(member)
	return nil
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if member, ok := m.members[id]; ok {
		return cloneMember(member), nil
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockMemberRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Member, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.Email == email {
			return cloneMember(member), nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockMemberRepository) Update(ctx context.Context, member *domain.Member) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.ID] = cloneMember(member)
	return nil
}

func (m *MockMemberRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members, id)
	return nil
}

func (m *MockMemberRepository) List(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var members []*domain.Member
	for _, member := range m.members {
		members = append(members, cloneMember(member))
	}
	return members, nil
}

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	CreateFunc              func(ctx context.Context, vehicle *domain.Vehicle) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Vehicle, error)
	GetByVINFunc            func(ctx context.Context, memberID, vin string) (*domain.Vehicle, error)
	UpdateFunc              func(ctx context.Context, vehicle *domain.Vehicle) error
	MarkSoldIfInStockFunc   func(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) (bool, error)
	DeleteFunc              func(ctx context.Context, id string) error
	ListFunc                func(ctx context.Context, filter usecase.VehicleFilter) ([]*domain.Vehicle, error)
	TotalPurchaseCostFunc   func(ctx context.Context, memberID string) (decimal.Decimal, error)
	TotalPurchaseCostTxFunc func(ctx context.Context, tx usecase.Transaction, memberID string) (decimal.Decimal, error)
	CountByMemberFunc       func(ctx context.Context, memberID string) (int, int, error)
}

func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, vehicle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vehicles[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *MockVehicleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Vehicle, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockVehicleRepository) GetByVIN(ctx context.Context, memberID, vin string) (*domain.Vehicle, error) {
	if m.GetByVINFunc != nil {
		return m.GetByVINFunc(ctx, memberID, vin)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.MemberID == memberID && v.VIN == vin {
			return v, nil
		}
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, vehicle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

// MarkSoldIfInStock emulates the conditional update: it flips the status
// under the lock and reports whether this call performed the flip.
func (m *MockVehicleRepository) MarkSoldIfInStock(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) (bool, error) {
	if m.MarkSoldIfInStockFunc != nil {
		return m.MarkSoldIfInStockFunc(ctx, tx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return false, domain.ErrVehicleNotFound
	}
	if v.Status != domain.VehicleStatusInStock {
		return false, nil
	}
	v.Status = domain.VehicleStatusSold
	v.UpdatedAt = updatedAt
	return true, nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vehicles, id)
	return nil
}

func (m *MockVehicleRepository) List(ctx context.Context, filter usecase.VehicleFilter) ([]*domain.Vehicle, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var vehicles []*domain.Vehicle
	for _, v := range m.vehicles {
		if filter.MemberID != "" && v.MemberID != filter.MemberID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (m *MockVehicleRepository) TotalPurchaseCost(ctx context.Context, memberID string) (decimal.Decimal, error) {
	if m.TotalPurchaseCostFunc != nil {
		return m.TotalPurchaseCostFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, v := range m.vehicles {
		if v.MemberID == memberID {
			total = total.Add(v.PurchasePrice)
		}
	}
	return total, nil
}

func (m *MockVehicleRepository) TotalPurchaseCostTx(ctx context.Context, tx usecase.Transaction, memberID string) (decimal.Decimal, error) {
	if m.TotalPurchaseCostTxFunc != nil {
		return m.TotalPurchaseCostTxFunc(ctx, tx, memberID)
	}
	return m.TotalPurchaseCost(ctx, memberID)
}

func (m *MockVehicleRepository) CountByMember(ctx context.Context, memberID string) (int, int, error) {
	if m.CountByMemberFunc != nil {
		return m.CountByMemberFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total, sold := 0, 0
	for _, v := range m.vehicles {
		if v.MemberID != memberID {
			continue
		}
		total++
		if v.Status == domain.VehicleStatusSold {
			sold++
		}
	}
	return total, sold, nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.AdditionalExpense

	CreateFunc           func(ctx context.Context, expense *domain.AdditionalExpense) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.AdditionalExpense, error)
	UpdateFunc           func(ctx context.Context, expense *domain.AdditionalExpense) error
	DeleteFunc           func(ctx context.Context, id string) error
	ListByVehicleFunc    func(ctx context.Context, vehicleID string) ([]*domain.AdditionalExpense, error)
	TotalByVehicleFunc   func(ctx context.Context, vehicleID string) (decimal.Decimal, error)
	TotalByVehicleTxFunc func(ctx context.Context, tx usecase.Transaction, vehicleID string) (decimal.Decimal, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.AdditionalExpense),
	}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.AdditionalExpense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.AdditionalExpense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenses[id]; ok {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.AdditionalExpense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.AdditionalExpense, error) {
	if m.ListByVehicleFunc != nil {
		return m.ListByVehicleFunc(ctx, vehicleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.AdditionalExpense
	for _, e := range m.expenses {
		if e.VehicleID == vehicleID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (m *MockExpenseRepository) TotalByVehicle(ctx context.Context, vehicleID string) (decimal.Decimal, error) {
	if m.TotalByVehicleFunc != nil {
		return m.TotalByVehicleFunc(ctx, vehicleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, e := range m.expenses {
		if e.VehicleID == vehicleID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (m *MockExpenseRepository) TotalByVehicleTx(ctx context.Context, tx usecase.Transaction, vehicleID string) (decimal.Decimal, error) {
	if m.TotalByVehicleTxFunc != nil {
		return m.TotalByVehicleTxFunc(ctx, tx, vehicleID)
	}
	return m.TotalByVehicle(ctx, vehicleID)
}

// MockSettlementRepository is a mock implementation of SettlementRepository.
type MockSettlementRepository struct {
	mu          sync.RWMutex
	settlements map[string]*domain.SaleSettlement

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, settlement *domain.SaleSettlement) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.SaleSettlement, error)
	GetByVehicleFunc   func(ctx context.Context, vehicleID string) (*domain.SaleSettlement, error)
	ListByMemberFunc   func(ctx context.Context, memberID string, limit, offset int) ([]*domain.SaleSettlement, error)
	ListFunc           func(ctx context.Context, limit, offset int) ([]*domain.SaleSettlement, error)
	TotalsByMemberFunc func(ctx context.Context, memberID string) (*usecase.SettlementTotals, error)
}

func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{
		settlements: make(map[string]*domain.SaleSettlement),
	}
}

func (m *MockSettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.SaleSettlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, settlement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements[settlement.ID] = settlement
	return nil
}

func (m *MockSettlementRepository) GetByID(ctx context.Context, id string) (*domain.SaleSettlement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settlements[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSettlementNotFound
}

func (m *MockSettlementRepository) GetByVehicle(ctx context.Context, vehicleID string) (*domain.SaleSettlement, error) {
	if m.GetByVehicleFunc != nil {
		return m.GetByVehicleFunc(ctx, vehicleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.settlements {
		if s.VehicleID == vehicleID {
			return s, nil
		}
	}
	return nil, domain.ErrSettlementNotFound
}

func (m *MockSettlementRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.SaleSettlement, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var settlements []*domain.SaleSettlement
	for _, s := range m.settlements {
		if s.MemberID == memberID {
			settlements = append(settlements, s)
		}
	}
	return settlements, nil
}

func (m *MockSettlementRepository) List(ctx context.Context, limit, offset int) ([]*domain.SaleSettlement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if offset > 0 {
		return nil, nil
	}
	var settlements []*domain.SaleSettlement
	for _, s := range m.settlements {
		settlements = append(settlements, s)
	}
	return settlements, nil
}

func (m *MockSettlementRepository) TotalsByMember(ctx context.Context, memberID string) (*usecase.SettlementTotals, error) {
	if m.TotalsByMemberFunc != nil {
		return m.TotalsByMemberFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := &usecase.SettlementTotals{
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
		TotalFees:    decimal.Zero,
		TotalNet:     decimal.Zero,
	}
	for _, s := range m.settlements {
		if s.MemberID != memberID {
			continue
		}
		totals.SoldCount++
		totals.TotalRevenue = totals.TotalRevenue.Add(s.SoldPrice)
		totals.TotalProfit = totals.TotalProfit.Add(s.Profit)
		totals.TotalFees = totals.TotalFees.Add(s.FeeAmount)
		totals.TotalNet = totals.TotalNet.Add(s.NetProfit)
	}
	return totals, nil
}

// MockFundRepository is a mock implementation of FundRepository.
type MockFundRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.FundMovement

	CreateFunc           func(ctx context.Context, movement *domain.FundMovement) error
	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, movement *domain.FundMovement) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.FundMovement, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.FundMovement, error)
	ReviewIfPendingFunc  func(ctx context.Context, tx usecase.Transaction, id string, status domain.MovementStatus, reviewedBy, rejectionReason string, reviewedAt time.Time) (bool, error)
	ListByMemberFunc     func(ctx context.Context, memberID string, limit, offset int) ([]*domain.FundMovement, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.FundMovement, error)
	ApprovedTotalsFunc   func(ctx context.Context, memberID string) (decimal.Decimal, decimal.Decimal, error)
	StatsFunc            func(ctx context.Context) (*usecase.MovementStats, error)
}

func NewMockFundRepository() *MockFundRepository {
	return &MockFundRepository{
		movements: make(map[string]*domain.FundMovement),
	}
}

func (m *MockFundRepository) Create(ctx context.Context, movement *domain.FundMovement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockFundRepository) CreateTx(ctx context.Context, tx usecase.Transaction, movement *domain.FundMovement) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, movement)
	}
	return m.Create(ctx, movement)
}

func (m *MockFundRepository) GetByID(ctx context.Context, id string) (*domain.FundMovement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mv, ok := m.movements[id]; ok {
		return mv, nil
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockFundRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FundMovement, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

// ReviewIfPending emulates the conditional update under the mock's lock.
func (m *MockFundRepository) ReviewIfPending(ctx context.Context, tx usecase.Transaction, id string, status domain.MovementStatus, reviewedBy, rejectionReason string, reviewedAt time.Time) (bool, error) {
	if m.ReviewIfPendingFunc != nil {
		return m.ReviewIfPendingFunc(ctx, tx, id, status, reviewedBy, rejectionReason, reviewedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movements[id]
	if !ok {
		return false, domain.ErrMovementNotFound
	}
	if mv.Status != domain.MovementStatusPending {
		return false, nil
	}
	mv.Status = status
	mv.ReviewedBy = reviewedBy
	mv.RejectionReason = rejectionReason
	mv.ReviewedAt = &reviewedAt
	return true, nil
}

func (m *MockFundRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.FundMovement, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.FundMovement
	for _, mv := range m.movements {
		if mv.MemberID == memberID {
			movements = append(movements, mv)
		}
	}
	return movements, nil
}

func (m *MockFundRepository) List(ctx context.Context, limit, offset int) ([]*domain.FundMovement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.FundMovement
	for _, mv := range m.movements {
		movements = append(movements, mv)
	}
	return movements, nil
}

func (m *MockFundRepository) ApprovedTotals(ctx context.Context, memberID string) (decimal.Decimal, decimal.Decimal, error) {
	if m.ApprovedTotalsFunc != nil {
		return m.ApprovedTotalsFunc(ctx, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	deposits, withdrawals := decimal.Zero, decimal.Zero
	for _, mv := range m.movements {
		if mv.MemberID != memberID || mv.Status != domain.MovementStatusApproved {
			continue
		}
		switch mv.Kind {
		case domain.MovementKindDeposit:
			deposits = deposits.Add(mv.Amount)
		case domain.MovementKindWithdrawal:
			withdrawals = withdrawals.Add(mv.Amount)
		}
	}
	return deposits, withdrawals, nil
}

func (m *MockFundRepository) ApprovedTotalsTx(ctx context.Context, tx usecase.Transaction, memberID string) (decimal.Decimal, decimal.Decimal, error) {
	return m.ApprovedTotals(ctx, memberID)
}

func (m *MockFundRepository) Stats(ctx context.Context) (*usecase.MovementStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &usecase.MovementStats{
		PendingAmount:  decimal.Zero,
		ApprovedAmount: decimal.Zero,
		RejectedAmount: decimal.Zero,
	}
	for _, mv := range m.movements {
		switch mv.Status {
		case domain.MovementStatusPending:
			stats.PendingCount++
			stats.PendingAmount = stats.PendingAmount.Add(mv.Amount)
		case domain.MovementStatusApproved:
			stats.ApprovedCount++
			stats.ApprovedAmount = stats.ApprovedAmount.Add(mv.Amount)
		case domain.MovementStatusRejected:
			stats.RejectedCount++
			stats.RejectedAmount = stats.RejectedAmount.Add(mv.Amount)
		}
	}
	return stats, nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository.
type MockSettingsRepository struct {
	mu       sync.RWMutex
	settings map[string]*domain.Setting

	GetFunc    func(ctx context.Context, key string) (*domain.Setting, error)
	UpsertFunc func(ctx context.Context, setting *domain.Setting) error
	ListFunc   func(ctx context.Context) ([]*domain.Setting, error)
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		settings: make(map[string]*domain.Setting),
	}
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settings[key]; ok {
		return s, nil
	}
	return nil, domain.ErrSettingNotFound
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, setting)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[setting.Key] = setting
	return nil
}

func (m *MockSettingsRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var settings []*domain.Setting
	for _, s := range m.settings {
		settings = append(settings, s)
	}
	return settings, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{
		events: make(map[string]*domain.OutboxEvent),
	}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok {
		e.Published = true
		e.PublishedAt = &publishedAt
	}
	return nil
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if e.AggregateType == aggregateType && e.AggregateID == aggregateID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			delete(m.events, id)
		}
	}
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...), nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// Logs returns a copy of the recorded audit logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockFeePolicy is a mock implementation of FeePolicyResolver.
type MockFeePolicy struct {
	Pct  decimal.Decimal
	Err  error
	mu   sync.Mutex
	hits int
}

func (m *MockFeePolicy) FranchiseFeePct(ctx context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
	if m.Err != nil {
		return decimal.Zero, m.Err
	}
	return m.Pct, nil
}

// Hits reports how many times the policy was resolved.
func (m *MockFeePolicy) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
