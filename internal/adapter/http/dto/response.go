package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      m.Role,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// ListMembersResponse wraps a member listing.
type ListMembersResponse struct {
	Members []*MemberResponse `json:"members"`
	Total   int64             `json:"total"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token  string          `json:"token"`
	Member *MemberResponse `json:"member"`
}

// VehicleResponse represents a vehicle in API responses.
type VehicleResponse struct {
	ID            string               `json:"id"`
	MemberID      string               `json:"member_id"`
	VIN           string               `json:"vin"`
	Make          string               `json:"make"`
	Model         string               `json:"model"`
	Year          int                  `json:"year"`
	PurchasePrice decimal.Decimal      `json:"purchase_price"`
	PurchaseDate  time.Time            `json:"purchase_date"`
	Status        domain.VehicleStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// VehicleFromDomain converts a domain vehicle to a response.
func VehicleFromDomain(v *domain.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:            v.ID,
		MemberID:      v.MemberID,
		VIN:           v.VIN,
		Make:          v.Make,
		Model:         v.Model,
		Year:          v.Year,
		PurchasePrice: v.PurchasePrice,
		PurchaseDate:  v.PurchaseDate,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// VehiclesFromDomain converts domain vehicles to responses.
func VehiclesFromDomain(vehicles []*domain.Vehicle) []*VehicleResponse {
	result := make([]*VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		result[i] = VehicleFromDomain(v)
	}
	return result
}

// ListVehiclesResponse wraps a vehicle listing.
type ListVehiclesResponse struct {
	Vehicles []*VehicleResponse `json:"vehicles"`
	Total    int64              `json:"total"`
}

// ExpenseResponse represents an additional expense in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	VehicleID   string          `json:"vehicle_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  time.Time       `json:"incurred_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.AdditionalExpense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		VehicleID:   e.VehicleID,
		Description: e.Description,
		Amount:      e.Amount,
		IncurredAt:  e.IncurredAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.AdditionalExpense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ListExpensesResponse wraps an expense listing with the running total.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    decimal.Decimal    `json:"total"`
}

// SettlementResponse represents a sale settlement in API responses.
type SettlementResponse struct {
	ID        string          `json:"id"`
	VehicleID string          `json:"vehicle_id"`
	MemberID  string          `json:"member_id"`
	SoldPrice decimal.Decimal `json:"sold_price"`
	SoldDate  time.Time       `json:"sold_date"`

	VIN           string          `json:"vin"`
	Make          string          `json:"make"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	Expenses      decimal.Decimal `json:"expenses"`

	Profit    decimal.Decimal `json:"profit"`
	FeePct    decimal.Decimal `json:"fee_pct"`
	FeeAmount decimal.Decimal `json:"fee_amount"`
	NetProfit decimal.Decimal `json:"net_profit"`

	CreatedAt time.Time `json:"created_at"`
}

// SettlementFromDomain converts a domain settlement to a response.
func SettlementFromDomain(s *domain.SaleSettlement) *SettlementResponse {
	return &SettlementResponse{
		ID:            s.ID,
		VehicleID:     s.VehicleID,
		MemberID:      s.MemberID,
		SoldPrice:     s.SoldPrice,
		SoldDate:      s.SoldDate,
		VIN:           s.VINSnapshot,
		Make:          s.MakeSnapshot,
		Model:         s.ModelSnapshot,
		Year:          s.YearSnapshot,
		PurchasePrice: s.PurchasePriceSnapshot,
		PurchaseDate:  s.PurchaseDateSnapshot,
		Expenses:      s.ExpensesSnapshot,
		Profit:        s.Profit,
		FeePct:        s.FeePct,
		FeeAmount:     s.FeeAmount,
		NetProfit:     s.NetProfit,
		CreatedAt:     s.CreatedAt,
	}
}

// SettlementsFromDomain converts domain settlements to responses.
func SettlementsFromDomain(settlements []*domain.SaleSettlement) []*SettlementResponse {
	result := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementFromDomain(s)
	}
	return result
}

// ListSettlementsResponse wraps a settlement listing.
type ListSettlementsResponse struct {
	Settlements []*SettlementResponse `json:"settlements"`
	Total       int64                 `json:"total"`
}

// MovementResponse represents a fund movement in API responses.
type MovementResponse struct {
	ID              string                `json:"id"`
	MemberID        string                `json:"member_id"`
	Kind            domain.MovementKind   `json:"kind"`
	Amount          decimal.Decimal       `json:"amount"`
	Status          domain.MovementStatus `json:"status"`
	Notes           string                `json:"notes,omitempty"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	ReviewedBy      string                `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time            `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// MovementFromDomain converts a domain fund movement to a response.
func MovementFromDomain(m *domain.FundMovement) *MovementResponse {
	return &MovementResponse{
		ID:              m.ID,
		MemberID:        m.MemberID,
		Kind:            m.Kind,
		Amount:          m.Amount,
		Status:          m.Status,
		Notes:           m.Notes,
		RejectionReason: m.RejectionReason,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// MovementsFromDomain converts domain fund movements to responses.
func MovementsFromDomain(movements []*domain.FundMovement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// ListMovementsResponse wraps a movement listing.
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Total     int64               `json:"total"`
}

// WithdrawalResponse carries the recorded withdrawal with balances around it.
type WithdrawalResponse struct {
	Movement      *MovementResponse `json:"movement"`
	BalanceBefore decimal.Decimal   `json:"balance_before"`
	BalanceAfter  decimal.Decimal   `json:"balance_after"`
}

// WithdrawalFromResult converts a withdrawal result to a response.
func WithdrawalFromResult(r *usecase.WithdrawResult) *WithdrawalResponse {
	return &WithdrawalResponse{
		Movement:      MovementFromDomain(r.Movement),
		BalanceBefore: r.BalanceBefore,
		BalanceAfter:  r.BalanceAfter,
	}
}

// BalanceResponse represents a member's derived balances.
type BalanceResponse struct {
	MemberID         string          `json:"member_id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	InvestedCapital  decimal.Decimal `json:"invested_capital"`
}

// SettingResponse represents an app setting in API responses.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingFromDomain converts a domain setting to a response.
func SettingFromDomain(s *domain.Setting) *SettingResponse {
	return &SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}

// SettingsFromDomain converts domain settings to responses.
func SettingsFromDomain(settings []*domain.Setting) []*SettingResponse {
	result := make([]*SettingResponse, len(settings))
	for i, s := range settings {
		result[i] = SettingFromDomain(s)
	}
	return result
}

// MemberReconciliationResponse is the recomputed position of one member.
type MemberReconciliationResponse struct {
	MemberID         string          `json:"member_id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	InvestedCapital  decimal.Decimal `json:"invested_capital"`
	Deposits         decimal.Decimal `json:"deposits"`
	Withdrawals      decimal.Decimal `json:"withdrawals"`
	PurchaseCost     decimal.Decimal `json:"purchase_cost"`
	CheckedAt        time.Time       `json:"checked_at"`
}

// ReconciliationFromResult converts a member reconciliation to a response.
func ReconciliationFromResult(r *usecase.MemberReconciliation) *MemberReconciliationResponse {
	return &MemberReconciliationResponse{
		MemberID:         r.MemberID,
		AvailableBalance: r.AvailableBalance,
		InvestedCapital:  r.InvestedCapital,
		Deposits:         r.Deposits,
		Withdrawals:      r.Withdrawals,
		PurchaseCost:     r.PurchaseCost,
		CheckedAt:        r.CheckedAt,
	}
}

// DiscrepancyResponse flags a settlement whose figures drifted.
type DiscrepancyResponse struct {
	SettlementID string `json:"settlement_id"`
	MemberID     string `json:"member_id"`
	Detail       string `json:"detail"`
}

// ReconciliationReportResponse is the club-wide consistency report.
type ReconciliationReportResponse struct {
	MembersChecked     int                             `json:"members_checked"`
	Members            []*MemberReconciliationResponse `json:"members"`
	SettlementsChecked int                             `json:"settlements_checked"`
	Discrepancies      []*DiscrepancyResponse          `json:"discrepancies"`
	Consistent         bool                            `json:"consistent"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReportFromResult converts a reconciliation report to a response.
func ReportFromResult(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	members := make([]*MemberReconciliationResponse, len(r.Members))
	for i, m := range r.Members {
		members[i] = ReconciliationFromResult(m)
	}
	discrepancies := make([]*DiscrepancyResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = &DiscrepancyResponse{
			SettlementID: d.SettlementID,
			MemberID:     d.MemberID,
			Detail:       d.Detail,
		}
	}
	return &ReconciliationReportResponse{
		MembersChecked:     r.MembersChecked,
		Members:            members,
		SettlementsChecked: r.SettlementsChecked,
		Discrepancies:      discrepancies,
		Consistent:         r.Consistent,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
