package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/usecase"
)

// SignupRequest represents a member signup request.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *SignupRequest) ToUseCaseInput() usecase.SignupInput {
	return usecase.SignupInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateMemberRequest represents a request to update a member profile.
type UpdateMemberRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Password *string `json:"password,omitempty"`
}

// CreateVehicleRequest represents a request to add a vehicle.
type CreateVehicleRequest struct {
	// MemberID is honored only for admins; members always create their own.
	MemberID      string          `json:"member_id,omitempty"`
	VIN           string          `json:"vin"`
	Make          string          `json:"make"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  *time.Time      `json:"purchase_date,omitempty"`
}

// UpdateVehicleRequest represents a request to update vehicle attributes.
type UpdateVehicleRequest struct {
	Make  *string `json:"make,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`
}

// SettleVehicleRequest represents a request to record a vehicle sale.
type SettleVehicleRequest struct {
	SoldPrice decimal.Decimal `json:"sold_price"`
	SoldDate  *time.Time      `json:"sold_date,omitempty"`
}

// AddExpenseRequest represents a request to record an expense.
type AddExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  *time.Time      `json:"incurred_at,omitempty"`
}

// UpdateExpenseRequest represents a request to edit an expense.
type UpdateExpenseRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// DepositRequest represents a member deposit request.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// AdjustFundsRequest represents an admin fund adjustment for a member.
type AdjustFundsRequest struct {
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes,omitempty"`
}

// ReviewMovementRequest represents an admin review decision.
type ReviewMovementRequest struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// UpdateSettingRequest represents a request to update an app setting.
type UpdateSettingRequest struct {
	Value string `json:"value"`
}
