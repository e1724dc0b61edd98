package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging
type AuditLog struct {
	ID           string
	MemberID     string // Who performed the action
	Action       string // What action (vehicle.sell, fund.review, etc.)
	ResourceType string // Type of resource (vehicle, settlement, fund_movement)
	ResourceID   string // ID of the resource
	IPAddress    string // Client IP address
	UserAgent    string // Client user agent
	RequestID    string // Request ID for tracing
	BeforeState  JSON   // State before the action
	AfterState   JSON   // State after the action
	Status       string // success, failure, error
	ErrorMessage string // If status=error, the error message
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Vehicle actions
	AuditActionVehicleCreate AuditAction = "vehicle.create"
	AuditActionVehicleUpdate AuditAction = "vehicle.update"
	AuditActionVehicleDelete AuditAction = "vehicle.delete"
	AuditActionVehicleSell   AuditAction = "vehicle.sell"

	// Fund actions
	AuditActionFundDeposit  AuditAction = "fund.deposit"
	AuditActionFundWithdraw AuditAction = "fund.withdraw"
	AuditActionFundReview   AuditAction = "fund.review"

	// Expense actions
	AuditActionExpenseCreate AuditAction = "expense.create"
	AuditActionExpenseUpdate AuditAction = "expense.update"
	AuditActionExpenseDelete AuditAction = "expense.delete"

	// Admin actions
	AuditActionSettingUpdate AuditAction = "setting.update"
	AuditActionMemberDelete  AuditAction = "member.delete"

	// Auth actions
	AuditActionMemberLogin  AuditAction = "member.login"
	AuditActionMemberSignup AuditAction = "member.signup"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
	AuditStatusError   AuditStatus = "error"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	MemberID     string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
