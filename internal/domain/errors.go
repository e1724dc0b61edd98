package domain

import "errors"

var (
	// Vehicle errors
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrVehicleAlreadySold = errors.New("vehicle is already sold")
	ErrDuplicateVIN       = errors.New("a vehicle with this VIN already exists in the inventory")

	// Settlement errors
	ErrSettlementNotFound     = errors.New("settlement not found")
	ErrSettlementInconsistent = errors.New("settlement figures do not match recorded snapshot")
	ErrPolicyUnavailable      = errors.New("fee policy unavailable")

	// Fund ledger errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidMovementKind = errors.New("invalid fund movement kind")
	ErrInsufficientBalance = errors.New("withdrawal exceeds available balance")
	ErrMovementNotFound    = errors.New("fund movement not found")
	ErrAlreadyReviewed     = errors.New("fund movement has already been reviewed")

	// Expense errors
	ErrExpenseNotFound = errors.New("expense not found")

	// Member errors
	ErrMemberNotFound = errors.New("member not found")
	ErrEmailTaken     = errors.New("email is already registered")

	// Settings errors
	ErrSettingNotFound = errors.New("setting not found")
)
