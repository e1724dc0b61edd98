package domain

import (
	"errors"
	"time"
)

// Member represents a club member who pools funds and trades vehicles.
type Member struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Active         bool
}

// Role represents a member's access level
type Role string

const (
	// RoleAdmin manages members, reviews fund movements, and controls settings
	RoleAdmin Role = "admin"

	// RoleMember owns vehicles and requests deposits for their own account
	RoleMember Role = "member"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanReviewFunds checks if the role can approve or reject fund movements
func (r Role) CanReviewFunds() bool {
	return r == RoleAdmin
}

// CanManageSettings checks if the role can read and change app settings
func (r Role) CanManageSettings() bool {
	return r == RoleAdmin
}

// CanActForOthers checks if the role can operate on another member's resources
func (r Role) CanActForOthers() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientRole   = errors.New("insufficient role for this operation")
)
