package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusInStock VehicleStatus = "IN_STOCK"
	VehicleStatusSold    VehicleStatus = "SOLD"
)

// Vehicle represents a vehicle held in a member's inventory.
type Vehicle struct {
	ID            string
	MemberID      string
	VIN           string
	Make          string
	Model         string
	Year          int
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
	Status        VehicleStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsSold reports whether the vehicle has left the inventory.
func (v *Vehicle) IsSold() bool {
	return v.Status == VehicleStatusSold
}

// Validate checks if the vehicle is well formed.
func (v *Vehicle) Validate() error {
	if err := ValidateVIN(v.VIN); err != nil {
		return err
	}
	if err := ValidateModelYear(v.Year); err != nil {
		return err
	}
	if v.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
