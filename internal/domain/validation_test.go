package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateVIN(t *testing.T) {
	tests := []struct {
		name        string
		vin         string
		expectError bool
	}{
		{name: "modern 17-char VIN", vin: "1HGCM82633A004352"},
		{name: "short pre-1981 VIN", vin: "CE140S100001"},
		{name: "lowercase accepted", vin: "1hgcm82633a004352"},
		{name: "too short", vin: "AB12", expectError: true},
		{name: "too long", vin: "1HGCM82633A00435299", expectError: true},
		{name: "contains letter O", vin: "1HGCM82633O004352", expectError: true},
		{name: "contains symbol", vin: "1HGCM-2633A004352", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVIN(tt.vin)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.NewFromInt(100)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if err := ValidateAmount(decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	huge, _ := decimal.NewFromString("2000000000")
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateFeePct(t *testing.T) {
	if err := ValidateFeePct(decimal.NewFromInt(10)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFeePct(decimal.Zero); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFeePct(decimal.NewFromInt(101)); !errors.Is(err, ErrInvalidFeePct) {
		t.Errorf("expected ErrInvalidFeePct, got %v", err)
	}
	if err := ValidateFeePct(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidFeePct) {
		t.Errorf("expected ErrInvalidFeePct, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("member@club.example"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{name: "strong password", password: "Secret123"},
		{name: "too short", password: "Ab1", expectError: true},
		{name: "missing uppercase", password: "secret123", expectError: true},
		{name: "missing number", password: "SecretOnly", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset, err := ValidatePagination(0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults 50/0, got %d/%d", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("expected cap 1000, got %d", limit)
	}
}
