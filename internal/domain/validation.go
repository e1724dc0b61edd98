package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidVIN      = errors.New("invalid VIN")
	ErrInvalidYear     = errors.New("invalid model year")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
	ErrInvalidFeePct   = errors.New("fee percentage must be between 0 and 100")
)

// Validation constants
const (
	MinVINLength      = 5
	MaxVINLength      = 17
	MaxMovementAmount = "1000000000" // 1 billion
	MinModelYear      = 1950
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var vinRegex = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]+$`)

// ValidateVIN validates a vehicle identification number. Accepts short
// pre-1981 VINs but rejects the letters I, O, and Q.
func ValidateVIN(vin string) error {
	vin = strings.ToUpper(strings.TrimSpace(vin))

	if len(vin) < MinVINLength || len(vin) > MaxVINLength {
		return fmt.Errorf("%w: length must be between %d and %d", ErrInvalidVIN, MinVINLength, MaxVINLength)
	}

	if !vinRegex.MatchString(vin) {
		return fmt.Errorf("%w: contains forbidden characters", ErrInvalidVIN)
	}

	return nil
}

// ValidateModelYear validates a vehicle model year
func ValidateModelYear(year int) error {
	if year < MinModelYear || year > time.Now().Year()+1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}

// ValidateAmount validates a monetary amount for movements and sales
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxMovementAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxMovementAmount)
	}

	return nil
}

// ValidateFeePct validates a franchise fee percentage
func ValidateFeePct(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidFeePct
	}
	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
