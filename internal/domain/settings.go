package domain

import "time"

// SettingKeyFranchiseFee is the app setting holding the franchise fee
// percentage applied to profitable sales.
const SettingKeyFranchiseFee = "franchise_fee_percentage"

// Setting is an admin-managed key-value configuration entry.
type Setting struct {
	Key       string
	Value     string
	UpdatedBy string
	UpdatedAt time.Time
}
