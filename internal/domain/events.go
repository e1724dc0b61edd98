package domain

import "time"

// Event types
const (
	EventTypeSettlementCreated = "settlement.created"
	EventTypeMovementRecorded  = "fund_movement.recorded"
	EventTypeMovementReviewed  = "fund_movement.reviewed"
	EventTypeVehicleCreated    = "vehicle.created"
)

// Aggregate types
const (
	AggregateTypeSettlement = "settlement"
	AggregateTypeMovement   = "fund_movement"
	AggregateTypeVehicle    = "vehicle"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// SettlementCreatedEvent payload
type SettlementCreatedEvent struct {
	SettlementID string `json:"settlement_id"`
	VehicleID    string `json:"vehicle_id"`
	MemberID     string `json:"member_id"`
	SoldPrice    string `json:"sold_price"`
	NetProfit    string `json:"net_profit"`
	EventAt      string `json:"event_at"`
}

// MovementRecordedEvent payload
type MovementRecordedEvent struct {
	MovementID string `json:"movement_id"`
	MemberID   string `json:"member_id"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

// MovementReviewedEvent payload
type MovementReviewedEvent struct {
	MovementID string `json:"movement_id"`
	ReviewedBy string `json:"reviewed_by"`
	Status     string `json:"status"`
}

// VehicleCreatedEvent payload
type VehicleCreatedEvent struct {
	VehicleID     string `json:"vehicle_id"`
	MemberID      string `json:"member_id"`
	VIN           string `json:"vin"`
	PurchasePrice string `json:"purchase_price"`
}
