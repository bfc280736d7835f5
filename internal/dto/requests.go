package dto

import (
	"time"

	"github.com/google/uuid"
)

// AddressRequest — адрес одной из сторон переезда.
type AddressRequest struct {
	Street         string `json:"street" binding:"required"`
	HouseNumber    string `json:"house_number" binding:"required"`
	PostalCode     string `json:"postal_code" binding:"required"`
	City           string `json:"city" binding:"required"`
	Country        string `json:"country" binding:"required"`
	AdditionalInfo string `json:"additional_info"`
}

// FloorRequest — этаж и условия подъёма.
type FloorRequest struct {
	Floor                 int  `json:"floor"`
	HasElevator           bool `json:"has_elevator"`
	NeedsNoParkingZone    bool `json:"needs_no_parking_zone"`
	WalkingDistanceMeters *int `json:"walking_distance_meters"`
	NarrowStairs          bool `json:"narrow_stairs"`
	CarryOverThresholds   bool `json:"carry_over_thresholds"`
}

type CreateMoveRequestRequest struct {
	VideoID    uuid.UUID      `json:"video_id" binding:"required"`
	From       AddressRequest `json:"from" binding:"required"`
	To         AddressRequest `json:"to" binding:"required"`
	FromFloor  FloorRequest   `json:"from_floor"`
	ToFloor    FloorRequest   `json:"to_floor"`
	NeedsBoxes bool           `json:"needs_boxes"`
	BoxesCount *int           `json:"boxes_count"`
	MoveDate   time.Time      `json:"move_date" binding:"required"`
}

type AssignProviderRequest struct {
	ProviderID uuid.UUID `json:"provider_id" binding:"required"`
}

// DetectedItemRequest — позиция из результатов распознавания видео.
type DetectedItemRequest struct {
	Name       string   `json:"name" binding:"required"`
	Quantity   int      `json:"quantity" binding:"required,min=1"`
	Confidence float64  `json:"confidence"`
	Category   string   `json:"category"`
	Volume     *float64 `json:"volume"`
}

type CreateInventoryRequest struct {
	Items []DetectedItemRequest `json:"items" binding:"required"`
}

// ItemRequest — позиция при ручном редактировании описи.
type ItemRequest struct {
	Name       string   `json:"name" binding:"required"`
	Quantity   int      `json:"quantity" binding:"required,min=1"`
	Confidence *float64 `json:"confidence"`
	Source     string   `json:"source" binding:"required"`
	Category   string   `json:"category"`
	Volume     *float64 `json:"volume"`
}

type ReplaceItemsRequest struct {
	Items []ItemRequest `json:"items" binding:"required"`
}

type CalculateQuoteRequest struct {
	MoveRequestID uuid.UUID `json:"move_request_id" binding:"required"`
}

type SubmitBidRequest struct {
	ProviderID    uuid.UUID `json:"provider_id" binding:"required"`
	MoveRequestID uuid.UUID `json:"move_request_id" binding:"required"`
	AdjustedPrice *float64  `json:"adjusted_price"`
	ValidityDays  int       `json:"validity_days"`
	Notes         string    `json:"notes"`
}

type RejectBidRequest struct {
	Reason string `json:"reason"`
}
