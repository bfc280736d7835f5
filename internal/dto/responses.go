package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
)

type AddressResponse struct {
	Street         string `json:"street"`
	HouseNumber    string `json:"house_number"`
	PostalCode     string `json:"postal_code"`
	City           string `json:"city"`
	Country        string `json:"country"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

type FloorResponse struct {
	Floor                 int  `json:"floor"`
	HasElevator           bool `json:"has_elevator"`
	NeedsNoParkingZone    bool `json:"needs_no_parking_zone"`
	WalkingDistanceMeters *int `json:"walking_distance_meters,omitempty"`
	NarrowStairs          bool `json:"narrow_stairs"`
	CarryOverThresholds   bool `json:"carry_over_thresholds"`
}

type MoveDetailsResponse struct {
	From       AddressResponse `json:"from"`
	To         AddressResponse `json:"to"`
	FromFloor  FloorResponse   `json:"from_floor"`
	ToFloor    FloorResponse   `json:"to_floor"`
	NeedsBoxes bool            `json:"needs_boxes"`
	BoxesCount *int            `json:"boxes_count,omitempty"`
	MoveDate   time.Time       `json:"move_date"`
}

type MoveRequestResponse struct {
	ID          uuid.UUID           `json:"id"`
	Status      string              `json:"status"`
	VideoID     uuid.UUID           `json:"video_id"`
	InventoryID *uuid.UUID          `json:"inventory_id,omitempty"`
	ProviderID  *uuid.UUID          `json:"provider_id,omitempty"`
	MoveDetails MoveDetailsResponse `json:"move_details"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	SentAt      *time.Time          `json:"sent_at,omitempty"`
	ExpiresAt   *time.Time          `json:"expires_at,omitempty"`
}

func NewMoveRequestResponse(m *entity.MoveRequest) MoveRequestResponse {
	return MoveRequestResponse{
		ID:          m.ID,
		Status:      string(m.Status),
		VideoID:     m.VideoID,
		InventoryID: m.InventoryID,
		ProviderID:  m.ProviderID,
		MoveDetails: newMoveDetailsResponse(m.MoveDetails),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		SentAt:      m.SentAt,
		ExpiresAt:   m.ExpiresAt,
	}
}

func newMoveDetailsResponse(d valueobject.MoveDetails) MoveDetailsResponse {
	return MoveDetailsResponse{
		From:       newAddressResponse(d.FromAddress),
		To:         newAddressResponse(d.ToAddress),
		FromFloor:  newFloorResponse(d.FromFloor),
		ToFloor:    newFloorResponse(d.ToFloor),
		NeedsBoxes: d.NeedsBoxes,
		BoxesCount: d.BoxesCount,
		MoveDate:   d.MoveDate,
	}
}

func newAddressResponse(a valueobject.Address) AddressResponse {
	return AddressResponse{
		Street:         a.Street,
		HouseNumber:    a.HouseNumber,
		PostalCode:     a.PostalCode,
		City:           a.City,
		Country:        a.Country,
		AdditionalInfo: a.AdditionalInfo,
	}
}

func newFloorResponse(f valueobject.FloorDetails) FloorResponse {
	return FloorResponse{
		Floor:                 f.Floor,
		HasElevator:           f.HasElevator,
		NeedsNoParkingZone:    f.NeedsNoParkingZone,
		WalkingDistanceMeters: f.WalkingDistanceMeters,
		NarrowStairs:          f.NarrowStairs,
		CarryOverThresholds:   f.CarryOverThresholds,
	}
}

type MoveRequestListResponse struct {
	Items  []MoveRequestResponse `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

type ItemResponse struct {
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity"`
	Confidence *float64 `json:"confidence,omitempty"`
	Source     string   `json:"source"`
	Category   string   `json:"category,omitempty"`
	Volume     *float64 `json:"volume,omitempty"`
}

type InventoryResponse struct {
	ID            uuid.UUID      `json:"id"`
	MoveRequestID uuid.UUID      `json:"move_request_id"`
	Items         []ItemResponse `json:"items"`
	Status        string         `json:"status"`
	TotalVolume   float64        `json:"total_volume"`
	ItemCount     int            `json:"item_count"`
	CreatedAt     time.Time      `json:"created_at"`
	ConfirmedAt   *time.Time     `json:"confirmed_at,omitempty"`
}

func NewInventoryResponse(inv *entity.Inventory) InventoryResponse {
	items := make([]ItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, ItemResponse{
			Name:       item.Name,
			Quantity:   item.Quantity,
			Confidence: item.Confidence,
			Source:     string(item.Source),
			Category:   item.Category,
			Volume:     item.Volume,
		})
	}

	return InventoryResponse{
		ID:            inv.ID,
		MoveRequestID: inv.MoveRequestID,
		Items:         items,
		Status:        string(inv.Status),
		TotalVolume:   inv.TotalVolume,
		ItemCount:     inv.TotalItemCount(),
		CreatedAt:     inv.CreatedAt,
		ConfirmedAt:   inv.ConfirmedAt,
	}
}

type QuoteResponse struct {
	ID              uuid.UUID                 `json:"id"`
	MoveRequestID   uuid.UUID                 `json:"move_request_id"`
	ProviderID      uuid.UUID                 `json:"provider_id"`
	TotalPrice      float64                   `json:"total_price"`
	PriceRangeLow   float64                   `json:"price_range_low"`
	PriceRangeHigh  float64                   `json:"price_range_high"`
	PriceRange      string                    `json:"price_range"`
	Breakdown       valueobject.CostBreakdown `json:"breakdown"`
	EstimatedHours  float64                   `json:"estimated_hours"`
	EstimatedVolume float64                   `json:"estimated_volume"`
	Currency        string                    `json:"currency"`
	CalculatedAt    time.Time                 `json:"calculated_at"`
	ValidUntil      *time.Time                `json:"valid_until,omitempty"`
}

func NewQuoteResponse(q *entity.Quote) QuoteResponse {
	return QuoteResponse{
		ID:              q.ID,
		MoveRequestID:   q.MoveRequestID,
		ProviderID:      q.ProviderID,
		TotalPrice:      q.TotalPrice,
		PriceRangeLow:   q.PriceRangeLow,
		PriceRangeHigh:  q.PriceRangeHigh,
		PriceRange:      q.FormattedPriceRange(),
		Breakdown:       q.Breakdown,
		EstimatedHours:  q.EstimatedHours,
		EstimatedVolume: q.EstimatedVolume,
		Currency:        q.Currency,
		CalculatedAt:    q.CalculatedAt,
		ValidUntil:      q.ValidUntil,
	}
}

// QuoteCalculationResponse — итог веерного расчёта по всем компаниям.
type QuoteCalculationResponse struct {
	Quotes []QuoteResponse        `json:"quotes"`
	Failed []ProviderErrorSummary `json:"failed,omitempty"`
}

type ProviderErrorSummary struct {
	ProviderID uuid.UUID `json:"provider_id"`
	Error      string    `json:"error"`
}

type BidResponse struct {
	ID              uuid.UUID                 `json:"id"`
	MoveRequestID   uuid.UUID                 `json:"move_request_id"`
	ProviderID      uuid.UUID                 `json:"provider_id"`
	QuoteID         *uuid.UUID                `json:"quote_id,omitempty"`
	TotalPrice      float64                   `json:"total_price"`
	Breakdown       valueobject.CostBreakdown `json:"breakdown"`
	ValidityDays    int                       `json:"validity_days"`
	Notes           string                    `json:"notes,omitempty"`
	Status          string                    `json:"status"`
	CreatedAt       time.Time                 `json:"created_at"`
	SubmittedAt     *time.Time                `json:"submitted_at,omitempty"`
	ExpiresAt       *time.Time                `json:"expires_at,omitempty"`
	AcceptedAt      *time.Time                `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time                `json:"rejected_at,omitempty"`
	RejectionReason string                    `json:"rejection_reason,omitempty"`
}

func NewBidResponse(b *entity.Bid) BidResponse {
	return BidResponse{
		ID:              b.ID,
		MoveRequestID:   b.MoveRequestID,
		ProviderID:      b.ProviderID,
		QuoteID:         b.QuoteID,
		TotalPrice:      b.TotalPrice,
		Breakdown:       b.Breakdown,
		ValidityDays:    b.ValidityDays,
		Notes:           b.Notes,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		SubmittedAt:     b.SubmittedAt,
		ExpiresAt:       b.ExpiryDate(),
		AcceptedAt:      b.AcceptedAt,
		RejectedAt:      b.RejectedAt,
		RejectionReason: b.RejectionReason,
	}
}

// AcceptBidResponse — принятая оферта и итоги по конкурентам.
type AcceptBidResponse struct {
	Bid         BidResponse         `json:"bid"`
	Competitors []CompetitorOutcome `json:"competitors"`
}

type CompetitorOutcome struct {
	BidID    uuid.UUID `json:"bid_id"`
	Rejected bool      `json:"rejected"`
	Error    string    `json:"error,omitempty"`
}
