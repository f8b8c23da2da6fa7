package types

import "time"

// DeliveryStatus tracks a sleigh drop.
type DeliveryStatus string

// Delivery statuses.
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryInTransit, DeliveryDelivered, DeliveryFailed:
		return true
	}
	return false
}

// Delivery is the last leg of a fulfilled wishlist.
type Delivery struct {
	ID         string         `json:"id"`
	WishlistID string         `json:"wishlist_id,omitempty"`
	Recipient  string         `json:"recipient"`
	Address    string         `json:"address"`
	Status     DeliveryStatus `json:"status"`
	ETA        *time.Time     `json:"eta,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewDelivery is the create payload for a delivery.
type NewDelivery struct {
	WishlistID string `json:"wishlist_id,omitempty"`
	Recipient  string `json:"recipient"`
	Address    string `json:"address"`
}

// ResourceID implements Resource.
func (d Delivery) ResourceID() string { return d.ID }

// Validate implements Resource.
func (d Delivery) Validate() error {
	if d.ID == "" {
		return invalid(KindDeliveries, "missing id")
	}
	if !d.Status.Valid() {
		return invalid(KindDeliveries, "%s has unknown status %q", d.ID, d.Status)
	}
	return nil
}
