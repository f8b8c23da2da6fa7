package types

import "time"

// WishlistStatus tracks a wishlist through review and production.
type WishlistStatus string

// Wishlist statuses.
const (
	WishlistPending      WishlistStatus = "pending"
	WishlistApproved     WishlistStatus = "approved"
	WishlistRejected     WishlistStatus = "rejected"
	WishlistInProduction WishlistStatus = "in_production"
	WishlistFulfilled    WishlistStatus = "fulfilled"
)

// Valid reports whether s is a known wishlist status.
func (s WishlistStatus) Valid() bool {
	switch s {
	case WishlistPending, WishlistApproved, WishlistRejected, WishlistInProduction, WishlistFulfilled:
		return true
	}
	return false
}

// WishlistItem is a single gift request.
type WishlistItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Wishlist is submitted by a parent on behalf of a child.
type Wishlist struct {
	ID        string         `json:"id"`
	ChildName string         `json:"child_name"`
	ChildAge  int            `json:"child_age,omitempty"`
	Address   string         `json:"address,omitempty"`
	Items     []WishlistItem `json:"items"`
	Status    WishlistStatus `json:"status"`
	ParentID  string         `json:"parent_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewWishlist is the create payload for a wishlist.
type NewWishlist struct {
	ChildName string         `json:"child_name"`
	ChildAge  int            `json:"child_age,omitempty"`
	Address   string         `json:"address,omitempty"`
	Items     []WishlistItem `json:"items"`
}

// ResourceID implements Resource.
func (w Wishlist) ResourceID() string { return w.ID }

// Validate implements Resource.
func (w Wishlist) Validate() error {
	if w.ID == "" {
		return invalid(KindWishlists, "missing id")
	}
	if !w.Status.Valid() {
		return invalid(KindWishlists, "%s has unknown status %q", w.ID, w.Status)
	}
	for i, it := range w.Items {
		if it.Name == "" {
			return invalid(KindWishlists, "%s item %d has no name", w.ID, i)
		}
		if it.Quantity < 0 {
			return invalid(KindWishlists, "%s item %q has negative quantity", w.ID, it.Name)
		}
	}
	return nil
}
