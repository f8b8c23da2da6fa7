package devapi

import (
	"time"

	"santaos/internal/domain"
)

// Seed loads a small demo workshop. It is meant for an empty server.
func (s *Server) Seed() {
	now := s.now()
	eta := now.Add(36 * time.Hour)

	for _, wk := range []domain.Worker{
		{ID: "elf-1", Name: "Jingle", Skill: "woodwork", Active: true},
		{ID: "elf-2", Name: "Tinsel", Skill: "electronics", Active: true},
		{ID: "elf-3", Name: "Sprocket", Skill: "plush", Active: false},
	} {
		s.workers.put(wk)
	}

	s.wishlists.put(domain.Wishlist{
		ID: "wl-1", ChildName: "Ada", ChildAge: 7, Address: "1 Snowy Lane",
		Items:  []domain.WishlistItem{{Name: "Rocking horse", Quantity: 1}, {Name: "Kite", Quantity: 2}},
		Status: domain.WishlistApproved, ParentID: "u-demo-parent", CreatedAt: now.Add(-72 * time.Hour),
	})
	s.wishlists.put(domain.Wishlist{
		ID: "wl-2", ChildName: "Linus", ChildAge: 9, Address: "22 Pine Road",
		Items:  []domain.WishlistItem{{Name: "Robot kit", Quantity: 1}},
		Status: domain.WishlistPending, ParentID: "u-demo-parent", CreatedAt: now.Add(-24 * time.Hour),
	})

	s.tasks.put(domain.Task{
		ID: "task-1", WishlistID: "wl-1", Title: "Carve rocking horse", Quantity: 1,
		AssignedTo: "elf-1", Status: domain.TaskInProgress, Priority: 2,
		CreatedAt: now.Add(-48 * time.Hour), UpdatedAt: now.Add(-2 * time.Hour),
	})
	s.tasks.put(domain.Task{
		ID: "task-2", WishlistID: "wl-1", Title: "Stitch kites", Quantity: 2,
		Status: domain.TaskPending, Priority: 1, CreatedAt: now.Add(-48 * time.Hour), UpdatedAt: now.Add(-48 * time.Hour),
	})

	s.deliveries.put(domain.Delivery{
		ID: "dl-1", WishlistID: "wl-1", Recipient: "Ada", Address: "1 Snowy Lane",
		Status: domain.DeliveryPending, ETA: &eta, UpdatedAt: now,
	})
}
