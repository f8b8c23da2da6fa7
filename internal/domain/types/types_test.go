package types_test

import (
	"testing"

	"santaos/internal/domain/types"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		r    types.Resource
		ok   bool
	}{
		{"wishlist ok", types.Wishlist{ID: "w1", Status: types.WishlistPending, Items: []types.WishlistItem{{Name: "sled", Quantity: 1}}}, true},
		{"wishlist no id", types.Wishlist{Status: types.WishlistPending}, false},
		{"wishlist bad status", types.Wishlist{ID: "w1", Status: "lost"}, false},
		{"wishlist unnamed item", types.Wishlist{ID: "w1", Status: types.WishlistPending, Items: []types.WishlistItem{{Quantity: 1}}}, false},
		{"task ok", types.Task{ID: "t1", Status: types.TaskInProgress}, true},
		{"task bad status", types.Task{ID: "t1", Status: "done"}, false},
		{"task negative quantity", types.Task{ID: "t1", Status: types.TaskPending, Quantity: -1}, false},
		{"delivery ok", types.Delivery{ID: "d1", Status: types.DeliveryInTransit}, true},
		{"delivery no id", types.Delivery{Status: types.DeliveryInTransit}, false},
		{"worker ok", types.Worker{ID: "e1", Name: "Pip"}, true},
		{"worker no name", types.Worker{ID: "e1"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestOperation(t *testing.T) {
	if types.OpCreate.RequiresID() {
		t.Fatal("create must not require an id")
	}
	if !types.OpDelete.RequiresID() {
		t.Fatal("delete requires an id")
	}
	if got := types.OpUpdateStatus.SubPath(); got != "status" {
		t.Fatalf("SubPath = %q", got)
	}
	if got := types.OpAssign.SubPath(); got != "assign" {
		t.Fatalf("SubPath = %q", got)
	}
	if types.OpUpdate.SubPath() != "" {
		t.Fatal("plain update has no sub-path")
	}
	if types.Operation("explode").Valid() {
		t.Fatal("unknown operation reported valid")
	}
}

func TestUser_CanMutate(t *testing.T) {
	parent := types.User{Role: types.RoleParent}
	worker := types.User{Role: types.RoleWorker}
	staff := types.User{Role: types.RoleStaff}
	admin := types.User{Role: types.RoleAdmin}

	if !parent.CanMutate(types.KindWishlists, types.OpCreate) {
		t.Fatal("parent should submit wishlists")
	}
	if parent.CanMutate(types.KindTasks, types.OpAssign) {
		t.Fatal("parent must not assign tasks")
	}
	if !worker.CanMutate(types.KindWorkerTasks, types.OpUpdateStatus) {
		t.Fatal("worker should update own task status")
	}
	if worker.CanMutate(types.KindTasks, types.OpDelete) {
		t.Fatal("worker must not delete tasks")
	}
	if !staff.CanMutate(types.KindTasks, types.OpAssign) {
		t.Fatal("staff should assign tasks")
	}
	if staff.CanMutate(types.KindDeliveries, types.OpUpdateStatus) {
		t.Fatal("staff must not update deliveries")
	}
	if !admin.CanMutate(types.KindDeliveries, types.OpUpdateStatus) {
		t.Fatal("admin can do anything")
	}
}

func TestParseRole(t *testing.T) {
	if _, err := types.ParseRole("reindeer"); err == nil {
		t.Fatal("expected unknown role error")
	}
	r, err := types.ParseRole("staff")
	if err != nil || r != types.RoleStaff {
		t.Fatalf("ParseRole = %v, %v", r, err)
	}
}
