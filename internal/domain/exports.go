package domain

import (
	"time"

	interfaces "santaos/internal/domain/interfaces"
	types "santaos/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Kind           = types.Kind
	Resource       = types.Resource
	Operation      = types.Operation
	StatusChange   = types.StatusChange
	Assignment     = types.Assignment
	Role           = types.Role
	User           = types.User
	Profile        = types.Profile
	Wishlist       = types.Wishlist
	WishlistItem   = types.WishlistItem
	WishlistStatus = types.WishlistStatus
	NewWishlist    = types.NewWishlist
	Task           = types.Task
	TaskStatus     = types.TaskStatus
	NewTask        = types.NewTask
	Delivery       = types.Delivery
	DeliveryStatus = types.DeliveryStatus
	NewDelivery    = types.NewDelivery
	Worker         = types.Worker
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ResourceClient[T Resource] = interfaces.ResourceClient[T]
	SessionStore               = interfaces.SessionStore
	Authenticator              = interfaces.Authenticator
)

// Constants re-exported for callers that only import domain.
const (
	KindWishlists   = types.KindWishlists
	KindTasks       = types.KindTasks
	KindDeliveries  = types.KindDeliveries
	KindWorkers     = types.KindWorkers
	KindWorkerTasks = types.KindWorkerTasks

	OpCreate       = types.OpCreate
	OpUpdate       = types.OpUpdate
	OpUpdateStatus = types.OpUpdateStatus
	OpAssign       = types.OpAssign
	OpDelete       = types.OpDelete

	RoleParent = types.RoleParent
	RoleStaff  = types.RoleStaff
	RoleAdmin  = types.RoleAdmin
	RoleWorker = types.RoleWorker

	WishlistPending      = types.WishlistPending
	WishlistApproved     = types.WishlistApproved
	WishlistRejected     = types.WishlistRejected
	WishlistInProduction = types.WishlistInProduction
	WishlistFulfilled    = types.WishlistFulfilled

	TaskPending    = types.TaskPending
	TaskInProgress = types.TaskInProgress
	TaskCompleted  = types.TaskCompleted

	DeliveryPending   = types.DeliveryPending
	DeliveryInTransit = types.DeliveryInTransit
	DeliveryDelivered = types.DeliveryDelivered
	DeliveryFailed    = types.DeliveryFailed
)

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, error) { return types.ParseRole(s) }

// Timestamp formats t for tables; the zero time renders as "-".
func Timestamp(t time.Time) string { return types.Timestamp(t) }
