package assignment

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository persists assignments. Implementations enforce at most one
// active assignment per device and per cabin, returning
// ErrDeviceAlreadyAssigned or ErrCabinOccupied when an insert would break it.
type Repository interface {
	FindByDevice(ctx context.Context, deviceID string) (*Assignment, error)
	FindByCabin(ctx context.Context, cabinNumber string) (*Assignment, error)
	ListActive(ctx context.Context) ([]*Assignment, error)
	Create(ctx context.Context, a *Assignment) error
	CreateLink(ctx context.Context, link *DeviceLink) error
	// CreateWithLink stores the assignment and its link atomically.
	CreateWithLink(ctx context.Context, a *Assignment, link *DeviceLink) error
	DeleteLinksByGuest(ctx context.Context, guestID uuid.UUID) error
	Delete(ctx context.Context, guestID uuid.UUID) error
}
