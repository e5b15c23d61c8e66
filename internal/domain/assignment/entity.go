package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Assignment binds one guest to one cabin and, optionally, one wristband.
type Assignment struct {
	ID              uuid.UUID
	GuestName       string
	CabinNumber     string
	CabinName       string
	Deck            string
	DeviceID        string // empty when no wristband was given
	Allergies       *string
	SpecialRequests *string
	PhotoURL1       *string
	PhotoURL2       *string
	AssignedAt      time.Time
}

func (a *Assignment) HasDevice() bool {
	return a.DeviceID != ""
}

// DeviceLink mirrors the binding into the guest/device link table read by
// the tracking side.
type DeviceLink struct {
	ID        uuid.UUID
	DeviceID  string
	GuestID   uuid.UUID
	CreatedAt time.Time
}
