package models

import (
	"time"

	"github.com/google/uuid"
)

// GuestDeviceLinkModel ties a tracked device to the guest wearing it.
type GuestDeviceLinkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DeviceID  string    `gorm:"type:varchar(255);not null;index"`
	GuestID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (GuestDeviceLinkModel) TableName() string {
	return "guest_device_links"
}
