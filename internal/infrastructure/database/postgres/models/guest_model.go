package models

import (
	"time"

	"github.com/google/uuid"
)

// Index names are matched when classifying unique violations.
const (
	IndexActiveCabin     = "idx_guests_active_cabin"
	IndexActiveWristband = "idx_guests_active_wristband"
)

// GuestModel is one guest currently assigned to a cabin.
type GuestModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(255);not null"`
	CabinNumber     *string   `gorm:"type:varchar(32);uniqueIndex:idx_guests_active_cabin,where:cabin_number IS NOT NULL"`
	CabinName       string    `gorm:"type:varchar(255)"`
	Deck            string    `gorm:"type:varchar(64)"`
	WristbandID     *string   `gorm:"type:varchar(255);uniqueIndex:idx_guests_active_wristband,where:wristband_id IS NOT NULL"`
	Allergies       *string   `gorm:"type:text"`
	SpecialRequests *string   `gorm:"type:text"`
	PhotoURL1       *string   `gorm:"column:photo_url_1;type:text"`
	PhotoURL2       *string   `gorm:"column:photo_url_2;type:text"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (GuestModel) TableName() string {
	return "guests"
}
