package device

import (
	"encoding/json"
	"time"
)

// Category is the role a tracked device belongs to. Values outside the known
// set are kept verbatim so search and sorting still see them.
type Category string

const (
	CategoryFamily    Category = "family"
	CategoryCrew      Category = "crew"
	CategoryGuest     Category = "guest"
	CategoryWristband Category = "wristband"
	CategoryOther     Category = "other"
)

// Bucket returns the online display bucket for the category.
func (c Category) Bucket() Bucket {
	switch c {
	case CategoryFamily:
		return BucketFamily
	case CategoryCrew:
		return BucketCrew
	case CategoryGuest:
		return BucketGuest
	default:
		return BucketOther
	}
}

// Device is a classified device as seen in one telemetry snapshot.
type Device struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       Category  `json:"category"`
	IsOnline       bool      `json:"isOnline"`
	LastSeen       time.Time `json:"lastSeen"` // zero when unknown
	BatteryLevel   *int      `json:"batteryLevel,omitempty"`
	SignalStrength *int      `json:"signalStrength,omitempty"`
	Accuracy       *float64  `json:"accuracy,omitempty"`
	Room           string    `json:"room,omitempty"`
	Location       string    `json:"location,omitempty"`
	DeviceType     string    `json:"deviceType,omitempty"`
	WristbandID    string    `json:"wristbandId,omitempty"`
	FamilyPriority *int      `json:"familyPriority,omitempty"`
	AssignedGuest  string    `json:"assignedGuest,omitempty"`
	AssignedCabin  string    `json:"assignedCabin,omitempty"`
	GuestNumber    string    `json:"guestNumber,omitempty"`
}

func (d *Device) HasLastSeen() bool {
	return !d.LastSeen.IsZero()
}

func (d *Device) HasGuestNumber() bool {
	return d.GuestNumber != ""
}

// RawDevice is one device record as delivered by the telemetry service.
type RawDevice struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       *string         `json:"category"`
	IsOnline       bool            `json:"isOnline"`
	LastSeen       json.RawMessage `json:"lastSeen"`
	BatteryLevel   *float64        `json:"batteryLevel"`
	SignalStrength *float64        `json:"signalStrength"`
	Accuracy       *float64        `json:"accuracy"`
	Room           *string         `json:"room"`
	Location       *string         `json:"location"`
	DeviceType     *string         `json:"deviceType"`
	WristbandID    *string         `json:"wristbandId"`
	AssignedGuest  *string         `json:"assignedGuest"`
	AssignedCabin  *string         `json:"assignedCabin"`
	FamilyPriority *float64        `json:"familyPriority"`
}

// RawSnapshot is the undecorated payload of one telemetry fetch.
type RawSnapshot struct {
	Devices    []RawDevice     `json:"devices"`
	LastUpdate json.RawMessage `json:"lastUpdate"`
}

// Snapshot is an immutable, classified view of the fleet at one point in
// time. Holders must not modify Devices.
type Snapshot struct {
	Devices    []Device  `json:"devices"`
	SourceTime time.Time `json:"sourceTime"` // zero when the source did not report one
	FetchedAt  time.Time `json:"fetchedAt"`
}
