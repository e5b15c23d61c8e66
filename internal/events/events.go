package events

import (
	"context"
	"time"
)

type Type string

const (
	TypeAssigned    Type = "assigned"
	TypeUnassigned  Type = "unassigned"
	TypeLinkMissing Type = "link_missing"
)

// Event is an assignment change announced to downstream consumers.
type Event struct {
	Type        Type      `json:"type"`
	GuestID     string    `json:"guest_id"`
	GuestName   string    `json:"guest_name,omitempty"`
	CabinNumber string    `json:"cabin_number"`
	DeviceID    string    `json:"device_id,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when MQTT is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
