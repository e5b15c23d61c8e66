package assignment

import (
	"time"
	domainAssignment "yacht-tracker/internal/domain/assignment"
)

type AssignRequest struct {
	CabinNumber     string  `json:"cabin_number" validate:"required,max=64"`
	CabinName       string  `json:"cabin_name" validate:"omitempty,max=255"`
	GuestName       string  `json:"guest_name" validate:"required,max=255"`
	DeviceID        string  `json:"device_id" validate:"omitempty,max=255"`
	DeviceName      string  `json:"device_name" validate:"omitempty,max=255"`
	Allergies       *string `json:"allergies" validate:"omitempty,max=2000"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=2000"`
}

type UnassignRequest struct {
	CabinNumber string `json:"cabin_number" validate:"required,max=64"`
}

// Result is the uniform outcome of an assignment operation. Failures are
// reported through Error and Code, never as a Go error.
type Result struct {
	Success    bool                `json:"success"`
	Error      string              `json:"error,omitempty"`
	Code       string              `json:"code,omitempty"`
	Warning    string              `json:"warning,omitempty"`
	Assignment *AssignmentResponse `json:"assignment,omitempty"`
}

type AssignmentResponse struct {
	ID              string    `json:"id"`
	GuestName       string    `json:"guest_name"`
	CabinNumber     string    `json:"cabin_number"`
	CabinName       string    `json:"cabin_name"`
	Deck            string    `json:"deck"`
	DeviceID        string    `json:"device_id,omitempty"`
	Allergies       *string   `json:"allergies,omitempty"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	PhotoURL1       *string   `json:"photo_url_1,omitempty"`
	PhotoURL2       *string   `json:"photo_url_2,omitempty"`
	AssignedAt      time.Time `json:"assigned_at"`
}

func ToAssignmentResponse(a *domainAssignment.Assignment) *AssignmentResponse {
	if a == nil {
		return nil
	}
	return &AssignmentResponse{
		ID:              a.ID.String(),
		GuestName:       a.GuestName,
		CabinNumber:     a.CabinNumber,
		CabinName:       a.CabinName,
		Deck:            a.Deck,
		DeviceID:        a.DeviceID,
		Allergies:       a.Allergies,
		SpecialRequests: a.SpecialRequests,
		PhotoURL1:       a.PhotoURL1,
		PhotoURL2:       a.PhotoURL2,
		AssignedAt:      a.AssignedAt,
	}
}
