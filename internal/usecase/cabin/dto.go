package cabin

import (
	domainCabin "yacht-tracker/internal/domain/cabin"
	usecaseAssignment "yacht-tracker/internal/usecase/assignment"
)

// CabinResponse is an inventory cabin with its current guests.
type CabinResponse struct {
	Number            string                                  `json:"number"`
	Name              string                                  `json:"name"`
	Deck              string                                  `json:"deck"`
	Area              string                                  `json:"area"`
	Side              domainCabin.Side                        `json:"side"`
	Type              string                                  `json:"type"`
	Color             string                                  `json:"color"`
	Features          string                                  `json:"features"`
	EstimatedCapacity int                                     `json:"estimated_capacity"`
	Guests            []*usecaseAssignment.AssignmentResponse `json:"guests"`
}

// WristbandResponse is an online wristband free for assignment.
type WristbandResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Battery  *int   `json:"battery_level,omitempty"`
	Room     string `json:"room,omitempty"`
}

func toCabinResponse(c domainCabin.Cabin) *CabinResponse {
	return &CabinResponse{
		Number:            c.Number,
		Name:              c.Name,
		Deck:              c.Deck,
		Area:              c.Area,
		Side:              c.Side(),
		Type:              c.Type,
		Color:             c.Color(),
		Features:          c.Features,
		EstimatedCapacity: c.Capacity,
		Guests:            []*usecaseAssignment.AssignmentResponse{},
	}
}
