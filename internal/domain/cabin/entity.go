package cabin

import "strings"

const (
	DeckOwners  = "Owners Deck"
	DeckSpa     = "Spa Deck"
	DeckUpper   = "Upper Deck"
	DeckUnknown = "Unknown Deck"
)

type Side string

const (
	SidePort      Side = "port"
	SideStarboard Side = "starboard"
	SideCenter    Side = "center"
)

// Cabin is one entry of the static cabin inventory.
type Cabin struct {
	Number   string `yaml:"number" json:"number"`
	Name     string `yaml:"name" json:"name"`
	Deck     string `yaml:"deck" json:"deck"`
	Area     string `yaml:"area" json:"area"`
	Type     string `yaml:"type" json:"type"`
	Capacity int    `yaml:"capacity" json:"capacity"`
	Features string `yaml:"features" json:"features"`
}

func (c Cabin) Side() Side {
	switch c.Area {
	case "Port Side":
		return SidePort
	case "Starboard Side":
		return SideStarboard
	default:
		return SideCenter
	}
}

// Color is the deck plan colour for the cabin's side of the yacht.
func (c Cabin) Color() string {
	switch c.Side() {
	case SidePort:
		return "Red"
	case SideStarboard:
		return "Green"
	default:
		return "Yellow"
	}
}

// DeckForNumber derives the deck from a cabin number: 602 is the owners
// deck, 5xx the spa deck and 4xx the upper deck.
func DeckForNumber(number string) string {
	number = strings.TrimSpace(number)
	switch {
	case number == "602":
		return DeckOwners
	case strings.HasPrefix(number, "5"):
		return DeckSpa
	case strings.HasPrefix(number, "4"):
		return DeckUpper
	default:
		return DeckUnknown
	}
}
