package device

// Bucket is a display group of the view. The set is closed: every switch
// over Bucket handles all five values.
type Bucket string

const (
	BucketFamily  Bucket = "family"
	BucketCrew    Bucket = "crew"
	BucketGuest   Bucket = "guest"
	BucketOther   Bucket = "other"
	BucketOffline Bucket = "offline"
)

// Buckets returns every bucket in display order.
func Buckets() []Bucket {
	return []Bucket{BucketFamily, BucketCrew, BucketGuest, BucketOther, BucketOffline}
}

func (b Bucket) Title() string {
	switch b {
	case BucketFamily:
		return "Family"
	case BucketCrew:
		return "Crew"
	case BucketGuest:
		return "Guests"
	case BucketOther:
		return "Other Devices"
	case BucketOffline:
		return "Offline Devices"
	default:
		panic("device: unknown bucket " + string(b))
	}
}

// Noun is the singular/plural noun used in bucket descriptions.
func (b Bucket) Noun(n int) string {
	plural := n != 1
	switch b {
	case BucketFamily:
		if plural {
			return "family members"
		}
		return "family member"
	case BucketCrew:
		if plural {
			return "crew members"
		}
		return "crew member"
	case BucketGuest:
		if plural {
			return "guests"
		}
		return "guest"
	case BucketOther:
		if plural {
			return "other devices"
		}
		return "other device"
	case BucketOffline:
		if plural {
			return "offline devices"
		}
		return "offline device"
	default:
		panic("device: unknown bucket " + string(b))
	}
}

// CollapsedByDefault reports whether the bucket starts collapsed.
func (b Bucket) CollapsedByDefault() bool {
	switch b {
	case BucketFamily, BucketCrew, BucketGuest, BucketOther:
		return false
	case BucketOffline:
		return true
	default:
		panic("device: unknown bucket " + string(b))
	}
}
