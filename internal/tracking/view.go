package tracking

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"yacht-tracker/internal/domain/device"
)

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByStatus   SortKey = "status"
	SortByLastSeen SortKey = "lastSeen"
	SortByCategory SortKey = "category"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// GuestFilterAll disables guest filtering.
const GuestFilterAll = "all"

// Query holds the consumer-chosen view parameters.
type Query struct {
	Search      string    `json:"search"`
	SortBy      SortKey   `json:"sortBy"`
	SortOrder   SortOrder `json:"sortOrder"`
	GuestFilter string    `json:"guestFilter"`
}

func DefaultQuery() Query {
	return Query{SortBy: SortByName, SortOrder: SortAsc, GuestFilter: GuestFilterAll}
}

// Normalize fills defaults and folds unknown values onto them.
func (q Query) Normalize() Query {
	switch q.SortBy {
	case SortByName, SortByStatus, SortByLastSeen, SortByCategory:
	default:
		q.SortBy = SortByName
	}
	if q.SortOrder != SortDesc {
		q.SortOrder = SortAsc
	}
	q.GuestFilter = strings.TrimSpace(q.GuestFilter)
	if q.GuestFilter == "" || strings.EqualFold(q.GuestFilter, GuestFilterAll) {
		q.GuestFilter = GuestFilterAll
	} else if len(q.GuestFilter) > 1 && (q.GuestFilter[0] == 'G' || q.GuestFilter[0] == 'g') {
		q.GuestFilter = q.GuestFilter[1:]
	}
	return q
}

func (q Query) searchTerm() string {
	return strings.ToLower(strings.TrimSpace(q.Search))
}

// Section is one bucket of the view.
type Section struct {
	Bucket      device.Bucket   `json:"bucket"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Collapsed   bool            `json:"collapsed"`
	Total       int             `json:"total"`
	OnlineCount int             `json:"onlineCount"`
	Devices     []device.Device `json:"devices"`
}

// View is the grouped, filtered and sorted presentation of a snapshot.
type View struct {
	Query        Query     `json:"query"`
	Sections     []Section `json:"sections"`
	SearchActive bool      `json:"searchActive"`
	MatchCount   int       `json:"matchCount"`
	GuestNumbers []string  `json:"guestNumbers"`
}

// Section returns the section for b. Every bucket is always present.
func (v *View) Section(b device.Bucket) *Section {
	for i := range v.Sections {
		if v.Sections[i].Bucket == b {
			return &v.Sections[i]
		}
	}
	return nil
}

// Devices flattens the view in display order.
func (v *View) Devices() []device.Device {
	var out []device.Device
	for _, s := range v.Sections {
		out = append(out, s.Devices...)
	}
	return out
}

// BuildView runs search, online/offline partition, category grouping, guest
// filtering and sorting over devices. It does not modify devices and returns
// the same view for the same input.
func BuildView(devices []device.Device, q Query) *View {
	q = q.Normalize()
	term := q.searchTerm()

	grouped := make(map[device.Bucket][]device.Device, len(device.Buckets()))
	for i := range devices {
		d := devices[i]
		if term != "" && !matchesSearch(&d, term) {
			continue
		}
		if !d.IsOnline {
			grouped[device.BucketOffline] = append(grouped[device.BucketOffline], d)
			continue
		}
		b := d.Category.Bucket()
		grouped[b] = append(grouped[b], d)
	}

	if q.GuestFilter != GuestFilterAll {
		grouped[device.BucketGuest] = filterGuests(grouped[device.BucketGuest], q.GuestFilter)
	}

	view := &View{
		Query:        q,
		SearchActive: term != "",
		// The filter menu offers every guest number in the snapshot,
		// offline and searched-out devices included.
		GuestNumbers: GuestNumbers(devices),
	}
	if view.GuestNumbers == nil {
		view.GuestNumbers = []string{}
	}

	for _, b := range device.Buckets() {
		list := grouped[b]
		sortDevices(list, q.SortBy, q.SortOrder)
		if list == nil {
			list = []device.Device{}
		}

		s := Section{
			Bucket:    b,
			Title:     b.Title(),
			Collapsed: b.CollapsedByDefault(),
			Total:     len(list),
			Devices:   list,
		}
		for i := range list {
			if list[i].IsOnline {
				s.OnlineCount++
			}
		}
		s.Description = describe(b, len(list), q.GuestFilter)

		view.MatchCount += len(list)
		view.Sections = append(view.Sections, s)
	}

	return view
}

func matchesSearch(d *device.Device, term string) bool {
	return strings.Contains(strings.ToLower(d.Name), term) ||
		strings.Contains(strings.ToLower(d.Room), term) ||
		strings.Contains(strings.ToLower(string(d.Category)), term)
}

// filterGuests keeps the devices whose guest number equals filter. Devices
// without a guest number never match a concrete filter.
func filterGuests(devices []device.Device, filter string) []device.Device {
	var out []device.Device
	for _, d := range devices {
		if d.GuestNumber == filter {
			out = append(out, d)
		}
	}
	return out
}

func describe(b device.Bucket, n int, guestFilter string) string {
	desc := fmt.Sprintf("%d %s", n, b.Noun(n))
	if b == device.BucketGuest && guestFilter != GuestFilterAll {
		desc += fmt.Sprintf(" (G%s only)", guestFilter)
	}
	return desc
}

func sortDevices(list []device.Device, key SortKey, order SortOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		c := compareDevices(&list[i], &list[j], key)
		if order == SortDesc {
			c = -c
		}
		return c < 0
	})
}

func compareDevices(a, b *device.Device, key SortKey) int {
	var c int
	switch key {
	case SortByStatus:
		c = compareBool(a.IsOnline, b.IsOnline)
	case SortByLastSeen:
		c = compareTime(a, b)
	case SortByCategory:
		c = strings.Compare(categoryKey(a.Category), categoryKey(b.Category))
	default:
		if a.Category == device.CategoryFamily && b.Category == device.CategoryFamily {
			c = compareInt(familyRank(a), familyRank(b))
		}
		if c == 0 {
			c = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
	if c == 0 {
		c = strings.Compare(a.ID, b.ID)
	}
	return c
}

// familyRank places devices without a priority after every ranked one.
func familyRank(d *device.Device) int {
	if d.FamilyPriority == nil {
		return math.MaxInt
	}
	return *d.FamilyPriority
}

func categoryKey(c device.Category) string {
	if c == "" {
		return string(device.CategoryOther)
	}
	return string(c)
}

// compareTime orders unknown lastSeen before every known one.
func compareTime(a, b *device.Device) int {
	switch {
	case !a.HasLastSeen() && !b.HasLastSeen():
		return 0
	case !a.HasLastSeen():
		return -1
	case !b.HasLastSeen():
		return 1
	}
	return a.LastSeen.Compare(b.LastSeen)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
