package tracking

import (
	"reflect"
	"testing"
	"time"
	"yacht-tracker/internal/domain/device"
)

func intPtr(n int) *int { return &n }

func ids(devices []device.Device) []string {
	out := make([]string, 0, len(devices))
	for _, d := range devices {
		out = append(out, d.ID)
	}
	return out
}

func sectionIDs(v *View, b device.Bucket) []string {
	return ids(v.Section(b).Devices)
}

func fleet() []device.Device {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []device.Device{
		{ID: "f2", Name: "P2 Mrs", Category: device.CategoryFamily, IsOnline: true, FamilyPriority: intPtr(2), LastSeen: base},
		{ID: "f1", Name: "Zed", Category: device.CategoryFamily, IsOnline: true, FamilyPriority: intPtr(1), LastSeen: base.Add(time.Minute)},
		{ID: "f9", Name: "Aaron", Category: device.CategoryFamily, IsOnline: true},
		{ID: "c1", Name: "Crew Bob", Category: device.CategoryCrew, IsOnline: true, Room: "Galley", LastSeen: base.Add(2 * time.Minute)},
		{ID: "g3", Name: "G3 Anna", Category: device.CategoryGuest, IsOnline: true, GuestNumber: "3", Room: "Sky Lounge"},
		{ID: "g1", Name: "G1 Tom", Category: device.CategoryGuest, IsOnline: true, GuestNumber: "1"},
		{ID: "g0", Name: "Walk-in", Category: device.CategoryGuest, IsOnline: true},
		{ID: "w1", Name: "Band 7", Category: device.CategoryWristband, IsOnline: true},
		{ID: "b1", Name: "Beacon", Category: device.Category("beacon"), IsOnline: true},
		{ID: "o1", Name: "G4 Lee", Category: device.CategoryGuest, IsOnline: false, GuestNumber: "4"},
		{ID: "o2", Name: "Crew Kim", Category: device.CategoryCrew, IsOnline: false},
	}
}

func TestBuildViewGuestNumbersIgnoreSearchAndStatus(t *testing.T) {
	q := DefaultQuery()
	q.Search = "anna"
	v := BuildView(fleet(), q)

	if got := sectionIDs(v, device.BucketGuest); !reflect.DeepEqual(got, []string{"g3"}) {
		t.Fatalf("search should leave only g3, got %v", got)
	}
	if !reflect.DeepEqual(v.GuestNumbers, []string{"1", "3", "4"}) {
		t.Errorf("guest numbers = %v, want every guest number including offline G4", v.GuestNumbers)
	}
}

func TestBuildViewEndToEnd(t *testing.T) {
	devices := []device.Device{
		{ID: "d1", Name: "G1 Tom", Category: device.CategoryGuest, IsOnline: true, GuestNumber: "1"},
		{ID: "d2", Name: "P1 Mr", Category: device.CategoryFamily, IsOnline: false, FamilyPriority: intPtr(1)},
	}

	v := BuildView(devices, DefaultQuery())

	if got := sectionIDs(v, device.BucketGuest); !reflect.DeepEqual(got, []string{"d1"}) {
		t.Errorf("guest = %v, want [d1]", got)
	}
	if got := sectionIDs(v, device.BucketOffline); !reflect.DeepEqual(got, []string{"d2"}) {
		t.Errorf("offline = %v, want [d2]", got)
	}
	for _, b := range []device.Bucket{device.BucketFamily, device.BucketCrew, device.BucketOther} {
		if n := v.Section(b).Total; n != 0 {
			t.Errorf("%s should be empty, has %d", b, n)
		}
	}
}

func TestBuildViewSectionsInFixedOrder(t *testing.T) {
	v := BuildView(fleet(), DefaultQuery())

	var order []device.Bucket
	for _, s := range v.Sections {
		order = append(order, s.Bucket)
	}
	if !reflect.DeepEqual(order, device.Buckets()) {
		t.Errorf("section order = %v, want %v", order, device.Buckets())
	}
}

func TestBuildViewPartitionIsComplete(t *testing.T) {
	devices := fleet()
	v := BuildView(devices, DefaultQuery())

	seen := make(map[string]int)
	for _, s := range v.Sections {
		for _, d := range s.Devices {
			seen[d.ID]++
			if !d.IsOnline && s.Bucket != device.BucketOffline {
				t.Errorf("offline device %s landed in %s", d.ID, s.Bucket)
			}
		}
	}
	for _, d := range devices {
		if seen[d.ID] != 1 {
			t.Errorf("device %s appears %d times", d.ID, seen[d.ID])
		}
	}
	if v.MatchCount != len(devices) {
		t.Errorf("match count = %d, want %d", v.MatchCount, len(devices))
	}
}

func TestBuildViewUnknownCategoriesGoToOther(t *testing.T) {
	v := BuildView(fleet(), DefaultQuery())

	if got := sectionIDs(v, device.BucketOther); !reflect.DeepEqual(got, []string{"w1", "b1"}) {
		t.Errorf("other = %v, want [w1 b1]", got)
	}
}

func TestBuildViewFamilyPriorityOrdering(t *testing.T) {
	v := BuildView(fleet(), DefaultQuery())

	if got := sectionIDs(v, device.BucketFamily); !reflect.DeepEqual(got, []string{"f1", "f2", "f9"}) {
		t.Errorf("family asc = %v, want [f1 f2 f9]", got)
	}

	q := DefaultQuery()
	q.SortOrder = SortDesc
	v = BuildView(fleet(), q)
	if got := sectionIDs(v, device.BucketFamily); !reflect.DeepEqual(got, []string{"f9", "f2", "f1"}) {
		t.Errorf("family desc = %v, want [f9 f2 f1]", got)
	}
}

func TestBuildViewSearch(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by name", "anna", []string{"g3"}},
		{"by room", "GALLEY", []string{"c1"}},
		{"by category", "crew", []string{"c1", "o2"}},
		{"unknown category", "beac", []string{"b1"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := BuildView(fleet(), Query{Search: tt.search})
			got := ids(v.Devices())
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("search %q = %v, want %v", tt.search, got, tt.want)
			}
			if !v.SearchActive {
				t.Error("search should be active")
			}
			if v.MatchCount != len(tt.want) {
				t.Errorf("match count = %d, want %d", v.MatchCount, len(tt.want))
			}
		})
	}
}

func TestBuildViewWhitespaceSearchIsNoop(t *testing.T) {
	plain := BuildView(fleet(), DefaultQuery())
	spaced := BuildView(fleet(), Query{Search: "   \t"})

	if spaced.SearchActive {
		t.Error("whitespace search should not be active")
	}
	if !reflect.DeepEqual(ids(plain.Devices()), ids(spaced.Devices())) {
		t.Error("whitespace search changed the view")
	}
}

func TestBuildViewGuestFilter(t *testing.T) {
	q := DefaultQuery()
	q.GuestFilter = "3"
	v := BuildView(fleet(), q)

	if got := sectionIDs(v, device.BucketGuest); !reflect.DeepEqual(got, []string{"g3"}) {
		t.Errorf("guest filtered = %v, want [g3]", got)
	}
	if got := sectionIDs(v, device.BucketOffline); !reflect.DeepEqual(got, []string{"o2", "o1"}) && !reflect.DeepEqual(got, []string{"o1", "o2"}) {
		t.Errorf("offline bucket must not be filtered, got %v", got)
	}
	if d := v.Section(device.BucketGuest).Description; d != "1 guest (G3 only)" {
		t.Errorf("description = %q", d)
	}
	if !reflect.DeepEqual(v.GuestNumbers, []string{"1", "3", "4"}) {
		t.Errorf("guest numbers = %v, want [1 3 4]", v.GuestNumbers)
	}

	q.GuestFilter = "G1"
	v = BuildView(fleet(), q)
	if got := sectionIDs(v, device.BucketGuest); !reflect.DeepEqual(got, []string{"g1"}) {
		t.Errorf("G-prefixed filter = %v, want [g1]", got)
	}
}

func TestBuildViewSortKeys(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	devices := []device.Device{
		{ID: "a", Name: "Bravo", Category: device.CategoryCrew, IsOnline: true, LastSeen: base.Add(time.Hour)},
		{ID: "b", Name: "alpha", Category: device.CategoryCrew, IsOnline: true},
		{ID: "c", Name: "Charlie", Category: device.CategoryCrew, IsOnline: true, LastSeen: base},
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"name asc case-insensitive", Query{SortBy: SortByName}, []string{"b", "a", "c"}},
		{"name desc", Query{SortBy: SortByName, SortOrder: SortDesc}, []string{"c", "a", "b"}},
		{"lastSeen asc unknown oldest", Query{SortBy: SortByLastSeen}, []string{"b", "c", "a"}},
		{"lastSeen desc", Query{SortBy: SortByLastSeen, SortOrder: SortDesc}, []string{"a", "c", "b"}},
		{"bogus key falls back to name", Query{SortBy: "weight"}, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := BuildView(devices, tt.query)
			if got := sectionIDs(v, device.BucketCrew); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildViewCategorySortInOtherBucket(t *testing.T) {
	devices := []device.Device{
		{ID: "x", Name: "X", Category: device.Category("tender"), IsOnline: true},
		{ID: "y", Name: "Y", Category: device.Category("beacon"), IsOnline: true},
		{ID: "z", Name: "Z", Category: device.CategoryWristband, IsOnline: true},
	}

	v := BuildView(devices, Query{SortBy: SortByCategory})
	if got := sectionIDs(v, device.BucketOther); !reflect.DeepEqual(got, []string{"y", "x", "z"}) {
		t.Errorf("got %v, want [y x z]", got)
	}
}

func TestBuildViewIsIdempotentAndPure(t *testing.T) {
	devices := fleet()
	before := ids(devices)

	q := Query{Search: "g", SortBy: SortByLastSeen, SortOrder: SortDesc}
	first := BuildView(devices, q)
	second := BuildView(devices, q)

	if !reflect.DeepEqual(first, second) {
		t.Error("same input produced different views")
	}
	if !reflect.DeepEqual(ids(devices), before) {
		t.Error("BuildView reordered its input")
	}
}

func TestBuildViewSectionExtras(t *testing.T) {
	v := BuildView(fleet(), DefaultQuery())

	off := v.Section(device.BucketOffline)
	if !off.Collapsed {
		t.Error("offline section should start collapsed")
	}
	if off.OnlineCount != 0 {
		t.Errorf("offline online count = %d", off.OnlineCount)
	}
	if off.Description != "2 offline devices" {
		t.Errorf("offline description = %q", off.Description)
	}

	fam := v.Section(device.BucketFamily)
	if fam.Collapsed || fam.OnlineCount != 3 || fam.Title != "Family" {
		t.Errorf("unexpected family section: %+v", fam)
	}
}

func TestBuildViewEmpty(t *testing.T) {
	v := BuildView(nil, DefaultQuery())

	if len(v.Sections) != 5 {
		t.Fatalf("sections = %d, want 5", len(v.Sections))
	}
	for _, s := range v.Sections {
		if s.Devices == nil || s.Total != 0 {
			t.Errorf("section %s should be empty and non-nil", s.Bucket)
		}
	}
}
