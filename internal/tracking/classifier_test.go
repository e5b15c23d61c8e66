package tracking

import (
	"encoding/json"
	"testing"
	"time"
	"yacht-tracker/internal/domain/device"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestClassify(t *testing.T) {
	raw := device.RawDevice{
		ID:             "d1",
		Name:           "G3 Anna",
		Category:       strPtr("guest"),
		IsOnline:       true,
		LastSeen:       json.RawMessage(`"2024-05-01T10:00:00Z"`),
		BatteryLevel:   floatPtr(87.6),
		SignalStrength: floatPtr(-61),
		Accuracy:       floatPtr(1.5),
		Room:           strPtr("Sky Lounge"),
	}

	d := Classify(raw)

	if d.Category != device.CategoryGuest {
		t.Errorf("category = %q, want guest", d.Category)
	}
	if d.GuestNumber != "3" {
		t.Errorf("guest number = %q, want 3", d.GuestNumber)
	}
	if d.BatteryLevel == nil || *d.BatteryLevel != 88 {
		t.Errorf("battery = %v, want 88", d.BatteryLevel)
	}
	if d.SignalStrength == nil || *d.SignalStrength != -61 {
		t.Errorf("signal = %v, want -61", d.SignalStrength)
	}
	if d.Room != "Sky Lounge" {
		t.Errorf("room = %q", d.Room)
	}
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !d.LastSeen.Equal(want) {
		t.Errorf("lastSeen = %v, want %v", d.LastSeen, want)
	}
	if d.FamilyPriority != nil {
		t.Errorf("family priority should be unset, got %v", *d.FamilyPriority)
	}
}

func TestClassifyDefaultsAndPassthrough(t *testing.T) {
	tests := []struct {
		name     string
		category *string
		want     device.Category
	}{
		{"missing", nil, device.CategoryOther},
		{"blank", strPtr("  "), device.CategoryOther},
		{"family", strPtr("family"), device.CategoryFamily},
		{"unknown kept verbatim", strPtr("beacon"), device.Category("beacon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(device.RawDevice{ID: "x", Category: tt.category})
			if d.Category != tt.want {
				t.Errorf("category = %q, want %q", d.Category, tt.want)
			}
		})
	}
}

func TestClassifyFamilyPriority(t *testing.T) {
	d := Classify(device.RawDevice{ID: "p1", Name: "P1 Mr", Category: strPtr("family"), FamilyPriority: floatPtr(1)})
	if d.FamilyPriority == nil || *d.FamilyPriority != 1 {
		t.Fatalf("family priority = %v, want 1", d.FamilyPriority)
	}
}

func TestGuestNumber(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"G3 Anna", "3"},
		{"g12 smith", "12"},
		{"G3 Smith", "3"},
		{"Crew Bob", ""},
		{"Guest", ""},
		{"", ""},
		{"Tender G7", "7"},
	}

	for _, tt := range tests {
		if got := GuestNumber(tt.name); got != tt.want {
			t.Errorf("GuestNumber(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGuestNumbers(t *testing.T) {
	devices := []device.Device{
		{ID: "a", Name: "G10 A", Category: device.CategoryGuest, GuestNumber: "10"},
		{ID: "b", Name: "G2 B", Category: device.CategoryGuest, GuestNumber: "2"},
		{ID: "c", Name: "G2 C", Category: device.CategoryGuest, GuestNumber: "2"},
		{ID: "d", Name: "G5 crew", Category: device.CategoryCrew, GuestNumber: "5"},
		{ID: "e", Name: "Walk-in", Category: device.CategoryGuest},
	}

	got := GuestNumbers(devices)
	want := []string{"2", "10"}
	if len(got) != len(want) {
		t.Fatalf("GuestNumbers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GuestNumbers = %v, want %v", got, want)
		}
	}
}

func TestIsWristbandName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"G1", true},
		{"P2 Anna", true},
		{"C1 7", true},
		{"G3", false},
		{"G10", false},
		{"Crew Bob", false},
		{"  G2  ", true},
	}

	for _, tt := range tests {
		if got := IsWristbandName(tt.name); got != tt.want {
			t.Errorf("IsWristbandName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	ref := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2024-05-01T10:00:00Z"`, ref},
		{"rfc3339 offset", `"2024-05-01T12:00:00+02:00"`, ref},
		{"space separated", `"2024-05-01 10:00:00"`, ref},
		{"unix seconds", `1714557600`, ref},
		{"unix millis", `1714557600000`, ref},
		{"numeric string", `"1714557600"`, ref},
		{"null", `null`, time.Time{}},
		{"empty", ``, time.Time{}},
		{"garbage", `"yesterday"`, time.Time{}},
		{"object", `{"t":1}`, time.Time{}},
		{"zero", `0`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(json.RawMessage(tt.raw))
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
