package tracking

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"yacht-tracker/internal/domain/device"
)

var (
	guestNumberPattern = regexp.MustCompile(`(?i)G(\d+)`)

	// G1/G2 guest, P1/P2 parent, C1/C2 child bands, optionally followed by a
	// number or a word ("G1 12", "P2 Anna").
	wristbandNamePattern = regexp.MustCompile(`^(G[12]|P[12]|C[12])(\s+[0-9A-Za-z]|$)`)

	timestampLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.999999999",
	}
)

// Classify decorates a raw telemetry record. It never fails: missing fields
// stay unset and an unparseable lastSeen becomes unknown.
func Classify(raw device.RawDevice) device.Device {
	d := device.Device{
		ID:             raw.ID,
		Name:           raw.Name,
		Category:       device.CategoryOther,
		IsOnline:       raw.IsOnline,
		LastSeen:       ParseTimestamp(raw.LastSeen),
		BatteryLevel:   roundPtr(raw.BatteryLevel),
		SignalStrength: roundPtr(raw.SignalStrength),
		Accuracy:       raw.Accuracy,
		Room:           deref(raw.Room),
		Location:       deref(raw.Location),
		DeviceType:     deref(raw.DeviceType),
		WristbandID:    deref(raw.WristbandID),
		FamilyPriority: roundPtr(raw.FamilyPriority),
		AssignedGuest:  deref(raw.AssignedGuest),
		AssignedCabin:  deref(raw.AssignedCabin),
		GuestNumber:    GuestNumber(raw.Name),
	}

	if raw.Category != nil {
		if c := strings.TrimSpace(*raw.Category); c != "" {
			d.Category = device.Category(c)
		}
	}

	return d
}

// ClassifyAll classifies every record, preserving order.
func ClassifyAll(raws []device.RawDevice) []device.Device {
	out := make([]device.Device, len(raws))
	for i := range raws {
		out[i] = Classify(raws[i])
	}
	return out
}

// GuestNumber extracts the digits of the first "G<digits>" in name,
// case-insensitively. It returns "" when there is none.
func GuestNumber(name string) string {
	m := guestNumberPattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// GuestNumbers lists the distinct guest numbers carried by guest-category
// devices, in numeric order.
func GuestNumbers(devices []device.Device) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range devices {
		d := &devices[i]
		if d.Category != device.CategoryGuest || !d.HasGuestNumber() {
			continue
		}
		if _, ok := seen[d.GuestNumber]; ok {
			continue
		}
		seen[d.GuestNumber] = struct{}{}
		out = append(out, d.GuestNumber)
	}

	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.ParseUint(out[i], 10, 64)
		b, errB := strconv.ParseUint(out[j], 10, 64)
		if errA == nil && errB == nil && a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}

// IsWristbandName reports whether name follows the wristband naming scheme.
func IsWristbandName(name string) bool {
	return wristbandNamePattern.MatchString(strings.TrimSpace(name))
}

// ParseTimestamp leniently decodes a JSON timestamp: RFC3339 strings,
// "YYYY-MM-DD hh:mm:ss" strings, or unix seconds/milliseconds as numbers or
// numeric strings. Anything else yields the zero time.
func ParseTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}
		}
		return parseTimestampString(s)
	}

	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return time.Time{}
	}
	return fromUnix(n)
}

func parseTimestampString(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromUnix(n)
	}
	return time.Time{}
}

// fromUnix treats values above 1e12 as milliseconds.
func fromUnix(n float64) time.Time {
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}
	}
	if n > 1e12 {
		return time.UnixMilli(int64(n)).UTC()
	}
	sec, frac := math.Modf(n)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

func roundPtr(v *float64) *int {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
