package cabin

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultInventory(t *testing.T) {
	inv := DefaultInventory()

	if inv.Len() != 19 {
		t.Fatalf("expected 19 cabins, got %d", inv.Len())
	}

	master, ok := inv.Lookup("602")
	if !ok {
		t.Fatal("cabin 602 missing")
	}
	if master.Deck != DeckOwners || master.Side() != SideCenter || master.Color() != "Yellow" {
		t.Errorf("unexpected master cabin: %+v", master)
	}

	dubai, ok := inv.Lookup("503-DUBAI")
	if !ok {
		t.Fatal("cabin 503-DUBAI missing")
	}
	if dubai.Name != "DUBAI" || dubai.Side() != SidePort || dubai.Color() != "Red" {
		t.Errorf("unexpected 503-DUBAI: %+v", dubai)
	}

	for _, c := range inv.All() {
		if c.Capacity != 2 {
			t.Errorf("cabin %s capacity = %d, want 2", c.Number, c.Capacity)
		}
	}

	if first := inv.All()[0]; first.Number != "602" {
		t.Errorf("first cabin = %s, want 602", first.Number)
	}
}

func TestDeckForNumber(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"602", DeckOwners},
		{"503-DUBAI", DeckSpa},
		{"510", DeckSpa},
		{"403", DeckUpper},
		{"418", DeckUpper},
		{"601", DeckUnknown},
		{"101", DeckUnknown},
		{"", DeckUnknown},
	}

	for _, tt := range tests {
		if got := DeckForNumber(tt.number); got != tt.want {
			t.Errorf("DeckForNumber(%q) = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestParseInventoryRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "cabins: []"},
		{"missing number", "cabins:\n  - name: X\n    capacity: 2\n"},
		{"duplicate", "cabins:\n  - number: \"401\"\n    capacity: 2\n  - number: \"401\"\n    capacity: 2\n"},
		{"zero capacity", "cabins:\n  - number: \"401\"\n    capacity: 0\n"},
		{"not yaml", "cabins: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseInventory([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadInventoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cabins.yaml")
	data := "cabins:\n  - number: \"401\"\n    capacity: 1\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	c, ok := inv.Lookup("401")
	if !ok {
		t.Fatal("cabin 401 missing")
	}
	if c.Name != "401" || c.Deck != DeckUpper {
		t.Errorf("defaults not applied: %+v", c)
	}
}
