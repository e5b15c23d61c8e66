package cabin

import (
	"context"
	"errors"
	"testing"
	domainAssignment "yacht-tracker/internal/domain/assignment"
	domainCabin "yacht-tracker/internal/domain/cabin"
	"yacht-tracker/internal/domain/device"
	"yacht-tracker/internal/infrastructure/database/memory"
	appErrors "yacht-tracker/pkg/errors"
)

type staticSnapshots struct {
	snap *device.Snapshot
}

func (s staticSnapshots) Snapshot() *device.Snapshot { return s.snap }

type stubLister struct {
	ids []string
	err error
}

func (s stubLister) ListWristbands(context.Context) ([]string, error) { return s.ids, s.err }

func seededRepo(t *testing.T) *memory.AssignmentRepository {
	t.Helper()
	repo := memory.NewAssignmentRepository()
	for _, a := range []*domainAssignment.Assignment{
		{GuestName: "Alice", CabinNumber: "602", DeviceID: "wb-1"},
		{GuestName: "Ghost", CabinNumber: "999", DeviceID: "wb-2"},
	} {
		if err := repo.Create(context.Background(), a); err != nil {
			t.Fatal(err)
		}
	}
	return repo
}

func TestCabins(t *testing.T) {
	svc := NewService(seededRepo(t), domainCabin.DefaultInventory(), nil, nil)

	cabins, err := svc.Cabins(context.Background())
	if err != nil {
		t.Fatalf("Cabins: %v", err)
	}
	if len(cabins) != 19 {
		t.Fatalf("cabins = %d, want 19", len(cabins))
	}

	master := cabins[0]
	if master.Number != "602" || len(master.Guests) != 1 || master.Guests[0].GuestName != "Alice" {
		t.Errorf("unexpected master cabin: %+v", master)
	}
	if master.Color != "Yellow" || master.Side != domainCabin.SideCenter {
		t.Errorf("derived fields wrong: %+v", master)
	}
	for _, c := range cabins[1:] {
		if len(c.Guests) != 0 {
			t.Errorf("cabin %s should be empty", c.Number)
		}
	}
}

func TestCabinStatus(t *testing.T) {
	svc := NewService(seededRepo(t), domainCabin.DefaultInventory(), nil, nil)

	status, err := svc.CabinStatus(context.Background())
	if err != nil {
		t.Fatalf("CabinStatus: %v", err)
	}
	if len(status) != 19 {
		t.Errorf("status entries = %d, want 19", len(status))
	}
	if status["602"] == nil || status["602"].GuestName != "Alice" {
		t.Errorf("602 = %+v", status["602"])
	}
	if v, ok := status["412"]; !ok || v != nil {
		t.Errorf("412 should be present and empty, got %+v", v)
	}
	if _, ok := status["999"]; ok {
		t.Error("cabins outside the inventory should not be listed")
	}
}

func TestAvailableWristbandsFromSnapshot(t *testing.T) {
	snap := &device.Snapshot{Devices: []device.Device{
		{ID: "wb-1", Name: "G1 Alice", Category: device.CategoryGuest, IsOnline: true},
		{ID: "wb-3", Name: "P2 Anna", Category: device.CategoryFamily, IsOnline: true},
		{ID: "wb-4", Name: "Band 4", Category: device.CategoryWristband, IsOnline: true},
		{ID: "wb-5", Name: "Band 5", Category: device.CategoryWristband, IsOnline: false},
		{ID: "ph-1", Name: "Captain phone", Category: device.CategoryCrew, IsOnline: true},
	}}
	svc := NewService(seededRepo(t), domainCabin.DefaultInventory(), staticSnapshots{snap}, nil)

	got, err := svc.AvailableWristbands(context.Background())
	if err != nil {
		t.Fatalf("AvailableWristbands: %v", err)
	}

	var ids []string
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	want := []string{"wb-4", "wb-3"}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Errorf("available = %v, want %v", ids, want)
	}
}

func TestAvailableWristbandsFallback(t *testing.T) {
	lister := stubLister{ids: []string{"wb-2", "wb-1", "wb-7"}}
	svc := NewService(seededRepo(t), domainCabin.DefaultInventory(), staticSnapshots{}, lister)

	got, err := svc.AvailableWristbands(context.Background())
	if err != nil {
		t.Fatalf("AvailableWristbands: %v", err)
	}
	if len(got) != 1 || got[0].ID != "wb-7" {
		t.Errorf("available = %+v, want [wb-7]", got)
	}

	svc = NewService(seededRepo(t), domainCabin.DefaultInventory(), staticSnapshots{}, stubLister{err: errors.New("down")})
	_, err = svc.AvailableWristbands(context.Background())
	if appErrors.CodeOf(err) != appErrors.CodeFetchFailed {
		t.Errorf("err = %v, want fetch failure", err)
	}
	if !errors.Is(err, device.ErrSnapshotUnavailable) {
		t.Errorf("err should wrap ErrSnapshotUnavailable: %v", err)
	}
}

func TestAvailableWristbandsWithoutAnySource(t *testing.T) {
	svc := NewService(memory.NewAssignmentRepository(), domainCabin.DefaultInventory(), nil, nil)

	got, err := svc.AvailableWristbands(context.Background())
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("got %v, %v; want empty list", got, err)
	}
}
