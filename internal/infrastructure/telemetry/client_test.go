package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"yacht-tracker/internal/domain/device"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("  ", time.Second); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestFetchSnapshot(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != trackingDataPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"devices":[
			{"id":"d1","name":"G3 Guest","category":"guest","isOnline":true,"lastSeen":"2024-05-01T10:00:00Z","batteryLevel":81.6},
			{"id":"d2","name":"Tender","isOnline":false,"lastSeen":1714557600000}
		],"lastUpdate":"2024-05-01T10:00:05Z"}}`))
	})

	snap, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if len(snap.Devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(snap.Devices))
	}
	first := snap.Devices[0]
	if first.ID != "d1" || first.Category == nil || *first.Category != "guest" {
		t.Fatalf("unexpected first device: %+v", first)
	}
	if first.BatteryLevel == nil || *first.BatteryLevel != 81.6 {
		t.Fatalf("battery not decoded: %+v", first.BatteryLevel)
	}
	if snap.Devices[1].Category != nil {
		t.Fatal("missing category should stay nil")
	}
	if string(snap.LastUpdate) != `"2024-05-01T10:00:05Z"` {
		t.Fatalf("unexpected lastUpdate %s", snap.LastUpdate)
	}
}

func TestFetchSnapshotFailures(t *testing.T) {
	cases := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unsuccessful envelope", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"upstream down"}`))
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":`))
		}},
		{"malformed data", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":{"devices":"nope"}}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.h)
			snap, err := c.FetchSnapshot(context.Background())
			if !errors.Is(err, device.ErrFetchFailed) {
				t.Fatalf("expected ErrFetchFailed, got %v", err)
			}
			if snap != nil {
				t.Fatal("snapshot should be nil on failure")
			}
		})
	}
}

func TestFetchSnapshotEmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})
	snap, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if snap.Devices == nil || len(snap.Devices) != 0 {
		t.Fatalf("expected empty device slice, got %#v", snap.Devices)
	}
}

func TestFetchSnapshotHonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.FetchSnapshot(ctx); !errors.Is(err, device.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestListWristbands(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wristbandsPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":["wb-1","wb-2"]}`))
	})
	ids, err := c.ListWristbands(context.Background())
	if err != nil {
		t.Fatalf("ListWristbands: %v", err)
	}
	if len(ids) != 2 || ids[0] != "wb-1" || ids[1] != "wb-2" {
		t.Fatalf("unexpected ids %v", ids)
	}
}
