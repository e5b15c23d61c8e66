package cabin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	domainAssignment "yacht-tracker/internal/domain/assignment"
	domainCabin "yacht-tracker/internal/domain/cabin"
	"yacht-tracker/internal/domain/device"
	"yacht-tracker/internal/logger"
	"yacht-tracker/internal/tracking"
	usecaseAssignment "yacht-tracker/internal/usecase/assignment"
	appErrors "yacht-tracker/pkg/errors"

	"go.uber.org/zap"
)

// SnapshotProvider exposes the latest telemetry snapshot.
type SnapshotProvider interface {
	Snapshot() *device.Snapshot
}

// WristbandLister lists wristband ids straight from the telemetry service.
type WristbandLister interface {
	ListWristbands(ctx context.Context) ([]string, error)
}

type Service struct {
	repo       domainAssignment.Repository
	inventory  *domainCabin.Inventory
	snapshots  SnapshotProvider
	wristbands WristbandLister
}

// NewService builds the cabin read side. wristbands may be nil.
func NewService(repo domainAssignment.Repository, inventory *domainCabin.Inventory, snapshots SnapshotProvider, wristbands WristbandLister) *Service {
	return &Service{
		repo:       repo,
		inventory:  inventory,
		snapshots:  snapshots,
		wristbands: wristbands,
	}
}

// Cabins merges the static inventory with the active assignments.
func (s *Service) Cabins(ctx context.Context) ([]*CabinResponse, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeStore, "Failed to load cabin assignments", err)
	}

	cabins := s.inventory.All()
	out := make([]*CabinResponse, 0, len(cabins))
	index := make(map[string]*CabinResponse, len(cabins))
	for _, c := range cabins {
		resp := toCabinResponse(c)
		out = append(out, resp)
		index[c.Number] = resp
	}

	for _, a := range active {
		resp, ok := index[a.CabinNumber]
		if !ok {
			continue
		}
		if len(resp.Guests) >= resp.EstimatedCapacity {
			logger.Warn("Cabin holds more assignments than its capacity",
				zap.String("cabin_number", a.CabinNumber),
				zap.String("guest_id", a.ID.String()),
				zap.Int("capacity", resp.EstimatedCapacity),
			)
			continue
		}
		resp.Guests = append(resp.Guests, usecaseAssignment.ToAssignmentResponse(a))
	}

	return out, nil
}

// CabinStatus maps every inventory cabin to its active assignment, or nil.
func (s *Service) CabinStatus(ctx context.Context) (map[string]*usecaseAssignment.AssignmentResponse, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeStore, "Failed to load cabin assignments", err)
	}

	status := make(map[string]*usecaseAssignment.AssignmentResponse, s.inventory.Len())
	for _, c := range s.inventory.All() {
		status[c.Number] = nil
	}
	for _, a := range active {
		if cur, ok := status[a.CabinNumber]; ok && cur == nil {
			status[a.CabinNumber] = usecaseAssignment.ToAssignmentResponse(a)
		}
	}
	return status, nil
}

// AvailableWristbands lists online wristband-style devices that no active
// assignment holds. Without a snapshot it falls back to the telemetry
// service's wristband list.
func (s *Service) AvailableWristbands(ctx context.Context) ([]WristbandResponse, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeStore, "Failed to load cabin assignments", err)
	}
	bound := make(map[string]struct{}, len(active))
	for _, a := range active {
		if a.HasDevice() {
			bound[a.DeviceID] = struct{}{}
		}
	}

	var snap *device.Snapshot
	if s.snapshots != nil {
		snap = s.snapshots.Snapshot()
	}
	if snap == nil {
		return s.fallbackWristbands(ctx, bound)
	}

	out := []WristbandResponse{}
	for _, d := range snap.Devices {
		if !d.IsOnline || !isWristband(&d) {
			continue
		}
		if _, taken := bound[d.ID]; taken {
			continue
		}
		out = append(out, WristbandResponse{
			ID:       d.ID,
			Name:     d.Name,
			Category: string(d.Category),
			Battery:  d.BatteryLevel,
			Room:     d.Room,
		})
	}
	sortWristbands(out)
	return out, nil
}

func (s *Service) fallbackWristbands(ctx context.Context, bound map[string]struct{}) ([]WristbandResponse, error) {
	out := []WristbandResponse{}
	if s.wristbands == nil {
		return out, nil
	}

	ids, err := s.wristbands.ListWristbands(ctx)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeFetchFailed, "Failed to list wristbands", fmt.Errorf("%w: %v", device.ErrSnapshotUnavailable, err))
	}
	for _, id := range ids {
		if _, taken := bound[id]; taken {
			continue
		}
		out = append(out, WristbandResponse{ID: id, Name: id, Category: string(device.CategoryWristband)})
	}
	sortWristbands(out)
	return out, nil
}

func isWristband(d *device.Device) bool {
	switch d.Category {
	case device.CategoryWristband, device.CategoryGuest:
		return true
	}
	return tracking.IsWristbandName(d.Name)
}

func sortWristbands(list []WristbandResponse) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].Name), strings.ToLower(list[j].Name)
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
}
