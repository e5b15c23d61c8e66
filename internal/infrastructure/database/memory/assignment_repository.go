// Package memory holds an in-process assignment store for single-node runs
// and tests. It enforces the same uniqueness rules as the postgres indexes.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"
	"yacht-tracker/internal/domain/assignment"

	"github.com/google/uuid"
)

type AssignmentRepository struct {
	mu     sync.RWMutex
	guests map[uuid.UUID]assignment.Assignment
	links  map[uuid.UUID]assignment.DeviceLink
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{
		guests: make(map[uuid.UUID]assignment.Assignment),
		links:  make(map[uuid.UUID]assignment.DeviceLink),
	}
}

func (r *AssignmentRepository) FindByDevice(ctx context.Context, deviceID string) (*assignment.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.byDevice(deviceID); ok {
		return &a, nil
	}
	return nil, assignment.ErrAssignmentNotFound
}

func (r *AssignmentRepository) FindByCabin(ctx context.Context, cabinNumber string) (*assignment.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.byCabin(cabinNumber); ok {
		return &a, nil
	}
	return nil, assignment.ErrAssignmentNotFound
}

func (r *AssignmentRepository) ListActive(ctx context.Context) ([]*assignment.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*assignment.Assignment, 0, len(r.guests))
	for _, a := range r.guests {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AssignedAt.Equal(out[j].AssignedAt) {
			return out[i].AssignedAt.Before(out[j].AssignedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, a *assignment.Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertGuest(a)
}

func (r *AssignmentRepository) CreateLink(ctx context.Context, link *assignment.DeviceLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLink(link)
}

func (r *AssignmentRepository) CreateWithLink(ctx context.Context, a *assignment.Assignment, link *assignment.DeviceLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insertGuest(a); err != nil {
		return err
	}
	if err := r.insertLink(link); err != nil {
		delete(r.guests, a.ID)
		return err
	}
	return nil
}

func (r *AssignmentRepository) DeleteLinksByGuest(ctx context.Context, guestID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, l := range r.links {
		if l.GuestID == guestID {
			delete(r.links, id)
		}
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, guestID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.guests[guestID]; !ok {
		return assignment.ErrAssignmentNotFound
	}
	delete(r.guests, guestID)
	return nil
}

// Links returns the stored device links. Intended for tests and diagnostics.
func (r *AssignmentRepository) Links() []assignment.DeviceLink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.DeviceLink, 0, len(r.links))
	for _, l := range r.links {
		out = append(out, l)
	}
	return out
}

func (r *AssignmentRepository) insertGuest(a *assignment.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now().UTC()
	}
	if a.DeviceID != "" {
		if _, taken := r.byDevice(a.DeviceID); taken {
			return assignment.ErrDeviceAlreadyAssigned
		}
	}
	if _, taken := r.byCabin(a.CabinNumber); taken {
		return assignment.ErrCabinOccupied
	}
	r.guests[a.ID] = *a
	return nil
}

func (r *AssignmentRepository) insertLink(link *assignment.DeviceLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	if _, ok := r.guests[link.GuestID]; !ok {
		return assignment.ErrAssignmentNotFound
	}
	r.links[link.ID] = *link
	return nil
}

func (r *AssignmentRepository) byDevice(deviceID string) (assignment.Assignment, bool) {
	for _, a := range r.guests {
		if a.DeviceID == deviceID {
			return a, true
		}
	}
	return assignment.Assignment{}, false
}

func (r *AssignmentRepository) byCabin(cabinNumber string) (assignment.Assignment, bool) {
	for _, a := range r.guests {
		if a.CabinNumber == cabinNumber {
			return a, true
		}
	}
	return assignment.Assignment{}, false
}
