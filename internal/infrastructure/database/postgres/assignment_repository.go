package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	domainAssignment "yacht-tracker/internal/domain/assignment"
	"yacht-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// AssignmentRepository implements domainAssignment.Repository on the guests
// and guest_device_links tables.
type AssignmentRepository struct {
	db *DB
}

func NewAssignmentRepository(db *DB) domainAssignment.Repository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) FindByDevice(ctx context.Context, deviceID string) (*domainAssignment.Assignment, error) {
	var m models.GuestModel
	err := r.db.DB.WithContext(ctx).
		Where("wristband_id = ?", deviceID).
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainAssignment.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment by device: %w", err)
	}
	return toAssignmentEntity(&m), nil
}

func (r *AssignmentRepository) FindByCabin(ctx context.Context, cabinNumber string) (*domainAssignment.Assignment, error) {
	var m models.GuestModel
	err := r.db.DB.WithContext(ctx).
		Where("cabin_number = ?", cabinNumber).
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainAssignment.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment by cabin: %w", err)
	}
	return toAssignmentEntity(&m), nil
}

func (r *AssignmentRepository) ListActive(ctx context.Context) ([]*domainAssignment.Assignment, error) {
	var rows []models.GuestModel
	err := r.db.DB.WithContext(ctx).
		Where("cabin_number IS NOT NULL").
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	out := make([]*domainAssignment.Assignment, 0, len(rows))
	for i := range rows {
		out = append(out, toAssignmentEntity(&rows[i]))
	}
	return out, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domainAssignment.Assignment) error {
	return createGuest(r.db.DB.WithContext(ctx), a)
}

func (r *AssignmentRepository) CreateLink(ctx context.Context, link *domainAssignment.DeviceLink) error {
	return createLink(r.db.DB.WithContext(ctx), link)
}

func (r *AssignmentRepository) CreateWithLink(ctx context.Context, a *domainAssignment.Assignment, link *domainAssignment.DeviceLink) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createGuest(tx, a); err != nil {
			return err
		}
		link.GuestID = a.ID
		return createLink(tx, link)
	})
}

func (r *AssignmentRepository) DeleteLinksByGuest(ctx context.Context, guestID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Delete(&models.GuestDeviceLinkModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete device links: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, guestID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", guestID).
		Delete(&models.GuestModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainAssignment.ErrAssignmentNotFound
	}
	return nil
}

func createGuest(db *gorm.DB, a *domainAssignment.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now().UTC()
	}

	m := toGuestModel(a)
	if err := db.Create(m).Error; err != nil {
		if mapped := classifyUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create guest: %w", err)
	}
	a.ID = m.ID
	a.AssignedAt = m.CreatedAt
	return nil
}

func createLink(db *gorm.DB, link *domainAssignment.DeviceLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	m := &models.GuestDeviceLinkModel{
		ID:        link.ID,
		DeviceID:  link.DeviceID,
		GuestID:   link.GuestID,
		CreatedAt: link.CreatedAt,
	}
	if err := db.Create(m).Error; err != nil {
		return fmt.Errorf("%w: %v", domainAssignment.ErrLinkCreateFailed, err)
	}
	return nil
}

// classifyUniqueViolation maps a unique-index violation on the guests table
// to the matching domain conflict, or returns nil for any other error.
func classifyUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch {
	case pgErr.ConstraintName == models.IndexActiveWristband,
		strings.Contains(pgErr.Detail, "wristband_id"):
		return domainAssignment.ErrDeviceAlreadyAssigned
	case pgErr.ConstraintName == models.IndexActiveCabin,
		strings.Contains(pgErr.Detail, "cabin_number"):
		return domainAssignment.ErrCabinOccupied
	}
	return nil
}

func toGuestModel(a *domainAssignment.Assignment) *models.GuestModel {
	cabin := a.CabinNumber
	m := &models.GuestModel{
		ID:              a.ID,
		Name:            a.GuestName,
		CabinNumber:     &cabin,
		CabinName:       a.CabinName,
		Deck:            a.Deck,
		Allergies:       a.Allergies,
		SpecialRequests: a.SpecialRequests,
		PhotoURL1:       a.PhotoURL1,
		PhotoURL2:       a.PhotoURL2,
		CreatedAt:       a.AssignedAt,
		UpdatedAt:       a.AssignedAt,
	}
	if a.HasDevice() {
		id := a.DeviceID
		m.WristbandID = &id
	}
	return m
}

func toAssignmentEntity(m *models.GuestModel) *domainAssignment.Assignment {
	a := &domainAssignment.Assignment{
		ID:              m.ID,
		GuestName:       m.Name,
		CabinName:       m.CabinName,
		Deck:            m.Deck,
		Allergies:       m.Allergies,
		SpecialRequests: m.SpecialRequests,
		PhotoURL1:       m.PhotoURL1,
		PhotoURL2:       m.PhotoURL2,
		AssignedAt:      m.CreatedAt,
	}
	if m.CabinNumber != nil {
		a.CabinNumber = *m.CabinNumber
	}
	if m.WristbandID != nil {
		a.DeviceID = *m.WristbandID
	}
	return a
}
