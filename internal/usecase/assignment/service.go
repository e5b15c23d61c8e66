package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"
	domainAssignment "yacht-tracker/internal/domain/assignment"
	"yacht-tracker/internal/domain/cabin"
	"yacht-tracker/internal/events"
	"yacht-tracker/internal/logger"
	"yacht-tracker/internal/observability/metrics"
	appErrors "yacht-tracker/pkg/errors"
	"yacht-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	operationAssign   = "assign"
	operationUnassign = "unassign"
)

// Refresher requests an immediate telemetry refresh.
type Refresher interface {
	Trigger()
}

type noopRefresher struct{}

func (noopRefresher) Trigger() {}

// Service binds guests to cabins and wristbands. Exclusivity is checked
// against the store before writing and enforced again by the store's unique
// indexes, so the loser of a concurrent race gets the same conflict error.
type Service struct {
	repo        domainAssignment.Repository
	inventory   *cabin.Inventory
	publisher   events.Publisher
	refresher   Refresher
	requireLink bool
	now         func() time.Time
}

// NewService creates the assignment engine. When requireLink is set the guest
// record and its device link are written in one transaction.
func NewService(repo domainAssignment.Repository, inventory *cabin.Inventory, publisher events.Publisher, refresher Refresher, requireLink bool) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if refresher == nil {
		refresher = noopRefresher{}
	}
	return &Service{
		repo:        repo,
		inventory:   inventory,
		publisher:   publisher,
		refresher:   refresher,
		requireLink: requireLink,
		now:         time.Now,
	}
}

func (s *Service) Assign(ctx context.Context, req *AssignRequest) Result {
	start := time.Now()
	res := s.assign(ctx, req)
	metrics.ObserveAssignment(operationAssign, resultLabel(res), time.Since(start))
	return res
}

func (s *Service) Unassign(ctx context.Context, cabinNumber string) Result {
	start := time.Now()
	res := s.unassign(ctx, cabinNumber)
	metrics.ObserveAssignment(operationUnassign, resultLabel(res), time.Since(start))
	return res
}

func (s *Service) assign(ctx context.Context, req *AssignRequest) Result {
	if req == nil {
		return failure(appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", appErrors.ErrInvalidInput))
	}
	normalizeAssignRequest(req)
	if err := utils.ValidateStruct(req); err != nil {
		return failure(appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err))
	}

	if req.DeviceID != "" {
		holder, err := s.repo.FindByDevice(ctx, req.DeviceID)
		switch {
		case err == nil:
			return s.rejected(req, deviceConflict(req.DeviceName, holder))
		case !errors.Is(err, domainAssignment.ErrAssignmentNotFound):
			return s.storeFailure(req, "Failed to check device assignment", err)
		}
	}

	occupant, err := s.repo.FindByCabin(ctx, req.CabinNumber)
	switch {
	case err == nil:
		return s.rejected(req, cabinConflict(req.CabinNumber, occupant))
	case !errors.Is(err, domainAssignment.ErrAssignmentNotFound):
		return s.storeFailure(req, "Failed to check cabin occupancy", err)
	}

	a := &domainAssignment.Assignment{
		ID:              uuid.New(),
		GuestName:       req.GuestName,
		CabinNumber:     req.CabinNumber,
		CabinName:       s.cabinName(req),
		Deck:            cabin.DeckForNumber(req.CabinNumber),
		DeviceID:        req.DeviceID,
		Allergies:       req.Allergies,
		SpecialRequests: req.SpecialRequests,
		AssignedAt:      s.now().UTC(),
	}

	if s.requireLink && a.HasDevice() {
		if err := s.repo.CreateWithLink(ctx, a, s.newLink(a)); err != nil {
			return s.createFailure(ctx, req, err)
		}
		s.assigned(ctx, a)
		return Result{Success: true, Assignment: ToAssignmentResponse(a)}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return s.createFailure(ctx, req, err)
	}

	res := Result{Success: true, Assignment: ToAssignmentResponse(a)}
	if a.HasDevice() {
		if err := s.repo.CreateLink(ctx, s.newLink(a)); err != nil {
			res.Code = appErrors.CodeLinkCreateFailed
			res.Warning = s.linkMissing(ctx, a, err)
		}
	}

	s.assigned(ctx, a)
	return res
}

func (s *Service) unassign(ctx context.Context, cabinNumber string) Result {
	req := &UnassignRequest{CabinNumber: utils.SanitizeIdentifier(cabinNumber)}
	if err := utils.ValidateStruct(req); err != nil {
		return failure(appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err))
	}

	a, err := s.repo.FindByCabin(ctx, req.CabinNumber)
	if errors.Is(err, domainAssignment.ErrAssignmentNotFound) {
		logger.Debug("Unassign on empty cabin",
			zap.String("cabin_number", req.CabinNumber),
		)
		return Result{Success: true}
	}
	if err != nil {
		return failure(storeError("Failed to look up cabin assignment", err))
	}

	// Links go first so no link outlives its guest.
	if err := s.repo.DeleteLinksByGuest(ctx, a.ID); err != nil {
		logger.Warn("Failed to remove guest device link",
			zap.String("guest_id", a.ID.String()),
			zap.String("device_id", a.DeviceID),
			zap.String("cabin_number", a.CabinNumber),
			zap.Error(err),
			zap.String("event", "guest_link_delete_failed"),
		)
	}

	if err := s.repo.Delete(ctx, a.ID); err != nil && !errors.Is(err, domainAssignment.ErrAssignmentNotFound) {
		appErr := storeError("Failed to remove guest assignment", err)
		logger.Error("Unassign failed",
			zap.String("cabin_number", a.CabinNumber),
			zap.Error(err),
		)
		return failure(appErr)
	}

	logger.Info("Guest unassigned",
		zap.String("guest_id", a.ID.String()),
		zap.String("guest_name", a.GuestName),
		zap.String("cabin_number", a.CabinNumber),
		zap.String("event", "guest_unassigned"),
	)
	s.publish(ctx, events.Event{
		Type:        events.TypeUnassigned,
		GuestID:     a.ID.String(),
		GuestName:   a.GuestName,
		CabinNumber: a.CabinNumber,
		DeviceID:    a.DeviceID,
		OccurredAt:  s.now().UTC(),
	})
	s.refresher.Trigger()

	return Result{Success: true, Assignment: ToAssignmentResponse(a)}
}

func (s *Service) cabinName(req *AssignRequest) string {
	if req.CabinName != "" {
		return req.CabinName
	}
	if s.inventory != nil {
		if c, ok := s.inventory.Lookup(req.CabinNumber); ok {
			return c.Name
		}
	}
	return req.CabinNumber
}

func (s *Service) newLink(a *domainAssignment.Assignment) *domainAssignment.DeviceLink {
	return &domainAssignment.DeviceLink{
		ID:        uuid.New(),
		DeviceID:  a.DeviceID,
		GuestID:   a.ID,
		CreatedAt: a.AssignedAt,
	}
}

// createFailure maps a failed insert to a result. Unique violations are
// reported exactly like the pre-check conflicts.
func (s *Service) createFailure(ctx context.Context, req *AssignRequest, err error) Result {
	switch {
	case errors.Is(err, domainAssignment.ErrDeviceAlreadyAssigned):
		holder, findErr := s.repo.FindByDevice(ctx, req.DeviceID)
		if findErr != nil {
			holder = nil
		}
		return s.rejected(req, deviceConflict(req.DeviceName, holder))
	case errors.Is(err, domainAssignment.ErrCabinOccupied):
		occupant, findErr := s.repo.FindByCabin(ctx, req.CabinNumber)
		if findErr != nil {
			occupant = nil
		}
		return s.rejected(req, cabinConflict(req.CabinNumber, occupant))
	default:
		return s.storeFailure(req, "Failed to assign guest to cabin", err)
	}
}

func (s *Service) linkMissing(ctx context.Context, a *domainAssignment.Assignment, err error) string {
	warning := fmt.Sprintf("Guest %s was assigned to cabin %s but the tracking link for device %s could not be created: %v",
		a.GuestName, a.CabinNumber, a.DeviceID, err)

	logger.Warn("Guest stored without device link",
		zap.String("guest_id", a.ID.String()),
		zap.String("device_id", a.DeviceID),
		zap.String("cabin_number", a.CabinNumber),
		zap.Error(err),
		zap.String("event", "guest_link_missing"),
	)
	metrics.IncLinkMissing()
	s.publish(ctx, events.Event{
		Type:        events.TypeLinkMissing,
		GuestID:     a.ID.String(),
		GuestName:   a.GuestName,
		CabinNumber: a.CabinNumber,
		DeviceID:    a.DeviceID,
		Detail:      err.Error(),
		OccurredAt:  s.now().UTC(),
	})

	return warning
}

func (s *Service) assigned(ctx context.Context, a *domainAssignment.Assignment) {
	logger.Info("Guest assigned",
		zap.String("guest_id", a.ID.String()),
		zap.String("guest_name", a.GuestName),
		zap.String("cabin_number", a.CabinNumber),
		zap.String("device_id", a.DeviceID),
		zap.String("event", "guest_assigned"),
	)
	s.publish(ctx, events.Event{
		Type:        events.TypeAssigned,
		GuestID:     a.ID.String(),
		GuestName:   a.GuestName,
		CabinNumber: a.CabinNumber,
		DeviceID:    a.DeviceID,
		OccurredAt:  a.AssignedAt,
	})
	s.refresher.Trigger()
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish assignment event",
			zap.String("type", string(event.Type)),
			zap.String("cabin_number", event.CabinNumber),
			zap.Error(err),
			zap.String("event", "assignment_event_publish_failed"),
		)
	}
}

func (s *Service) rejected(req *AssignRequest, err *appErrors.AppError) Result {
	logger.Info("Assignment rejected",
		zap.String("cabin_number", req.CabinNumber),
		zap.String("device_id", req.DeviceID),
		zap.String("reason", err.Message),
		zap.String("event", "guest_assignment_rejected"),
	)
	return failure(err)
}

func (s *Service) storeFailure(req *AssignRequest, message string, err error) Result {
	appErr := storeError(message, err)
	logger.Error("Assignment failed",
		zap.String("cabin_number", req.CabinNumber),
		zap.String("device_id", req.DeviceID),
		zap.Error(err),
	)
	return failure(appErr)
}

func deviceConflict(deviceName string, holder *domainAssignment.Assignment) *appErrors.AppError {
	if holder == nil {
		return appErrors.NewAppError(appErrors.CodeDeviceAlreadyAssigned,
			fmt.Sprintf("Device %s is already assigned", deviceName), nil)
	}
	return appErrors.NewAppError(appErrors.CodeDeviceAlreadyAssigned,
		fmt.Sprintf("Device %s is already assigned to %s in cabin %s", deviceName, holder.GuestName, holder.CabinNumber), nil)
}

func cabinConflict(cabinNumber string, occupant *domainAssignment.Assignment) *appErrors.AppError {
	if occupant == nil {
		return appErrors.NewAppError(appErrors.CodeCabinOccupied,
			fmt.Sprintf("Cabin %s is already occupied", cabinNumber), nil)
	}
	return appErrors.NewAppError(appErrors.CodeCabinOccupied,
		fmt.Sprintf("Cabin %s is already occupied by %s", cabinNumber, occupant.GuestName), nil)
}

func storeError(message string, err error) *appErrors.AppError {
	return appErrors.NewAppError(appErrors.CodeStore, message, err)
}

func failure(err *appErrors.AppError) Result {
	return Result{Success: false, Error: err.Error(), Code: err.Code}
}

func resultLabel(res Result) string {
	switch {
	case res.Success && res.Warning != "":
		return metrics.ResultPartial
	case res.Success:
		return metrics.ResultSuccess
	case res.Code == appErrors.CodeDeviceAlreadyAssigned, res.Code == appErrors.CodeCabinOccupied:
		return metrics.ResultConflict
	case res.Code == appErrors.CodeValidation:
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
