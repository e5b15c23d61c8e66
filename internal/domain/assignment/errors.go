package assignment

import "errors"

var (
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrDeviceAlreadyAssigned = errors.New("device is already assigned")
	ErrCabinOccupied         = errors.New("cabin is already occupied")
	ErrLinkCreateFailed      = errors.New("device link could not be created")
)
