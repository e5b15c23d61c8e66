package device

import "errors"

var (
	ErrSnapshotUnavailable = errors.New("no device snapshot available")
	ErrFetchFailed         = errors.New("telemetry fetch failed")
)
