package device

import "context"

// Source fetches the current device set from the telemetry service.
type Source interface {
	FetchSnapshot(ctx context.Context) (*RawSnapshot, error)
}
