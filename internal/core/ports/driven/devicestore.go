package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// DeviceStore persists registered devices.
type DeviceStore interface {
	// SaveDevice creates or updates a device.
	SaveDevice(ctx context.Context, device *domain.Device) error

	// ListDevices returns all devices ordered by creation time.
	ListDevices(ctx context.Context) ([]domain.Device, error)

	// DeactivateInactive marks active devices last seen before cutoff as inactive.
	// Returns the number of devices changed.
	DeactivateInactive(ctx context.Context, cutoff time.Time) (int, error)
}
