package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure DeviceStore implements the interface.
var _ driven.DeviceStore = (*DeviceStore)(nil)

// DeviceStore is an in-memory implementation of driven.DeviceStore.
type DeviceStore struct {
	mu      sync.RWMutex
	devices map[string]domain.Device
}

// NewDeviceStore creates a new in-memory device store.
func NewDeviceStore() *DeviceStore {
	return &DeviceStore{devices: make(map[string]domain.Device)}
}

// SaveDevice stores or updates a device.
func (s *DeviceStore) SaveDevice(_ context.Context, device *domain.Device) error {
	if device == nil || device.ID == "" || device.UserID == "" || device.DeviceID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = now
	}
	if device.LastSeen.IsZero() {
		device.LastSeen = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[device.ID] = *device
	return nil
}

// ListDevices returns all devices ordered by creation time.
func (s *DeviceStore) ListDevices(_ context.Context) ([]domain.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make([]domain.Device, 0, len(s.devices))
	for _, d := range s.devices {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].CreatedAt.Equal(devices[j].CreatedAt) {
			return devices[i].ID < devices[j].ID
		}
		return devices[i].CreatedAt.Before(devices[j].CreatedAt)
	})
	return devices, nil
}

// DeactivateInactive marks active devices last seen before cutoff as inactive.
func (s *DeviceStore) DeactivateInactive(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, d := range s.devices {
		if d.InactiveSince(cutoff) {
			d.Active = false
			s.devices[id] = d
			n++
		}
	}
	return n, nil
}
