package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// deviceStore implements driven.DeviceStore.
type deviceStore struct {
	store *Store
}

var _ driven.DeviceStore = (*deviceStore)(nil)

// SaveDevice creates or updates a device keyed by ID.
func (s *deviceStore) SaveDevice(ctx context.Context, device *domain.Device) error {
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

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO devices (id, user_id, device_id, name, active, last_seen, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			device_id = excluded.device_id,
			name = excluded.name,
			active = excluded.active,
			last_seen = excluded.last_seen
	`, device.ID, device.UserID, device.DeviceID, device.Name,
		boolToInt(device.Active), formatTime(device.LastSeen), formatTime(device.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving device: %w", err)
	}
	return nil
}

// ListDevices returns all devices ordered by creation time.
func (s *deviceStore) ListDevices(ctx context.Context) ([]domain.Device, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, device_id, name, active, last_seen, created_at
		FROM devices
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []domain.Device //nolint:prealloc // size unknown from query
	for rows.Next() {
		var d domain.Device
		var active int
		var lastSeen, createdAt string
		if err := rows.Scan(&d.ID, &d.UserID, &d.DeviceID, &d.Name, &active, &lastSeen, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		d.Active = active == 1
		d.LastSeen = parseTime(lastSeen)
		d.CreatedAt = parseTime(createdAt)
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}
	return devices, nil
}

// DeactivateInactive marks active devices last seen before cutoff as inactive.
func (s *deviceStore) DeactivateInactive(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE devices SET active = 0
		WHERE active = 1 AND last_seen < ?
	`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("deactivating devices: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deactivated devices: %w", err)
	}
	return int(n), nil
}
