package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func TestDeviceStore_SaveAndList(t *testing.T) {
	store := NewDeviceStore()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.SaveDevice(ctx, &domain.Device{ID: "b", UserID: "u", DeviceID: "2", Active: true, CreatedAt: now}))
	require.NoError(t, store.SaveDevice(ctx, &domain.Device{ID: "a", UserID: "u", DeviceID: "1", Active: true, CreatedAt: now.Add(-time.Hour)}))

	devices, err := store.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "a", devices[0].ID)
	assert.False(t, devices[0].LastSeen.IsZero())

	assert.ErrorIs(t, store.SaveDevice(ctx, &domain.Device{ID: "c"}), domain.ErrInvalidInput)
}

func TestDeviceStore_DeactivateInactive(t *testing.T) {
	store := NewDeviceStore()
	ctx := context.Background()

	cutoff := time.Now().Add(-domain.DefaultDeviceRetention)
	require.NoError(t, store.SaveDevice(ctx, &domain.Device{ID: "old", UserID: "u", DeviceID: "1", Active: true, LastSeen: cutoff.Add(-time.Minute)}))
	require.NoError(t, store.SaveDevice(ctx, &domain.Device{ID: "new", UserID: "u", DeviceID: "2", Active: true, LastSeen: cutoff.Add(time.Minute)}))

	n, err := store.DeactivateInactive(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.DeactivateInactive(ctx, cutoff)
	require.NoError(t, err)
	assert.Zero(t, n)

	devices, err := store.ListDevices(ctx)
	require.NoError(t, err)
	for _, d := range devices {
		assert.Equal(t, d.ID == "new", d.Active, d.ID)
	}
}
