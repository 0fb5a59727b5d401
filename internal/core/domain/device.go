package domain

import "time"

// Device is a registered user device. Devices that have not been seen
// for longer than the retention window are deactivated by the cleanup job.
type Device struct {
	ID        string
	UserID    string
	DeviceID  string
	Name      string
	Active    bool
	LastSeen  time.Time
	CreatedAt time.Time
}

// InactiveSince reports whether an active device was last seen before cutoff.
func (d Device) InactiveSince(cutoff time.Time) bool {
	return d.Active && d.LastSeen.Before(cutoff)
}
