package domain

import "time"

// Booking is a reserved hourly session. SessionAt is always stored in UTC;
// SlotIndex is derived from its hour of day and kept alongside so the store
// can enforce uniqueness per (speaker, day, slot).
type Booking struct {
	ID           string
	UserEmail    string
	SpeakerEmail string
	SessionAt    time.Time
	SlotIndex    int
	CreatedAt    time.Time
}
