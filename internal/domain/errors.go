package domain

import "errors"

// Sentinel errors returned by services. Handlers match them with errors.Is
// to pick a response status, so wrapped variants stay distinguishable.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidTarget    = errors.New("speaker not found")
	ErrInvalidSlot      = errors.New("timestamp outside bookable schedule")
	ErrSlotTaken        = errors.New("slot already booked")
	ErrStoreUnavailable = errors.New("booking store unavailable")

	ErrEmailTaken     = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")
	ErrBadCredentials = errors.New("invalid email or password")
)
