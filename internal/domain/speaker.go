package domain

import "time"

type Speaker struct {
	Email             string
	Name              string
	Expertise         string
	PricePerHourCents int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
