package domain

import "time"

type Role string

const (
	RoleUser    Role = "user"
	RoleSpeaker Role = "speaker"
)

type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
