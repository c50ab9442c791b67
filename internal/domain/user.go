package domain

import "time"

// User represents a registered account on the platform.
type User struct {
	ID            int64
	ProfilePic    *string
	Email         string
	Password      string // hashed, never serialized
	FirstName     *string
	LastName      *string
	IsAdmin       bool
	CreateDate    time.Time
	LastLoginDate *time.Time
}
