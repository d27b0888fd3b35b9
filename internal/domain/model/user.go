package model

import "time"

// User represents a registered customer of the shop.
type User struct {
	ID               int64
	Login            string
	Email            string
	PasswordHash     string
	IsActive         bool
	ResetPasswordUID string
	CreatedAt        time.Time
}
